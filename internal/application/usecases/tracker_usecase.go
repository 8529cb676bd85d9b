package usecases

import (
	"context"
	"log"
	"time"

	"github.com/campushub/analytics-api/internal/domain/apperrors"
	"github.com/campushub/analytics-api/internal/domain/entities"
	"github.com/campushub/analytics-api/internal/domain/repositories"
	"github.com/campushub/analytics-api/internal/utils"
	"github.com/google/uuid"
)

// TrackEventInput é o payload normalizado de POST /track, já desserializado
// pelo handler. Campos de busca e de clique só são lidos para os
// action_types correspondentes.
type TrackEventInput struct {
	ActionType string
	SessionID  string
	UserID     *string
	PageURL    string
	PageTitle  string
	Referrer   string
	ActionData *entities.ActionData
	TimeSpent  *int
	Device     *entities.DeviceInfo
	Geo        *entities.GeoInfo

	Query        string
	SearchType   string
	ResultCount  int
	SearchTimeMs *int
	Position     int
	ResultID     string
	ResultType   string

	At time.Time
}

type TrackerUseCase interface {
	RecordEvent(ctx context.Context, in TrackEventInput) (uuid.UUID, error)
}

type trackerUseCase struct {
	trackerRepo repositories.ITrackerRepository
	aggregator  Aggregator
	networks    *utils.TrustedNetworks
}

func NewTrackerUseCase(trackerRepo repositories.ITrackerRepository, aggregator Aggregator, networks *utils.TrustedNetworks) TrackerUseCase {
	return &trackerUseCase{trackerRepo, aggregator, networks}
}

// RecordEvent é o ponto de entrada de todo evento do cliente. A escrita do
// fato em user_behavior_tracking é a única operação cujo erro volta para o
// handler; persistências laterais (jornada, busca, rollups) são logadas e
// engolidas para que uma falha parcial nunca descarte o evento primário.
func (uc *trackerUseCase) RecordEvent(ctx context.Context, in TrackEventInput) (uuid.UUID, error) {
	if in.ActionType == "" {
		return uuid.Nil, apperrors.InvalidArgument("action_type")
	}
	if in.SessionID == "" {
		return uuid.Nil, apperrors.InvalidArgument("session_id")
	}
	if in.At.IsZero() {
		in.At = time.Now().UTC()
	}
	if in.UserID != nil && *in.UserID == "" {
		in.UserID = nil
	}

	uc.ensureSession(ctx, in)

	event := uc.buildEvent(in)
	if err := uc.trackerRepo.InsertBehaviorEvent(ctx, event); err != nil {
		return uuid.Nil, apperrors.Storage("insert behavior event", err)
	}

	switch in.ActionType {
	case entities.ActionPageView:
		if err := uc.trackerRepo.AdvanceJourney(ctx, in.SessionID, in.UserID, in.PageURL, in.PageTitle, in.At); err != nil {
			log.Printf("⚠️ jornada não avançada para sessão %s: %v", in.SessionID, err)
		}
	case entities.ActionSearch:
		uc.recordSearch(ctx, in)
	case entities.ActionSearchClick:
		uc.recordSearchClick(ctx, in)
	case entities.ActionSessionEnd:
		if err := uc.trackerRepo.CloseSession(ctx, in.SessionID, in.At); err != nil {
			log.Printf("⚠️ sessão %s não fechada: %v", in.SessionID, err)
		}
	}

	if err := uc.aggregator.AggregateEvent(ctx, event, in.ActionData); err != nil {
		log.Printf("⚠️ agregação falhou para evento %s: %v", event.EventID, err)
	}

	return event.EventID, nil
}

// ensureSession garante a linha aberta em device_analytics antes do
// primeiro fato da sessão. Erros aqui não bloqueiam o evento.
func (uc *trackerUseCase) ensureSession(ctx context.Context, in TrackEventInput) {
	session := &entities.Session{
		SessionID:    in.SessionID,
		UserID:       in.UserID,
		SessionStart: in.At,
	}
	if in.Device != nil {
		session.DeviceType = in.Device.DeviceType
		session.OS = in.Device.OS
		session.Browser = in.Device.Browser
		session.BrowserVersion = in.Device.BrowserVersion
		session.IsMobile = in.Device.IsMobile
		session.IsTouch = in.Device.IsTouch
	}
	if in.Geo != nil {
		session.IPAddress = in.Geo.IPAddress
		session.Country = in.Geo.Country
		session.Region = in.Geo.Region
		session.City = in.Geo.City
		session.IsInternal = uc.networks.Contains(in.Geo.IPAddress)
	}

	created, err := uc.trackerRepo.EnsureSessionOpen(ctx, session)
	if err != nil {
		log.Printf("⚠️ abertura de sessão %s falhou: %v", in.SessionID, err)
		return
	}
	if !created {
		return
	}

	if err := uc.aggregator.AggregateSessionOpen(ctx, session); err != nil {
		log.Printf("⚠️ agregação de sessão %s falhou: %v", in.SessionID, err)
	}
}

func (uc *trackerUseCase) buildEvent(in TrackEventInput) *entities.BehaviorEvent {
	event := &entities.BehaviorEvent{
		EventID:    uuid.New(),
		SessionID:  in.SessionID,
		UserID:     in.UserID,
		ActionType: in.ActionType,
		PageURL:    in.PageURL,
		Referrer:   in.Referrer,
		ActionData: in.ActionData.ToJSON(),
		TimeSpent:  in.TimeSpent,
		EventTime:  in.At,
	}
	if in.Device != nil {
		event.DeviceType = in.Device.DeviceType
		event.Browser = in.Device.Browser
	}
	return event
}

func (uc *trackerUseCase) recordSearch(ctx context.Context, in TrackEventInput) {
	if in.Query == "" {
		// Telemetria malformada: o evento bruto já está gravado, só não
		// entra em search_analytics.
		log.Printf("⚠️ busca sem query na sessão %s ignorada", in.SessionID)
		return
	}

	record := &entities.SearchRecord{
		SessionID:    in.SessionID,
		UserID:       in.UserID,
		Query:        in.Query,
		SearchType:   in.SearchType,
		ResultCount:  in.ResultCount,
		SearchTimeMs: in.SearchTimeMs,
		CreatedAt:    in.At,
	}
	if err := uc.trackerRepo.InsertSearchRecord(ctx, record); err != nil {
		log.Printf("⚠️ registro de busca na sessão %s falhou: %v", in.SessionID, err)
	}
}

func (uc *trackerUseCase) recordSearchClick(ctx context.Context, in TrackEventInput) {
	if in.Query == "" {
		log.Printf("⚠️ clique de busca sem query na sessão %s ignorado", in.SessionID)
		return
	}

	matched, err := uc.trackerRepo.ResolveSearchClick(ctx, in.SessionID, in.Query, in.Position, in.ResultID, in.ResultType)
	if err != nil {
		log.Printf("⚠️ resolução de clique na sessão %s falhou: %v", in.SessionID, err)
		return
	}
	if !matched {
		// Clique sem busca anterior correspondente: nunca cria linha nova.
		log.Printf("⚠️ clique sem busca correspondente (sessão %s, query %q)", in.SessionID, in.Query)
	}
}
