package usecases

import (
	"context"
	"time"

	"github.com/campushub/analytics-api/internal/domain/apperrors"
	"github.com/campushub/analytics-api/internal/domain/entities"
	"github.com/campushub/analytics-api/internal/domain/repositories"
	"github.com/campushub/analytics-api/internal/utils"
)

// Nomes das métricas de janela em tempo real.
const (
	RealtimeActiveSessions = "active_sessions"
	RealtimePageViews      = "page_views"
	RealtimeActions        = "actions"
	RealtimeSearches       = "searches"
)

type MetricsUseCase interface {
	Aggregator
}

type metricsUseCase struct {
	metricsRepo repositories.IMetricsRepository
}

func NewMetricsUseCase(metricsRepo repositories.IMetricsRepository) MetricsUseCase {
	return &metricsUseCase{metricsRepo}
}

// AggregateEvent deriva todos os rollups de um evento já persistido.
// Cada rollup é independente: a falha de um não impede os demais, o
// primeiro erro é devolvido no fim para o caller logar.
func (uc *metricsUseCase) AggregateEvent(ctx context.Context, event *entities.BehaviorEvent, data *entities.ActionData) error {
	day := utils.StartOfDay(event.EventTime)
	var firstErr error

	keep := func(op string, err error) {
		if err != nil && firstErr == nil {
			firstErr = apperrors.Aggregation(op, err)
		}
	}

	bumpDaily := func(field string, delta int) {
		// Métricas diárias são por usuário; eventos anônimos só contam
		// nas janelas de tempo real.
		if event.UserID == nil || *event.UserID == "" {
			return
		}
		keep("daily "+field, uc.metricsRepo.BumpDailyMetric(ctx, *event.UserID, day, field, delta))
	}

	bumpContent := func(action string) {
		if data == nil || data.ContentType == "" || data.ContentID == 0 {
			return
		}
		timeSpent := 0
		if event.TimeSpent != nil {
			timeSpent = *event.TimeSpent
		}
		keep("content "+action, uc.metricsRepo.BumpContentMetric(ctx, data.ContentType, data.ContentID, day, timeSpent, action))
	}

	bumpDaily("actions_performed", 1)
	keep("realtime actions", uc.metricsRepo.BumpRealtimeWindow(ctx, RealtimeActions, event.EventTime))

	switch event.ActionType {
	case entities.ActionPageView:
		bumpDaily("page_views", 1)
		keep("realtime page_views", uc.metricsRepo.BumpRealtimeWindow(ctx, RealtimePageViews, event.EventTime))
	case entities.ActionSearch:
		bumpDaily("search_queries", 1)
		keep("realtime searches", uc.metricsRepo.BumpRealtimeWindow(ctx, RealtimeSearches, event.EventTime))
	case entities.ActionContentEngagement:
		bumpDaily("content_consumed", 1)
		bumpContent(repositories.ContentActionView)
	case entities.ActionDownload:
		bumpDaily("downloads", 1)
		bumpContent(repositories.ContentActionDownload)
	case entities.ActionSocialShare:
		bumpDaily("social_shares", 1)
		bumpContent(repositories.ContentActionShare)
	case entities.ActionEventRegistration:
		bumpDaily("events_registered", 1)
	}

	return firstErr
}

// AggregateSessionOpen conta a abertura de sessão nos rollups. Chamado
// apenas quando a linha de sessão foi de fato criada, nunca em replays.
func (uc *metricsUseCase) AggregateSessionOpen(ctx context.Context, session *entities.Session) error {
	at := session.SessionStart
	if at.IsZero() {
		at = time.Now().UTC()
	}

	if err := uc.metricsRepo.BumpRealtimeWindow(ctx, RealtimeActiveSessions, at); err != nil {
		return apperrors.Aggregation("realtime active_sessions", err)
	}

	if session.UserID != nil && *session.UserID != "" {
		if err := uc.metricsRepo.BumpDailyMetric(ctx, *session.UserID, utils.StartOfDay(at), "sessions_count", 1); err != nil {
			return apperrors.Aggregation("daily sessions_count", err)
		}
	}
	return nil
}
