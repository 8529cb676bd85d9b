package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/campushub/analytics-api/internal/application/usecases"
	"github.com/campushub/analytics-api/internal/domain/apperrors"
	"github.com/campushub/analytics-api/internal/domain/entities"
	"github.com/gofiber/fiber/v2"
)

// TrackRequest é o corpo de POST /track enviado pela instrumentação do
// portal. Campos de busca/clique só são relevantes para os action_types
// correspondentes.
type TrackRequest struct {
	ActionType string               `json:"action_type"`
	SessionID  string               `json:"session_id"`
	UserID     *string              `json:"user_id"`
	PageURL    string               `json:"page_url"`
	PageTitle  string               `json:"page_title"`
	Referrer   string               `json:"referrer"`
	ActionData *entities.ActionData `json:"action_data"`
	TimeSpent  *int                 `json:"time_spent"`
	Device     *entities.DeviceInfo `json:"device"`
	Geo        *entities.GeoInfo    `json:"geo"`

	Query        string `json:"query"`
	SearchType   string `json:"search_type"`
	ResultCount  int    `json:"result_count"`
	SearchTimeMs *int   `json:"search_time_ms"`
	Position     int    `json:"position"`
	ResultID     string `json:"result_id"`
	ResultType   string `json:"result_type"`
}

type TrackHandler struct {
	trackerUseCase usecases.TrackerUseCase
}

func NewTrackHandler(trackerUseCase usecases.TrackerUseCase) *TrackHandler {
	return &TrackHandler{trackerUseCase}
}

// Track ingere um evento de comportamento. Payload inválido devolve 400;
// qualquer falha de storage é logada e respondida com 200, porque o
// cliente não tem o que fazer com um erro de telemetria e reenvios só
// duplicariam carga.
func (h *TrackHandler) Track(c *fiber.Ctx) error {
	var req TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid JSON body",
		})
	}

	// Identidade do token (quando presente) prevalece sobre o payload.
	if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
		req.UserID = &uid
	}

	in := usecases.TrackEventInput{
		ActionType:   req.ActionType,
		SessionID:    req.SessionID,
		UserID:       req.UserID,
		PageURL:      req.PageURL,
		PageTitle:    req.PageTitle,
		Referrer:     req.Referrer,
		ActionData:   req.ActionData,
		TimeSpent:    req.TimeSpent,
		Device:       req.Device,
		Geo:          req.Geo,
		Query:        req.Query,
		SearchType:   req.SearchType,
		ResultCount:  req.ResultCount,
		SearchTimeMs: req.SearchTimeMs,
		Position:     req.Position,
		ResultID:     req.ResultID,
		ResultType:   req.ResultType,
		At:           time.Now().UTC(),
	}

	eventID, err := h.trackerUseCase.RecordEvent(c.Context(), in)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}

		log.Printf("⚠️ evento perdido (sessão %s, ação %s): %v", req.SessionID, req.ActionType, err)
		return c.JSON(fiber.Map{"success": true})
	}

	return c.JSON(fiber.Map{"success": true, "event_id": eventID})
}
