package handlers

import (
	"errors"
	"strconv"

	"github.com/campushub/analytics-api/internal/application/usecases"
	"github.com/campushub/analytics-api/internal/domain/apperrors"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportUseCase usecases.ReportUseCase
}

func NewReportHandler(reportUseCase usecases.ReportUseCase) *ReportHandler {
	return &ReportHandler{reportUseCase}
}

// reportError distingue relatório indisponível (503, o dashboard mostra
// "dados faltando") de qualquer outra falha (500). Zeros fabricados nunca
// saem daqui.
func reportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, apperrors.ErrReportUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "report temporarily unavailable",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}

func (h *ReportHandler) GetOverview(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))

	rows, err := h.reportUseCase.EngagementOverview(c.Context(), days)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(fiber.Map{"days": days, "overview": rows})
}

func (h *ReportHandler) GetTopContent(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	rows, err := h.reportUseCase.TopContent(c.Context(), limit, days)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(fiber.Map{"days": days, "top_content": rows})
}

func (h *ReportHandler) GetDevices(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))

	rows, err := h.reportUseCase.DeviceStats(c.Context(), days)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(fiber.Map{"days": days, "devices": rows})
}

func (h *ReportHandler) GetSearch(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	rows, err := h.reportUseCase.SearchAnalytics(c.Context(), days, limit)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(fiber.Map{"days": days, "search": rows})
}

func (h *ReportHandler) GetRealtime(c *fiber.Ctx) error {
	window, _ := strconv.Atoi(c.Query("window", "5"))

	rows, err := h.reportUseCase.Realtime(c.Context(), window)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(fiber.Map{"window_minutes": window, "metrics": rows})
}

func (h *ReportHandler) GetFullReport(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))

	report, err := h.reportUseCase.FullReport(c.Context(), days)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) GetCacheStats(c *fiber.Ctx) error {
	return c.JSON(h.reportUseCase.CacheStats())
}

func (h *ReportHandler) ClearCache(c *fiber.Ctx) error {
	h.reportUseCase.InvalidateCache()
	return c.JSON(fiber.Map{"success": true})
}
