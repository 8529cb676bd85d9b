package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/campushub/analytics-api/internal/domain/apperrors"
	"github.com/campushub/analytics-api/internal/domain/entities"
	"github.com/campushub/analytics-api/internal/domain/repositories"
	"github.com/campushub/analytics-api/internal/infrastructure/cache"
)

const (
	defaultReportDays     = 30
	defaultRealtimeWindow = 5
	fullReportTTL         = 5 * time.Minute
)

type ReportUseCase interface {
	EngagementOverview(ctx context.Context, days int) ([]entities.EngagementOverviewRow, error)
	TopContent(ctx context.Context, limit, days int) ([]entities.TopContentRow, error)
	DeviceStats(ctx context.Context, days int) ([]entities.DeviceStatsRow, error)
	SearchAnalytics(ctx context.Context, days, limit int) ([]entities.SearchAnalyticsRow, error)
	Realtime(ctx context.Context, windowMinutes int) ([]entities.RealtimeMetric, error)
	FullReport(ctx context.Context, days int) (*entities.FullReport, error)
	InvalidateCache()
	CacheStats() cache.Stats
}

type reportUseCase struct {
	reportRepo repositories.IReportRepository
	store      cache.Store
}

func NewReportUseCase(reportRepo repositories.IReportRepository, store cache.Store) ReportUseCase {
	return &reportUseCase{reportRepo, store}
}

// normalizeDays limita a janela pedida pelos dashboards. Janela zero ou
// negativa cai no padrão; acima de um ano é truncada.
func normalizeDays(days int) int {
	if days <= 0 {
		return defaultReportDays
	}
	if days > 365 {
		return 365
	}
	return days
}

func (uc *reportUseCase) EngagementOverview(ctx context.Context, days int) ([]entities.EngagementOverviewRow, error) {
	rows, err := uc.reportRepo.EngagementOverview(ctx, normalizeDays(days))
	if err != nil {
		return nil, apperrors.Report("engagement overview", err)
	}
	return rows, nil
}

func (uc *reportUseCase) TopContent(ctx context.Context, limit, days int) ([]entities.TopContentRow, error) {
	rows, err := uc.reportRepo.TopContent(ctx, limit, normalizeDays(days))
	if err != nil {
		return nil, apperrors.Report("top content", err)
	}
	return rows, nil
}

func (uc *reportUseCase) DeviceStats(ctx context.Context, days int) ([]entities.DeviceStatsRow, error) {
	rows, err := uc.reportRepo.DeviceStats(ctx, normalizeDays(days))
	if err != nil {
		return nil, apperrors.Report("device stats", err)
	}
	return rows, nil
}

func (uc *reportUseCase) SearchAnalytics(ctx context.Context, days, limit int) ([]entities.SearchAnalyticsRow, error) {
	rows, err := uc.reportRepo.SearchAnalytics(ctx, normalizeDays(days), limit)
	if err != nil {
		return nil, apperrors.Report("search analytics", err)
	}
	return rows, nil
}

func (uc *reportUseCase) Realtime(ctx context.Context, windowMinutes int) ([]entities.RealtimeMetric, error) {
	valid := false
	for _, w := range entities.RealtimeWindowSizes {
		if w == windowMinutes {
			valid = true
			break
		}
	}
	if !valid {
		windowMinutes = defaultRealtimeWindow
	}

	rows, err := uc.reportRepo.Realtime(ctx, windowMinutes)
	if err != nil {
		return nil, apperrors.Report("realtime", err)
	}
	return rows, nil
}

// FullReport monta o relatório composto e memoiza o JSON no cache por
// cinco minutos. Uma consulta que falha invalida o relatório inteiro:
// o dashboard recebe erro, nunca seções zeradas misturadas com dados.
func (uc *reportUseCase) FullReport(ctx context.Context, days int) (*entities.FullReport, error) {
	days = normalizeDays(days)
	key := fmt.Sprintf("report:full:%d", days)

	if raw, ok := uc.store.Get(key); ok {
		var cached entities.FullReport
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		// Entrada corrompida: descarta e recomputa.
		uc.store.Delete(key)
	}

	report := &entities.FullReport{Days: days, GeneratedAt: time.Now().UTC()}

	var err error
	if report.Overview, err = uc.reportRepo.EngagementOverview(ctx, days); err != nil {
		return nil, apperrors.Report("full report: overview", err)
	}
	if report.TopContent, err = uc.reportRepo.TopContent(ctx, 10, days); err != nil {
		return nil, apperrors.Report("full report: top content", err)
	}
	if report.Devices, err = uc.reportRepo.DeviceStats(ctx, days); err != nil {
		return nil, apperrors.Report("full report: devices", err)
	}
	if report.Search, err = uc.reportRepo.SearchAnalytics(ctx, days, 20); err != nil {
		return nil, apperrors.Report("full report: search", err)
	}
	if report.Realtime, err = uc.reportRepo.Realtime(ctx, defaultRealtimeWindow); err != nil {
		return nil, apperrors.Report("full report: realtime", err)
	}

	if raw, err := json.Marshal(report); err == nil {
		uc.store.Set(key, raw, fullReportTTL)
	} else {
		log.Printf("⚠️ relatório não cacheado: %v", err)
	}

	return report, nil
}

func (uc *reportUseCase) InvalidateCache() {
	uc.store.Clear()
}

func (uc *reportUseCase) CacheStats() cache.Stats {
	return uc.store.Stats()
}
