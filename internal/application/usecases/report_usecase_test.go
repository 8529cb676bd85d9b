package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/campushub/analytics-api/internal/domain/apperrors"
	"github.com/campushub/analytics-api/internal/domain/entities"
	"github.com/campushub/analytics-api/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReportRepo struct {
	err error

	overviewCalls int
	lastDays      int
	lastWindow    int
}

func (s *stubReportRepo) EngagementOverview(_ context.Context, days int) ([]entities.EngagementOverviewRow, error) {
	s.overviewCalls++
	s.lastDays = days
	if s.err != nil {
		return nil, s.err
	}
	return []entities.EngagementOverviewRow{{Date: "2026-03-14", Sessions: 10}}, nil
}

func (s *stubReportRepo) TopContent(_ context.Context, _, _ int) ([]entities.TopContentRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []entities.TopContentRow{{ContentType: "course", ContentID: 42, Views: 900}}, nil
}

func (s *stubReportRepo) DeviceStats(_ context.Context, _ int) ([]entities.DeviceStatsRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []entities.DeviceStatsRow{{DeviceType: "mobile", Sessions: 520}}, nil
}

func (s *stubReportRepo) SearchAnalytics(_ context.Context, _, _ int) ([]entities.SearchAnalyticsRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []entities.SearchAnalyticsRow{{Query: "cálculo", Searches: 40}}, nil
}

func (s *stubReportRepo) Realtime(_ context.Context, windowMinutes int) ([]entities.RealtimeMetric, error) {
	s.lastWindow = windowMinutes
	if s.err != nil {
		return nil, s.err
	}
	return []entities.RealtimeMetric{{MetricName: "page_views", Value: 187}}, nil
}

func newReportFixture() (*stubReportRepo, ReportUseCase) {
	repo := &stubReportRepo{}
	return repo, NewReportUseCase(repo, cache.NewMemoryStore())
}

func TestEngagementOverview_NormalizesDays(t *testing.T) {
	repo, uc := newReportFixture()

	_, err := uc.EngagementOverview(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, repo.lastDays)

	_, err = uc.EngagementOverview(context.Background(), 4000)
	require.NoError(t, err)
	assert.Equal(t, 365, repo.lastDays)
}

func TestReportQueries_FailureIsReportUnavailable(t *testing.T) {
	repo, uc := newReportFixture()
	repo.err = errors.New("connection refused")

	_, err := uc.EngagementOverview(context.Background(), 7)
	require.ErrorIs(t, err, apperrors.ErrReportUnavailable)

	_, err = uc.TopContent(context.Background(), 10, 7)
	require.ErrorIs(t, err, apperrors.ErrReportUnavailable)

	_, err = uc.Realtime(context.Background(), 5)
	require.ErrorIs(t, err, apperrors.ErrReportUnavailable)
}

func TestRealtime_InvalidWindowFallsBack(t *testing.T) {
	repo, uc := newReportFixture()

	_, err := uc.Realtime(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastWindow)

	_, err = uc.Realtime(context.Background(), 60)
	require.NoError(t, err)
	assert.Equal(t, 60, repo.lastWindow)
}

func TestFullReport_CachesResult(t *testing.T) {
	repo, uc := newReportFixture()

	first, err := uc.FullReport(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 1, repo.overviewCalls)
	assert.Equal(t, 7, first.Days)

	// Segunda chamada dentro do TTL vem do cache, sem tocar o storage.
	second, err := uc.FullReport(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.overviewCalls)
	assert.Equal(t, first.GeneratedAt.Unix(), second.GeneratedAt.Unix())
	assert.Equal(t, first.TopContent, second.TopContent)
}

func TestFullReport_DifferentWindowsCacheSeparately(t *testing.T) {
	repo, uc := newReportFixture()

	_, err := uc.FullReport(context.Background(), 7)
	require.NoError(t, err)
	_, err = uc.FullReport(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.overviewCalls)
}

func TestFullReport_FailureIsNotCached(t *testing.T) {
	repo, uc := newReportFixture()

	repo.err = errors.New("connection refused")
	_, err := uc.FullReport(context.Background(), 7)
	require.ErrorIs(t, err, apperrors.ErrReportUnavailable)

	// Depois da recuperação do storage o relatório é recomputado, não há
	// entrada envenenada no cache.
	repo.err = nil
	report, err := uc.FullReport(context.Background(), 7)
	require.NoError(t, err)
	assert.NotEmpty(t, report.Overview)
}

func TestInvalidateCache_ForcesRecompute(t *testing.T) {
	repo, uc := newReportFixture()

	_, err := uc.FullReport(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 1, repo.overviewCalls)

	uc.InvalidateCache()

	_, err = uc.FullReport(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.overviewCalls)
}

func TestCacheStats_CountsHitsAndMisses(t *testing.T) {
	_, uc := newReportFixture()

	_, _ = uc.FullReport(context.Background(), 7)
	_, _ = uc.FullReport(context.Background(), 7)

	stats := uc.CacheStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
}
