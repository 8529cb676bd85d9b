package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBumpDailyMetric_RejectsUnknownColumn(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMetricsRepository(db)

	err := repo.BumpDailyMetric(context.Background(), "user-1", time.Now(), "engagement_score; DROP TABLE", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown daily metric column")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBumpDailyMetric_UpsertsAndRecomputesScore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMetricsRepository(db)

	mock.ExpectExec(`INSERT INTO user_engagement_metrics`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE user_engagement_metrics SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.BumpDailyMetric(context.Background(), "user-1", time.Now(), "page_views", 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBumpContentMetric_ShareAlsoUpdatesDerivedFields(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMetricsRepository(db)

	mock.ExpectExec(`INSERT INTO content_analytics`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE content_analytics SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.BumpContentMetric(context.Background(), "course", 42, time.Now(), 0, ContentActionShare)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBumpRealtimeWindow_CoversEveryWindowSize(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMetricsRepository(db)

	at := time.Date(2026, 3, 14, 10, 37, 12, 0, time.UTC)

	// Um único upsert multi-linha: os buckets das cinco janelas entram
	// como argumentos da mesma instrução.
	mock.ExpectExec(`INSERT INTO realtime_analytics_summary`).
		WithArgs(
			"page_views", 1, time.Date(2026, 3, 14, 10, 37, 0, 0, time.UTC), time.Date(2026, 3, 14, 10, 38, 0, 0, time.UTC),
			"page_views", 5, time.Date(2026, 3, 14, 10, 35, 0, 0, time.UTC), time.Date(2026, 3, 14, 10, 40, 0, 0, time.UTC),
			"page_views", 15, time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC), time.Date(2026, 3, 14, 10, 45, 0, 0, time.UTC),
			"page_views", 30, time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC), time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC),
			"page_views", 60, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC),
		).
		WillReturnResult(sqlmock.NewResult(0, 5))

	err := repo.BumpRealtimeWindow(context.Background(), "page_views", at)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
