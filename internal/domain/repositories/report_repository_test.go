package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementOverview_ScansDailyRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"date", "active_users", "sessions", "page_views", "actions", "avg_engagement_score"}).
		AddRow("2026-03-14", int64(120), int64(340), int64(2100), int64(980), 41.5).
		AddRow("2026-03-13", int64(95), int64(260), int64(1800), int64(720), 38.2)

	mock.ExpectQuery(`FROM user_engagement_metrics`).
		WithArgs(7).
		WillReturnRows(rows)

	result, err := repo.EngagementOverview(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "2026-03-14", result[0].Date)
	assert.Equal(t, int64(120), result[0].ActiveUsers)
	assert.Equal(t, 38.2, result[1].AvgEngagementScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopContent_ClampsInvalidLimit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"content_type", "content_id", "title", "views", "unique_viewers", "avg_time_spent", "shares", "downloads"}).
		AddRow("course", int64(42), "Cálculo I", int64(900), int64(310), 74.2, int64(12), int64(40))

	// limit 0 e limit 999 caem ambos no padrão 10.
	mock.ExpectQuery(`FROM content_analytics ca`).
		WithArgs(30, 10).
		WillReturnRows(rows)

	result, err := repo.TopContent(context.Background(), 0, 30)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Cálculo I", result[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(`FROM content_analytics ca`).
		WithArgs(30, 10).
		WillReturnRows(sqlmock.NewRows([]string{"content_type", "content_id", "title", "views", "unique_viewers", "avg_time_spent", "shares", "downloads"}))

	_, err = repo.TopContent(context.Background(), 999, 30)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceStats_GroupsByDeviceTuple(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"device_type", "os", "browser", "sessions", "avg_duration_seconds"}).
		AddRow("mobile", "Android", "Chrome", int64(520), 312.7).
		AddRow("desktop", "Windows", "Firefox", int64(210), 611.0)

	mock.ExpectQuery(`FROM device_analytics`).
		WithArgs(30).
		WillReturnRows(rows)

	result, err := repo.DeviceStats(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "mobile", result[0].DeviceType)
	assert.Equal(t, int64(520), result[0].Sessions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchAnalytics_ScansCTRAndNoResultCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"query", "searches", "clicks", "click_through_rate", "no_result_count", "avg_result_count"}).
		AddRow("cálculo", int64(40), int64(28), 0.70, int64(3), 11.5)

	mock.ExpectQuery(`FROM search_analytics`).
		WithArgs(30, 20).
		WillReturnRows(rows)

	result, err := repo.SearchAnalytics(context.Background(), 30, 20)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 0.70, result[0].ClickThroughRate)
	assert.Equal(t, int64(3), result[0].NoResultCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRealtime_SumsBucketsForWindow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"metric_name", "value"}).
		AddRow("active_sessions", int64(34)).
		AddRow("page_views", int64(187))

	mock.ExpectQuery(`FROM realtime_analytics_summary`).
		WithArgs(5, 5).
		WillReturnRows(rows)

	result, err := repo.Realtime(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "active_sessions", result[0].MetricName)
	assert.Equal(t, int64(187), result[1].Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}
