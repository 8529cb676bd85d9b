package repositories

import (
	"context"

	"github.com/campushub/analytics-api/internal/domain/entities"
	"gorm.io/gorm"
)

type IReportRepository interface {
	EngagementOverview(ctx context.Context, days int) ([]entities.EngagementOverviewRow, error)
	TopContent(ctx context.Context, limit, days int) ([]entities.TopContentRow, error)
	DeviceStats(ctx context.Context, days int) ([]entities.DeviceStatsRow, error)
	SearchAnalytics(ctx context.Context, days, limit int) ([]entities.SearchAnalyticsRow, error)
	Realtime(ctx context.Context, windowMinutes int) ([]entities.RealtimeMetric, error)
}

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// EngagementOverview retorna os totais por dia, mais recente primeiro.
func (r *ReportRepository) EngagementOverview(ctx context.Context, days int) ([]entities.EngagementOverviewRow, error) {
	var rows []entities.EngagementOverviewRow

	err := r.db.WithContext(ctx).Raw(`SELECT
			TO_CHAR(metric_date, 'YYYY-MM-DD') AS date,
			COUNT(DISTINCT user_id) AS active_users,
			COALESCE(SUM(sessions_count), 0) AS sessions,
			COALESCE(SUM(page_views), 0) AS page_views,
			COALESCE(SUM(actions_performed), 0) AS actions,
			COALESCE(AVG(engagement_score), 0) AS avg_engagement_score
		FROM user_engagement_metrics
		WHERE metric_date >= CURRENT_DATE - ?::integer * INTERVAL '1 day'
		GROUP BY metric_date
		ORDER BY metric_date DESC`, days).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopContent ranqueia conteúdo por visualizações na janela. Empates são
// desfeitos por unique_viewers e depois por content_id, para que um "top N"
// sem paginação seja determinístico entre chamadas.
func (r *ReportRepository) TopContent(ctx context.Context, limit, days int) ([]entities.TopContentRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var rows []entities.TopContentRow

	err := r.db.WithContext(ctx).Raw(`SELECT
			ca.content_type,
			ca.content_id,
			COALESCE(c.title, '') AS title,
			SUM(ca.views) AS views,
			SUM(ca.unique_viewers) AS unique_viewers,
			CAST(SUM(ca.time_spent_total) AS DOUBLE PRECISION) / GREATEST(SUM(ca.views), 1) AS avg_time_spent,
			SUM(ca.shares) AS shares,
			SUM(ca.downloads) AS downloads
		FROM content_analytics ca
		LEFT JOIN contents c ON c.id = ca.content_id
		WHERE ca.metric_date >= CURRENT_DATE - ?::integer * INTERVAL '1 day'
		GROUP BY ca.content_type, ca.content_id, c.title
		ORDER BY views DESC, unique_viewers DESC, ca.content_id ASC
		LIMIT ?`, days, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeviceStats agrupa sessões por (dispositivo, SO, navegador).
func (r *ReportRepository) DeviceStats(ctx context.Context, days int) ([]entities.DeviceStatsRow, error) {
	var rows []entities.DeviceStatsRow

	err := r.db.WithContext(ctx).Raw(`SELECT
			device_type,
			os,
			browser,
			COUNT(*) AS sessions,
			COALESCE(AVG(duration_seconds), 0) AS avg_duration_seconds
		FROM device_analytics
		WHERE session_start >= NOW() - ?::integer * INTERVAL '1 day'
		GROUP BY device_type, os, browser
		ORDER BY sessions DESC, device_type, os, browser`, days).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchAnalytics resume queries repetidas (mais de uma busca na janela)
// com CTR arredondado em 2 casas e contagem de buscas sem resultado.
func (r *ReportRepository) SearchAnalytics(ctx context.Context, days, limit int) ([]entities.SearchAnalyticsRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var rows []entities.SearchAnalyticsRow

	err := r.db.WithContext(ctx).Raw(`SELECT
			query,
			COUNT(*) AS searches,
			COUNT(clicked_position) AS clicks,
			ROUND(CAST(COUNT(clicked_position) AS NUMERIC) / COUNT(*), 2) AS click_through_rate,
			COUNT(*) FILTER (WHERE result_count = 0) AS no_result_count,
			COALESCE(AVG(result_count), 0) AS avg_result_count
		FROM search_analytics
		WHERE created_at >= NOW() - ?::integer * INTERVAL '1 day'
		GROUP BY query
		HAVING COUNT(*) > 1
		ORDER BY searches DESC, query ASC
		LIMIT ?`, days, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Realtime soma os buckets ainda relevantes da janela pedida
// (window_end >= agora - janela).
func (r *ReportRepository) Realtime(ctx context.Context, windowMinutes int) ([]entities.RealtimeMetric, error) {
	var rows []entities.RealtimeMetric

	err := r.db.WithContext(ctx).Raw(`SELECT
			metric_name,
			COALESCE(SUM(metric_value), 0) AS value
		FROM realtime_analytics_summary
		WHERE window_minutes = ?
			AND window_end >= NOW() - ?::integer * INTERVAL '1 minute'
		GROUP BY metric_name
		ORDER BY metric_name ASC`, windowMinutes, windowMinutes).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
