package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campushub/analytics-api/internal/domain/entities"
	"github.com/campushub/analytics-api/internal/utils"
	"gorm.io/gorm"
)

// Ações reconhecidas pelo rollup de conteúdo.
const (
	ContentActionView     = "view"
	ContentActionShare    = "share"
	ContentActionDownload = "download"
)

type IMetricsRepository interface {
	BumpDailyMetric(ctx context.Context, userID string, date time.Time, field string, delta int) error
	BumpContentMetric(ctx context.Context, contentType string, contentID int64, date time.Time, timeSpent int, action string) error
	BumpRealtimeWindow(ctx context.Context, metricName string, at time.Time) error
}

// Colunas aditivas permitidas no upsert diário. O nome do campo entra na
// query por fmt.Sprintf, então tudo que não estiver aqui é recusado.
var dailyMetricColumns = map[string]bool{
	"sessions_count":    true,
	"page_views":        true,
	"actions_performed": true,
	"content_consumed":  true,
	"events_registered": true,
	"search_queries":    true,
	"downloads":         true,
	"social_shares":     true,
}

type MetricsRepository struct {
	db *gorm.DB
}

func NewMetricsRepository(db *gorm.DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

// BumpDailyMetric acumula delta na coluna pedida do rollup (usuário, dia)
// em um único upsert atômico: nunca SELECT seguido de UPDATE, então
// escritores concorrentes da mesma chave não perdem incrementos.
func (r *MetricsRepository) BumpDailyMetric(ctx context.Context, userID string, date time.Time, field string, delta int) error {
	if !dailyMetricColumns[field] {
		return fmt.Errorf("unknown daily metric column: %s", field)
	}

	day := utils.StartOfDay(date.UTC())

	query := fmt.Sprintf(`INSERT INTO user_engagement_metrics (user_id, metric_date, %s, updated_at)
		VALUES (?, ?, ?, NOW())
		ON CONFLICT (user_id, metric_date) DO UPDATE SET
			%s = user_engagement_metrics.%s + EXCLUDED.%s,
			updated_at = NOW()`, field, field, field, field)

	if err := r.db.WithContext(ctx).Exec(query, userID, day, delta).Error; err != nil {
		return err
	}

	// Score é derivado dos contadores gravados; a recomputação separada
	// converge mesmo sob concorrência.
	return r.db.WithContext(ctx).Exec(`UPDATE user_engagement_metrics SET
			engagement_score = sessions_count * 0.5
				+ page_views * 1.0
				+ actions_performed * 2.0
				+ content_consumed * 3.0
				+ search_queries * 1.5
				+ events_registered * 5.0
				+ downloads * 2.0
				+ social_shares * 4.0
		WHERE user_id = ? AND metric_date = ?`, userID, day).Error
}

// BumpContentMetric acumula o rollup (tipo de conteúdo, id, dia). Views,
// tempo gasto, shares e downloads entram no mesmo upsert; a média de tempo
// é recalculada inline a partir da linha antiga + EXCLUDED.
func (r *MetricsRepository) BumpContentMetric(ctx context.Context, contentType string, contentID int64, date time.Time, timeSpent int, action string) error {
	day := utils.StartOfDay(date.UTC())

	views, shares, downloads := 0, 0, 0
	switch action {
	case ContentActionView:
		views = 1
	case ContentActionShare:
		shares = 1
	case ContentActionDownload:
		downloads = 1
	}

	initialAvg := 0.0
	if views > 0 {
		initialAvg = float64(timeSpent)
	}

	if err := r.db.WithContext(ctx).Exec(`INSERT INTO content_analytics
			(content_type, content_id, metric_date, views, time_spent_total, shares, downloads, avg_time_spent, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
		ON CONFLICT (content_type, content_id, metric_date) DO UPDATE SET
			views = content_analytics.views + EXCLUDED.views,
			time_spent_total = content_analytics.time_spent_total + EXCLUDED.time_spent_total,
			shares = content_analytics.shares + EXCLUDED.shares,
			downloads = content_analytics.downloads + EXCLUDED.downloads,
			avg_time_spent = CAST(content_analytics.time_spent_total + EXCLUDED.time_spent_total AS DOUBLE PRECISION)
				/ GREATEST(content_analytics.views + EXCLUDED.views, 1),
			updated_at = NOW()`,
		contentType, contentID, day, views, timeSpent, shares, downloads, initialAvg).Error; err != nil {
		return err
	}

	// unique_viewers e engagement_rate são derivados; Postgres não aceita
	// subquery dentro do DO UPDATE SET, então ficam num UPDATE próprio.
	return r.db.WithContext(ctx).Exec(`UPDATE content_analytics SET
			unique_viewers = (
				SELECT COUNT(DISTINCT b.user_id) FROM user_behavior_tracking b
				WHERE b.user_id IS NOT NULL
					AND b.action_data->>'content_type' = content_analytics.content_type
					AND CAST(b.action_data->>'content_id' AS BIGINT) = content_analytics.content_id
					AND CAST(b.event_time AS DATE) = content_analytics.metric_date
			),
			engagement_rate = CAST(shares + downloads AS DOUBLE PRECISION) / GREATEST(views, 1)
		WHERE content_type = ? AND content_id = ? AND metric_date = ?`,
		contentType, contentID, day).Error
}

// BumpRealtimeWindow incrementa o contador de cada janela suportada
// (1/5/15/30/60 min) para o bucket que contém o instante at, em um único
// upsert multi-linha.
func (r *MetricsRepository) BumpRealtimeWindow(ctx context.Context, metricName string, at time.Time) error {
	var placeholders []string
	var args []interface{}

	for _, size := range entities.RealtimeWindowSizes {
		start, end := utils.WindowBucket(at, size)
		placeholders = append(placeholders, "(?, ?, ?, ?, 1)")
		args = append(args, metricName, size, start, end)
	}

	query := fmt.Sprintf(`INSERT INTO realtime_analytics_summary
			(metric_name, window_minutes, window_start, window_end, metric_value)
		VALUES %s
		ON CONFLICT (metric_name, window_minutes, window_start) DO UPDATE SET
			metric_value = realtime_analytics_summary.metric_value + EXCLUDED.metric_value`,
		strings.Join(placeholders, ", "))

	return r.db.WithContext(ctx).Exec(query, args...).Error
}
