package entities

import "time"

// Tipos de resposta dos relatórios lidos pelos dashboards administrativos.

// EngagementOverviewRow é o total por dia dentro da janela pedida.
type EngagementOverviewRow struct {
	Date               string  `json:"date"`
	ActiveUsers        int64   `json:"active_users"`
	Sessions           int64   `json:"sessions"`
	PageViews          int64   `json:"page_views"`
	Actions            int64   `json:"actions"`
	AvgEngagementScore float64 `json:"avg_engagement_score"`
}

// TopContentRow é um item de conteúdo ranqueado por visualizações.
type TopContentRow struct {
	ContentType   string  `json:"content_type"`
	ContentID     int64   `json:"content_id"`
	Title         string  `json:"title"`
	Views         int64   `json:"views"`
	UniqueViewers int64   `json:"unique_viewers"`
	AvgTimeSpent  float64 `json:"avg_time_spent"`
	Shares        int64   `json:"shares"`
	Downloads     int64   `json:"downloads"`
}

// DeviceStatsRow agrupa sessões por (dispositivo, SO, navegador).
type DeviceStatsRow struct {
	DeviceType         string  `json:"device_type"`
	OS                 string  `json:"os"`
	Browser            string  `json:"browser"`
	Sessions           int64   `json:"sessions"`
	AvgDurationSeconds float64 `json:"avg_duration_seconds"`
}

// SearchAnalyticsRow resume uma query repetida na janela, com CTR.
type SearchAnalyticsRow struct {
	Query            string  `json:"query"`
	Searches         int64   `json:"searches"`
	Clicks           int64   `json:"clicks"`
	ClickThroughRate float64 `json:"click_through_rate"`
	NoResultCount    int64   `json:"no_result_count"`
	AvgResultCount   float64 `json:"avg_result_count"`
}

// RealtimeMetric é o total corrente de uma métrica para a janela pedida.
type RealtimeMetric struct {
	MetricName string `json:"metric_name"`
	Value      int64  `json:"value"`
}

// FullReport compõe todos os relatórios em uma resposta única (cacheada).
type FullReport struct {
	Days        int                     `json:"days"`
	Overview    []EngagementOverviewRow `json:"overview"`
	TopContent  []TopContentRow         `json:"top_content"`
	Devices     []DeviceStatsRow        `json:"devices"`
	Search      []SearchAnalyticsRow    `json:"search"`
	Realtime    []RealtimeMetric        `json:"realtime"`
	GeneratedAt time.Time               `json:"generated_at"`
}
