package entities

import "time"

// DailyEngagementMetric é o rollup por (usuário, dia). Única por
// (user_id, metric_date); escritas concorrentes acumulam via upsert
// aditivo, nunca sobrescrevem.
type DailyEngagementMetric struct {
	ID               int64     `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	UserID           string    `json:"user_id" gorm:"column:user_id"`
	MetricDate       time.Time `json:"metric_date" gorm:"column:metric_date;type:date"`
	SessionsCount    int       `json:"sessions_count" gorm:"column:sessions_count"`
	PageViews        int       `json:"page_views" gorm:"column:page_views"`
	ActionsPerformed int       `json:"actions_performed" gorm:"column:actions_performed"`
	ContentConsumed  int       `json:"content_consumed" gorm:"column:content_consumed"`
	EventsRegistered int       `json:"events_registered" gorm:"column:events_registered"`
	SearchQueries    int       `json:"search_queries" gorm:"column:search_queries"`
	Downloads        int       `json:"downloads" gorm:"column:downloads"`
	SocialShares     int       `json:"social_shares" gorm:"column:social_shares"`
	EngagementScore  float64   `json:"engagement_score" gorm:"column:engagement_score"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (DailyEngagementMetric) TableName() string {
	return "user_engagement_metrics"
}

// ContentEngagementMetric é o rollup por (tipo de conteúdo, id, dia).
type ContentEngagementMetric struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	ContentType    string    `json:"content_type" gorm:"column:content_type"`
	ContentID      int64     `json:"content_id" gorm:"column:content_id"`
	MetricDate     time.Time `json:"metric_date" gorm:"column:metric_date;type:date"`
	Views          int       `json:"views" gorm:"column:views"`
	UniqueViewers  int       `json:"unique_viewers" gorm:"column:unique_viewers"`
	TimeSpentTotal int       `json:"time_spent_total" gorm:"column:time_spent_total"`
	AvgTimeSpent   float64   `json:"avg_time_spent" gorm:"column:avg_time_spent"`
	Shares         int       `json:"shares" gorm:"column:shares"`
	Downloads      int       `json:"downloads" gorm:"column:downloads"`
	EngagementRate float64   `json:"engagement_rate" gorm:"column:engagement_rate"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (ContentEngagementMetric) TableName() string {
	return "content_analytics"
}

// RealtimeWindowMetric é o contador de janela deslizante para os painéis
// de tempo quase-real. Linhas antigas expiram naturalmente conforme as
// janelas avançam; a limpeza física é externa ao core.
type RealtimeWindowMetric struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	MetricName    string    `json:"metric_name" gorm:"column:metric_name"`
	WindowMinutes int       `json:"window_minutes" gorm:"column:window_minutes"`
	WindowStart   time.Time `json:"window_start" gorm:"column:window_start"`
	WindowEnd     time.Time `json:"window_end" gorm:"column:window_end"`
	MetricValue   int64     `json:"metric_value" gorm:"column:metric_value"`
}

func (RealtimeWindowMetric) TableName() string {
	return "realtime_analytics_summary"
}

// RealtimeWindowSizes são os tamanhos de janela suportados, em minutos.
var RealtimeWindowSizes = []int{1, 5, 15, 30, 60}
