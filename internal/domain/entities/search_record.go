package entities

import "time"

// SearchRecord guarda uma busca e, eventualmente, o clique resultante.
// Um clique resolve o registro não-resolvido mais recente da mesma
// sessão+query; nunca cria linha nova.
type SearchRecord struct {
	ID                int64     `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	SessionID         string    `json:"session_id" gorm:"column:session_id"`
	UserID            *string   `json:"user_id" gorm:"column:user_id"`
	Query             string    `json:"query" gorm:"column:query"`
	SearchType        string    `json:"search_type" gorm:"column:search_type"`
	ResultCount       int       `json:"result_count" gorm:"column:result_count"`
	SearchTimeMs      *int      `json:"search_time_ms" gorm:"column:search_time_ms"`
	ClickedPosition   *int      `json:"clicked_position" gorm:"column:clicked_position"`
	ClickedResultID   *string   `json:"clicked_result_id" gorm:"column:clicked_result_id"`
	ClickedResultType *string   `json:"clicked_result_type" gorm:"column:clicked_result_type"`
	CreatedAt         time.Time `json:"created_at" gorm:"column:created_at"`
}

func (SearchRecord) TableName() string {
	return "search_analytics"
}
