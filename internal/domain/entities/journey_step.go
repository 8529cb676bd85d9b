package entities

import "time"

// Métodos de saída de um passo de jornada.
const (
	ExitMethodNavigation = "navigation"
	ExitMethodSessionEnd = "session_end"
)

// JourneyStep é um intervalo de visita a uma página dentro de uma sessão.
// step_number é estritamente crescente (1, 2, 3, ...) por sessão e no
// máximo um passo por sessão tem exited_at nulo (o passo "atual").
type JourneyStep struct {
	ID               int64      `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	SessionID        string     `json:"session_id" gorm:"column:session_id"`
	UserID           *string    `json:"user_id" gorm:"column:user_id"`
	StepNumber       int        `json:"step_number" gorm:"column:step_number"`
	PageURL          string     `json:"page_url" gorm:"column:page_url"`
	PageTitle        string     `json:"page_title" gorm:"column:page_title"`
	EnteredAt        time.Time  `json:"entered_at" gorm:"column:entered_at"`
	ExitedAt         *time.Time `json:"exited_at" gorm:"column:exited_at"`
	TimeSpentSeconds *int       `json:"time_spent_seconds" gorm:"column:time_spent_seconds"`
	NextPageURL      *string    `json:"next_page_url" gorm:"column:next_page_url"`
	ExitMethod       *string    `json:"exit_method" gorm:"column:exit_method"`
}

func (JourneyStep) TableName() string {
	return "user_journey_tracking"
}
