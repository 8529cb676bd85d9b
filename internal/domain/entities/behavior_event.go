package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActionData é o envelope tipado do payload livre enviado pelo cliente.
// Campos conhecidos ficam tipados; o resto vai em Extra (string -> primitivo)
// para manter compatibilidade com instrumentações antigas.
type ActionData struct {
	ContentType     string         `json:"content_type,omitempty"`
	ContentID       int64          `json:"content_id,omitempty"`
	ElementID       string         `json:"element_id,omitempty"`
	SearchQuery     string         `json:"search_query,omitempty"`
	ResultCount     int            `json:"result_count,omitempty"`
	ConversionValue float64        `json:"conversion_value,omitempty"`
	Extra           map[string]any `json:"extra,omitempty"`
}

// ToJSON serializa o envelope para gravação na coluna jsonb.
func (d *ActionData) ToJSON() json.RawMessage {
	if d == nil {
		return nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil
	}
	return raw
}

// BehaviorEvent é um fato append-only: nunca é atualizado ou removido
// pelo core (limpeza/retensão é responsabilidade externa).
type BehaviorEvent struct {
	EventID    uuid.UUID       `json:"event_id" gorm:"type:uuid;primary_key;column:event_id"`
	SessionID  string          `json:"session_id" gorm:"column:session_id"`
	UserID     *string         `json:"user_id" gorm:"column:user_id"`
	ActionType string          `json:"action_type" gorm:"column:action_type"`
	PageURL    string          `json:"page_url" gorm:"column:page_url"`
	Referrer   string          `json:"referrer" gorm:"column:referrer"`
	ActionData json.RawMessage `json:"action_data" gorm:"column:action_data;type:jsonb"`
	DeviceType string          `json:"device_type" gorm:"column:device_type"`
	Browser    string          `json:"browser" gorm:"column:browser"`
	TimeSpent  *int            `json:"time_spent" gorm:"column:time_spent"`
	EventTime  time.Time       `json:"event_time" gorm:"column:event_time"`
}

func (BehaviorEvent) TableName() string {
	return "user_behavior_tracking"
}

// Tipos de ação conhecidos pelo pipeline. action_type é uma tag livre,
// estes são apenas os que disparam rollups específicos.
const (
	ActionPageView          = "page_view"
	ActionClick             = "click"
	ActionSearch            = "search"
	ActionSearchClick       = "search_click"
	ActionContentEngagement = "content_engagement"
	ActionConversion        = "conversion"
	ActionDownload          = "download"
	ActionSocialShare       = "social_share"
	ActionEventRegistration = "event_registration"
	ActionSessionEnd        = "session_end"
)
