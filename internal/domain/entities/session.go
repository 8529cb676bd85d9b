package entities

import "time"

// DeviceInfo carrega o descritor de dispositivo já resolvido pelo cliente.
// O tracker não faz parsing de user-agent, apenas persiste o snapshot.
type DeviceInfo struct {
	DeviceType     string `json:"device_type"`
	OS             string `json:"os"`
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browser_version"`
	IsMobile       bool   `json:"is_mobile"`
	IsTouch        bool   `json:"is_touch"`
}

// GeoInfo carrega o descritor de rede/localização já resolvido (GeoIP externo).
type GeoInfo struct {
	IPAddress string `json:"ip_address"`
	Country   string `json:"country"`
	Region    string `json:"region"`
	City      string `json:"city"`
}

// Session representa uma visita contínua identificada por um session_id
// opaco fornecido pelo cliente. No máximo uma linha aberta por session_id
// (índice único parcial em device_analytics, ver migrations).
type Session struct {
	ID              int64      `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	SessionID       string     `json:"session_id" gorm:"column:session_id"`
	UserID          *string    `json:"user_id" gorm:"column:user_id"`
	DeviceType      string     `json:"device_type" gorm:"column:device_type"`
	OS              string     `json:"os" gorm:"column:os"`
	Browser         string     `json:"browser" gorm:"column:browser"`
	BrowserVersion  string     `json:"browser_version" gorm:"column:browser_version"`
	IsMobile        bool       `json:"is_mobile" gorm:"column:is_mobile"`
	IsTouch         bool       `json:"is_touch" gorm:"column:is_touch"`
	IPAddress       string     `json:"ip_address" gorm:"column:ip_address"`
	Country         string     `json:"country" gorm:"column:country"`
	Region          string     `json:"region" gorm:"column:region"`
	City            string     `json:"city" gorm:"column:city"`
	IsInternal      bool       `json:"is_internal" gorm:"column:is_internal"`
	SessionStart    time.Time  `json:"session_start" gorm:"column:session_start"`
	SessionEnd      *time.Time `json:"session_end" gorm:"column:session_end"`
	DurationSeconds *int       `json:"duration_seconds" gorm:"column:duration_seconds"`
}

func (Session) TableName() string {
	return "device_analytics"
}
