package entities

import "time"

// ContentItem é o catálogo mínimo de conteúdo (notícias, eventos, páginas)
// usado só para juntar títulos nos relatórios de top conteúdo. O CRUD de
// conteúdo em si é colaborador externo.
type ContentItem struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	ContentType string    `json:"content_type" gorm:"column:content_type"`
	Title       string    `json:"title" gorm:"column:title"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}

func (ContentItem) TableName() string {
	return "contents"
}
