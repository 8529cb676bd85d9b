package database

import (
	"context"

	"gorm.io/gorm"
)

// Chave para o contexto que indica se o timezone já foi configurado
type timezoneKey struct{}

// SetTimezoneMiddleware cria um middleware GORM para fixar o timezone em
// UTC. Os buckets de dia e de janela do pipeline são todos calculados em
// UTC, então as comparações de data no Postgres precisam do mesmo fuso.
func SetTimezoneMiddleware() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		// Verificar se já está processando uma configuração de timezone
		if _, ok := db.Statement.Context.Value(timezoneKey{}).(bool); ok {
			return // Evita recursão infinita
		}

		// Define um contexto marcado para evitar recursão
		ctx := context.WithValue(db.Statement.Context, timezoneKey{}, true)

		tx := db.WithContext(ctx)
		tx.Exec("SET timezone = 'UTC'")
	}
}

// RegisterMiddlewares registra os middlewares necessários no GORM
func RegisterMiddlewares(db *gorm.DB) {
	// Apenas no callback de query para evitar overhead nos inserts
	db.Callback().Query().Before("gorm:query").Register("set_timezone_before_query", SetTimezoneMiddleware())
}
