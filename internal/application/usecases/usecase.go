package usecases

import (
	"context"

	"github.com/campushub/analytics-api/internal/domain/entities"
)

// Aggregator é a capacidade de rollup consumida pelo tracker. O tracker
// nunca depende do MetricsUseCase concreto: falha de agregação é logada
// e engolida, o evento primário já está durável.
type Aggregator interface {
	AggregateEvent(ctx context.Context, event *entities.BehaviorEvent, data *entities.ActionData) error
	AggregateSessionOpen(ctx context.Context, session *entities.Session) error
}

// UseCases agrupa os casos de uso da API para injeção nas rotas.
type UseCases struct {
	Tracker TrackerUseCase
	Metrics MetricsUseCase
	Report  ReportUseCase
}
