// Package apperrors define a taxonomia de erros do pipeline de analytics.
// Erros crus de storage nunca chegam ao consumidor da API: são
// classificados aqui na borda de cada componente.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indica campo obrigatório vazio ou ausente.
	// Volta para o caller sem tocar o storage.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStorageUnavailable indica falha de escrita/leitura no Postgres ou
	// no cache. Nos caminhos de tracking é logado e engolido; perder
	// telemetria é preferível a quebrar a requisição do usuário.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrReportUnavailable indica que uma consulta de relatório falhou.
	// O dashboard precisa saber que os números estão faltando, nunca
	// recebe zeros fabricados.
	ErrReportUnavailable = errors.New("report unavailable")

	// ErrAggregationFailure indica que um upsert de rollup falhou depois
	// da escrita do evento primário ter sucedido. Logado, nunca propagado
	// para quem registrou o evento.
	ErrAggregationFailure = errors.New("aggregation failure")
)

// InvalidArgument cria um erro de argumento com o nome do campo.
func InvalidArgument(field string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidArgument, field)
}

// Storage envolve um erro de storage com o nome da operação.
func Storage(op string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, cause)
}

// Report envolve a causa de uma consulta de relatório que falhou.
func Report(op string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrReportUnavailable, op, cause)
}

// Aggregation envolve a causa de um rollup que falhou.
func Aggregation(op string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrAggregationFailure, op, cause)
}
