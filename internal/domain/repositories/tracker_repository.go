package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/campushub/analytics-api/internal/domain/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ITrackerRepository interface {
	EnsureSessionOpen(ctx context.Context, session *entities.Session) (bool, error)
	InsertBehaviorEvent(ctx context.Context, event *entities.BehaviorEvent) error
	AdvanceJourney(ctx context.Context, sessionID string, userID *string, pageURL, pageTitle string, at time.Time) error
	InsertSearchRecord(ctx context.Context, record *entities.SearchRecord) error
	ResolveSearchClick(ctx context.Context, sessionID, query string, position int, resultID, resultType string) (bool, error)
	CloseSession(ctx context.Context, sessionID string, at time.Time) error
}

type TrackerRepository struct {
	db *gorm.DB
}

func NewTrackerRepository(db *gorm.DB) *TrackerRepository {
	return &TrackerRepository{db: db}
}

// EnsureSessionOpen abre a sessão se ainda não existir uma linha aberta
// para o session_id. O ON CONFLICT contra o índice único parcial
// (session_id WHERE session_end IS NULL) torna a abertura idempotente
// mesmo com dois primeiros-eventos concorrentes. Retorna true somente
// quando a linha foi realmente criada nesta chamada.
func (r *TrackerRepository) EnsureSessionOpen(ctx context.Context, session *entities.Session) (bool, error) {
	if session.SessionStart.IsZero() {
		session.SessionStart = time.Now().UTC()
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "session_id"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "session_end IS NULL"}}},
		DoNothing:   true,
	}).Create(session)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// InsertBehaviorEvent grava um fato append-only. O evento nunca é
// atualizado depois.
func (r *TrackerRepository) InsertBehaviorEvent(ctx context.Context, event *entities.BehaviorEvent) error {
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.EventTime.IsZero() {
		event.EventTime = time.Now().UTC()
	}

	return r.db.WithContext(ctx).Create(event).Error
}

// AdvanceJourney fecha o passo aberto da sessão (se houver) apontando para
// a nova página e abre o próximo passo com step_number = MAX + 1, tudo em
// uma transação. Page views concorrentes para a mesma sessão podem calcular
// o mesmo MAX; o índice único (session_id, step_number) derruba o perdedor
// e a transição é refeita uma vez.
func (r *TrackerRepository) AdvanceJourney(ctx context.Context, sessionID string, userID *string, pageURL, pageTitle string, at time.Time) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(`UPDATE user_journey_tracking
				SET exited_at = ?,
					time_spent_seconds = GREATEST(CAST(EXTRACT(EPOCH FROM (? - entered_at)) AS INTEGER), 0),
					next_page_url = ?,
					exit_method = ?
				WHERE session_id = ? AND exited_at IS NULL`,
				at, at, pageURL, entities.ExitMethodNavigation, sessionID).Error; err != nil {
				return err
			}

			return tx.Exec(`INSERT INTO user_journey_tracking
				(session_id, user_id, step_number, page_url, page_title, entered_at)
				SELECT ?, ?, COALESCE(MAX(step_number), 0) + 1, ?, ?, ?
				FROM user_journey_tracking WHERE session_id = ?`,
				sessionID, userID, pageURL, pageTitle, at, sessionID).Error
		})

		if err == nil || !isDuplicateKey(err) {
			return err
		}
	}
	return err
}

func (r *TrackerRepository) InsertSearchRecord(ctx context.Context, record *entities.SearchRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	return r.db.WithContext(ctx).Create(record).Error
}

// ResolveSearchClick preenche os campos de clique do registro não-resolvido
// mais recente de (sessão, query). Retorna false sem erro quando não há
// registro pendente; não é uma falha, o clique só não tem onde se encaixar.
func (r *TrackerRepository) ResolveSearchClick(ctx context.Context, sessionID, query string, position int, resultID, resultType string) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`UPDATE search_analytics
		SET clicked_position = ?, clicked_result_id = ?, clicked_result_type = ?
		WHERE id = (
			SELECT id FROM search_analytics
			WHERE session_id = ? AND query = ? AND clicked_position IS NULL
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		)`,
		position, resultID, resultType, sessionID, query)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CloseSession fecha a sessão com duração derivada em SQL e força o
// fechamento do último passo de jornada ainda aberto com exit_method
// "session_end". Fechar uma sessão já fechada (ou inexistente) é um no-op.
func (r *TrackerRepository) CloseSession(ctx context.Context, sessionID string, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`UPDATE device_analytics
			SET session_end = ?,
				duration_seconds = GREATEST(CAST(EXTRACT(EPOCH FROM (? - session_start)) AS INTEGER), 0)
			WHERE session_id = ? AND session_end IS NULL`,
			at, at, sessionID).Error; err != nil {
			return err
		}

		return tx.Exec(`UPDATE user_journey_tracking
			SET exited_at = ?,
				time_spent_seconds = GREATEST(CAST(EXTRACT(EPOCH FROM (? - entered_at)) AS INTEGER), 0),
				exit_method = ?
			WHERE session_id = ? AND exited_at IS NULL`,
			at, at, entities.ExitMethodSessionEnd, sessionID).Error
	})
}

func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
