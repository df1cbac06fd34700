package store

import (
	"context"

	"catering-service/internal/models"
)

// AppendStatusHistory stores a status change. Replayed events are ignored.
func (s *Store) AppendStatusHistory(ctx context.Context, h *models.StatusHistory) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO status_history (parent_kind, parent_id, field, from_value, to_value, changed_by, event_id, changed_at)
		VALUES (:parent_kind, :parent_id, :field, :from_value, :to_value, :changed_by, :event_id, :changed_at)
		ON CONFLICT (event_id, field) DO NOTHING`, h)
	return err
}

// ListStatusHistory retrieves the changes recorded for a parent, oldest first
func (s *Store) ListStatusHistory(ctx context.Context, ref models.ParentRef) ([]models.StatusHistory, error) {
	history := []models.StatusHistory{}
	err := s.db.SelectContext(ctx, &history, `
		SELECT id, parent_kind, parent_id, field, from_value, to_value, changed_by, event_id, changed_at
		FROM status_history WHERE parent_kind = $1 AND parent_id = $2
		ORDER BY changed_at, id`, ref.Kind, ref.ID)
	return history, err
}
