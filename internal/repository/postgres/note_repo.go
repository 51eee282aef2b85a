package postgres

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/notegraph/notegraph/internal/model"
)

// NoteRepo implements NoteRepository using PostgreSQL.
type NoteRepo struct{ db *DB }

// NewNoteRepo constructs a note repository.
func NewNoteRepo(db *DB) *NoteRepo { return &NoteRepo{db: db} }

// Create inserts a new note row. The creation timestamp is set by the
// database and read back into n.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	const q = `
INSERT INTO notes (id, user_id, description)
VALUES ($1, $2, $3)
RETURNING created_at`
	return r.db.Pool.QueryRow(ctx, q, n.ID, n.UserID, n.Description).Scan(&n.CreatedAt)
}

// ListByUserIDs returns the notes of all listed users with a single query.
func (r *NoteRepo) ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]model.Note, error) {
	const q = `
SELECT id, user_id, description, created_at
FROM notes WHERE user_id = ANY($1)
ORDER BY created_at, id`
	rows, err := r.db.Pool.Query(ctx, q, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Description, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
