package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/notegraph/notegraph/internal/model"
)

// NoteRepository provides typed access to note rows.
type NoteRepository interface {
	// Create inserts a new note owned by a user.
	Create(ctx context.Context, n *model.Note) error
	// ListByUserIDs returns the notes of all listed users in one query.
	ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]model.Note, error)
}
