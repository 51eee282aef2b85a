package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"

	"github.com/notegraph/notegraph/internal/model"
	"github.com/notegraph/notegraph/internal/repository"
)

// NoteService defines note creation and batched listing.
type NoteService interface {
	// Create stores a new note owned by the given user.
	Create(ctx context.Context, userID uuid.UUID, description string) (*model.Note, error)
	// NotesForUsers resolves each listed user's notes with one underlying
	// query. The result is parallel to userIDs: duplicate ids are each
	// answered independently.
	NotesForUsers(ctx context.Context, userIDs []uuid.UUID) ([][]model.Note, error)
}

type createNoteInput struct {
	Description string `validate:"required"`
}

type NoteServiceImpl struct {
	notes    repository.NoteRepository
	validate *validator.Validate
}

// NewNoteService constructs NoteService.
func NewNoteService(notes repository.NoteRepository) *NoteServiceImpl {
	return &NoteServiceImpl{notes: notes, validate: validator.New()}
}

// Create validates input and inserts a note.
func (s *NoteServiceImpl) Create(ctx context.Context, userID uuid.UUID, description string) (*model.Note, error) {
	if userID == uuid.Nil {
		return nil, errors.New("validation: empty userID")
	}
	if err := s.validate.Struct(createNoteInput{Description: description}); err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	n := &model.Note{ID: id, UserID: userID, Description: description}
	if err := s.notes.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// NotesForUsers issues one batched query and partitions the rows per input
// id, preserving input order and multiplicity.
func (s *NoteServiceImpl) NotesForUsers(ctx context.Context, userIDs []uuid.UUID) ([][]model.Note, error) {
	if len(userIDs) == 0 {
		return [][]model.Note{}, nil
	}

	notes, err := s.notes.ListByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	byUser := make(map[uuid.UUID][]model.Note, len(userIDs))
	for _, n := range notes {
		byUser[n.UserID] = append(byUser[n.UserID], n)
	}

	out := make([][]model.Note, len(userIDs))
	for i, id := range userIDs {
		if ns := byUser[id]; ns != nil {
			out[i] = ns
		} else {
			out[i] = []model.Note{}
		}
	}
	return out, nil
}
