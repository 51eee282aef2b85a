package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/notegraph/notegraph/internal/model"
	"github.com/notegraph/notegraph/internal/repository"
)

type fakeNotes struct {
	byUser map[uuid.UUID][]model.Note

	createErr error
	listErr   error

	listCalls int
	lastIDs   []uuid.UUID
}

var _ repository.NoteRepository = (*fakeNotes)(nil)

func (f *fakeNotes) Create(_ context.Context, n *model.Note) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byUser == nil {
		f.byUser = map[uuid.UUID][]model.Note{}
	}
	n.CreatedAt = time.Now()
	f.byUser[n.UserID] = append(f.byUser[n.UserID], *n)
	return nil
}

func (f *fakeNotes) ListByUserIDs(_ context.Context, ids []uuid.UUID) ([]model.Note, error) {
	f.listCalls++
	f.lastIDs = ids
	if f.listErr != nil {
		return nil, f.listErr
	}
	seen := map[uuid.UUID]bool{}
	var out []model.Note
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, f.byUser[id]...)
	}
	return out, nil
}

func TestNotes_Create(t *testing.T) {
	t.Parallel()
	repo := &fakeNotes{}
	s := NewNoteService(repo)
	owner := uuid.Must(uuid.NewV4())

	n, err := s.Create(context.Background(), owner, "buy milk")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.ID == uuid.Nil || n.UserID != owner || n.Description != "buy milk" {
		t.Fatalf("bad note: %+v", n)
	}
	if len(repo.byUser[owner]) != 1 {
		t.Fatalf("note not stored")
	}

	if _, err := s.Create(context.Background(), uuid.Nil, "x"); err == nil {
		t.Fatalf("want validation error on empty userID")
	}
	if _, err := s.Create(context.Background(), owner, ""); err == nil {
		t.Fatalf("want validation error on empty description")
	}
}

func TestNotes_NotesForUsers_PartitionAndMultiplicity(t *testing.T) {
	t.Parallel()

	u1 := uuid.Must(uuid.NewV4())
	u2 := uuid.Must(uuid.NewV4())
	n1 := model.Note{ID: uuid.Must(uuid.NewV4()), UserID: u1, Description: "n1"}
	n2 := model.Note{ID: uuid.Must(uuid.NewV4()), UserID: u1, Description: "n2"}

	repo := &fakeNotes{byUser: map[uuid.UUID][]model.Note{u1: {n1, n2}}}
	s := NewNoteService(repo)

	got, err := s.NotesForUsers(context.Background(), []uuid.UUID{u1, u1, u2})
	if err != nil {
		t.Fatalf("NotesForUsers: %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("want exactly one batched query, got %d", repo.listCalls)
	}
	if len(got) != 3 {
		t.Fatalf("result not parallel to input: %d", len(got))
	}
	for i := 0; i < 2; i++ {
		if len(got[i]) != 2 || got[i][0].ID != n1.ID || got[i][1].ID != n2.ID {
			t.Fatalf("partition[%d] wrong: %+v", i, got[i])
		}
	}
	if len(got[2]) != 0 {
		t.Fatalf("user without notes must get empty slice, got %+v", got[2])
	}
}

func TestNotes_NotesForUsers_EmptyAndError(t *testing.T) {
	t.Parallel()

	repo := &fakeNotes{}
	s := NewNoteService(repo)

	got, err := s.NotesForUsers(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty input: got=%v err=%v", got, err)
	}
	if repo.listCalls != 0 {
		t.Fatalf("empty input must not query")
	}

	repo.listErr = errors.New("db down")
	if _, err := s.NotesForUsers(context.Background(), []uuid.UUID{uuid.Must(uuid.NewV4())}); err == nil {
		t.Fatalf("want propagated repo error")
	}
}
