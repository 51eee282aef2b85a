package graph

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	dataloader "github.com/graph-gophers/dataloader/v7"

	"github.com/notegraph/notegraph/internal/model"
	"github.com/notegraph/notegraph/internal/service"
)

// Loaders holds the per-request dataloaders. A fresh set is built for every
// incoming request, so batching and caching never outlive one resolution pass.
type Loaders struct {
	Notes *dataloader.Loader[uuid.UUID, []model.Note]
}

// NewLoaders builds per-request dataloaders backed by the note service.
func NewLoaders(notes service.NoteService) *Loaders {
	return &Loaders{
		Notes: dataloader.NewBatchedLoader(
			notesBatch(notes),
			dataloader.WithWait[uuid.UUID, []model.Note](2*time.Millisecond),
		),
	}
}

// notesBatch coalesces all user ids requested during one resolution pass into
// a single NotesForUsers call and fans the partitions back out by key.
func notesBatch(notes service.NoteService) dataloader.BatchFunc[uuid.UUID, []model.Note] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]model.Note] {
		out := make([]*dataloader.Result[[]model.Note], len(keys))

		byUser, err := notes.NotesForUsers(ctx, keys)
		if err != nil {
			for i := range out {
				out[i] = &dataloader.Result[[]model.Note]{Error: err}
			}
			return out
		}
		for i := range keys {
			out[i] = &dataloader.Result[[]model.Note]{Data: byUser[i]}
		}
		return out
	}
}
