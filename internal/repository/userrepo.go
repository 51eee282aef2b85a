// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/notegraph/notegraph/internal/model"
)

// UserRepository provides typed access to user rows.
type UserRepository interface {
	// Create inserts a new user. Returns errs.ErrAlreadyExists when the email
	// is already registered; the unique index is authoritative.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// List returns all users in creation order.
	List(ctx context.Context) ([]model.User, error)
}
