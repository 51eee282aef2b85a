// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents an account. The password hash and salt are never exposed
// through the API.
type User struct {
	ID        uuid.UUID // PK
	Name      string
	Email     string // unique
	PwdHash   []byte // Argon2id(password, SaltAuth)
	SaltAuth  []byte // per-user auth salt
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Note is a single note owned by exactly one user. Notes are create-only:
// there is no update or delete operation.
type Note struct {
	ID          uuid.UUID // PK
	UserID      uuid.UUID // FK -> users.id
	Description string
	CreatedAt   time.Time
}

// Tokens collects an issued access token and its expiry.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}
