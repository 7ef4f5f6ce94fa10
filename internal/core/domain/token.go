package domain

import (
	"time"

	"github.com/google/uuid"
)

// RevokedToken records a logged-out access token. A token is revoked iff a
// record exists for the exact (UserID, ExpiresAt) pair; a user may hold several
// live tokens with distinct expirations, each independently revocable.
type RevokedToken struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// UserContext carries the authenticated caller's claims extracted from an
// access token.
type UserContext struct {
	UserID    uuid.UUID
	Name      string
	Email     string
	Scopes    []Role
	ExpiresAt time.Time
}
