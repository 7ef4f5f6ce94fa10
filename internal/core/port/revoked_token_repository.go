package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
)

// RevokedTokenRepository persists logged-out token records. Save must be
// idempotent for the same (user, expiration) pair, and Exists performs an
// exact-match lookup on that pair.
type RevokedTokenRepository interface {
	Save(ctx context.Context, token domain.RevokedToken) error
	Exists(ctx context.Context, userID uuid.UUID, expiresAt time.Time) (bool, error)
	RemoveExpired(ctx context.Context, now time.Time) (int64, error)
}
