package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
	"github.com/blstream/ShopMe-Backend/internal/core/port"
)

// RevocationService tracks logged-out access tokens and lazily sweeps expired
// records. Revocation is exact-match on the (user, token expiry) pair, so a
// user's other live tokens stay valid after one of them is revoked.
//
// Sweeping piggybacks on Revoke: at most one caller per sweep period wins the
// window and deletes records whose tokens already expired on their own.
// IsRevoked never sweeps, keeping the authentication path a pure read.
type RevocationService struct {
	tokens      port.RevokedTokenRepository
	sweepPeriod time.Duration
	logger      *zap.Logger
	now         func() time.Time

	// nextSweep holds the unix-millisecond deadline after which the next
	// Revoke call may sweep. The zero value makes the first revocation sweep.
	nextSweep atomic.Int64
}

// NewRevocationService constructs the revocation tracker.
func NewRevocationService(tokens port.RevokedTokenRepository, sweepPeriod time.Duration, logger *zap.Logger) *RevocationService {
	return &RevocationService{
		tokens:      tokens,
		sweepPeriod: sweepPeriod,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the internal clock for deterministic tests.
func (s *RevocationService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// Revoke records the token as logged out. Revoking the same token twice is a
// no-op. A due sweep runs before the record is written so the write itself is
// never collected in the same call.
func (s *RevocationService) Revoke(ctx context.Context, userID uuid.UUID, expiresAt time.Time) error {
	s.sweepIfDue(ctx)

	token := domain.RevokedToken{UserID: userID, ExpiresAt: expiresAt.UTC()}
	if err := s.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("save revoked token: %w", err)
	}

	s.logger.Info("access token revoked",
		zap.String("user_id", userID.String()),
		zap.Time("expires_at", token.ExpiresAt),
	)
	return nil
}

// IsRevoked reports whether the exact (user, expiry) token was logged out.
func (s *RevocationService) IsRevoked(ctx context.Context, userID uuid.UUID, expiresAt time.Time) (bool, error) {
	revoked, err := s.tokens.Exists(ctx, userID, expiresAt.UTC())
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return revoked, nil
}

// sweepIfDue deletes expired revocation records when the sweep deadline has
// passed. The compare-and-swap hands the window to exactly one concurrent
// caller; losers skip the sweep instead of piling up deletes.
func (s *RevocationService) sweepIfDue(ctx context.Context) {
	now := s.now()
	deadline := s.nextSweep.Load()
	if now.UnixMilli() < deadline {
		return
	}
	if !s.nextSweep.CompareAndSwap(deadline, now.Add(s.sweepPeriod).UnixMilli()) {
		return
	}

	removed, err := s.tokens.RemoveExpired(ctx, now)
	if err != nil {
		// A failed sweep is retried after the next period; revocation
		// correctness does not depend on it.
		s.logger.Warn("revoked token sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("swept expired revocation records", zap.Int64("removed", removed))
	}
}
