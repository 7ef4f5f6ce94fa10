package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
	"github.com/blstream/ShopMe-Backend/internal/core/port"
	appLogger "github.com/blstream/ShopMe-Backend/internal/infra/logger"
	"github.com/blstream/ShopMe-Backend/internal/infra/security"
	"github.com/blstream/ShopMe-Backend/internal/repository"
)

var (
	// ErrInvalidCredentials indicates an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTooManyLoginAttempts indicates the login rate limit was hit.
	ErrTooManyLoginAttempts = errors.New("too many login attempts")
	// ErrInvalidAccessToken indicates a malformed or tampered token.
	ErrInvalidAccessToken = errors.New("invalid access token")
	// ErrExpiredAccessToken indicates a token past its expiry.
	ErrExpiredAccessToken = errors.New("expired access token")
	// ErrRevokedAccessToken indicates a token revoked by logout.
	ErrRevokedAccessToken = errors.New("revoked access token")
)

// AuthService implements login, logout and access-token authentication.
type AuthService struct {
	users       port.UserRepository
	tokens      *security.TokenManager
	revocation  *RevocationService
	attempts    port.RateLimitStore
	maxAttempts int
	window      time.Duration
	events      port.EventPublisher
	logger      *zap.Logger
	now         func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(
	users port.UserRepository,
	tokens *security.TokenManager,
	revocation *RevocationService,
	attempts port.RateLimitStore,
	maxAttempts int,
	window time.Duration,
	events port.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		revocation:  revocation,
		attempts:    attempts,
		maxAttempts: maxAttempts,
		window:      window,
		events:      events,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the internal clock for deterministic tests.
func (s *AuthService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// Login verifies credentials and issues a signed access token. Failed
// attempts count against a per-email sliding window; once the window is full
// further attempts are rejected before the password is even checked.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.UserContext, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := s.now()

	if err := s.attempts.TrimWindow(ctx, email, s.window, now); err != nil {
		s.logger.Warn("trim login attempts failed", zap.Error(err))
	}
	count, err := s.attempts.CountAttempts(ctx, email, s.window, now)
	if err != nil {
		s.logger.Warn("count login attempts failed", zap.Error(err))
	} else if count >= s.maxAttempts {
		return "", nil, ErrTooManyLoginAttempts
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.recordFailure(ctx, email, now)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	match, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		s.recordFailure(ctx, email, now)
		return "", nil, ErrInvalidCredentials
	}

	signed, userCtx, err := s.tokens.Issue(*user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))
	return signed, userCtx, nil
}

// Logout revokes the presented token so it stops authenticating before its
// natural expiry. Logging out twice with the same token is harmless.
func (s *AuthService) Logout(ctx context.Context, userCtx domain.UserContext) error {
	if err := s.revocation.Revoke(ctx, userCtx.UserID, userCtx.ExpiresAt); err != nil {
		return err
	}

	event := domain.UserLoggedOutEvent{
		EventID:        uuid.NewString(),
		UserID:         userCtx.UserID.String(),
		TokenExpiresAt: userCtx.ExpiresAt,
		LoggedOutAt:    s.now(),
	}
	if err := s.events.PublishUserLoggedOut(ctx, event); err != nil {
		s.logger.Warn("publish user logged out event failed",
			zap.String("user_id", event.UserID),
			zap.Error(err),
		)
	}
	return nil
}

// Authenticate parses the raw token and rejects it when revoked. Expired and
// malformed tokens map to their own sentinels so the transport layer can
// answer precisely.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*domain.UserContext, error) {
	userCtx, err := s.tokens.Parse(raw)
	if err != nil {
		switch {
		case errors.Is(err, security.ErrTokenExpired):
			return nil, ErrExpiredAccessToken
		default:
			return nil, ErrInvalidAccessToken
		}
	}

	revoked, err := s.revocation.IsRevoked(ctx, userCtx.UserID, userCtx.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrRevokedAccessToken
	}
	return userCtx, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string, at time.Time) {
	s.logger.Info("login attempt failed", zap.String("email", appLogger.MaskEmail(email)))
	if err := s.attempts.RecordAttempt(ctx, email, at); err != nil {
		s.logger.Warn("record login attempt failed", zap.Error(err))
	}
}
