package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
	"github.com/blstream/ShopMe-Backend/internal/infra/security"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func newAuthServiceForTest(t *testing.T, users *userRepoStub, attempts *rateLimitStub, events *eventsStub) (*AuthService, *revokedTokenStoreStub) {
	t.Helper()

	tokens, err := security.NewTokenManager(testJWTSecret, "shopme-test", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	store := newRevokedTokenStoreStub()
	revocation := NewRevocationService(store, 15*time.Minute, zap.NewNop())

	svc := NewAuthService(users, tokens, revocation, attempts, 5, time.Minute, events, zap.NewNop())
	return svc, store
}

func seedUser(t *testing.T, users *userRepoStub, email, password string) domain.User {
	t.Helper()

	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := domain.User{
		ID:           uuid.New(),
		Name:         "Jan",
		Surname:      "Kowalski",
		Email:        email,
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleUser},
	}
	users.users[user.ID] = user
	return user
}

func TestAuthService_LoginLogoutRoundTrip(t *testing.T) {
	users := newUserRepoStub()
	events := &eventsStub{}
	svc, _ := newAuthServiceForTest(t, users, newRateLimitStub(), events)

	user := seedUser(t, users, "jan@example.com", "correct horse battery staple")

	signed, userCtx, err := svc.Login(context.Background(), "Jan@Example.com", "correct horse battery staple")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if userCtx.UserID != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, userCtx.UserID)
	}

	authed, err := svc.Authenticate(context.Background(), signed)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if authed.UserID != user.ID {
		t.Fatalf("expected authenticated user %s, got %s", user.ID, authed.UserID)
	}

	if err := svc.Logout(context.Background(), *authed); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(events.logouts) != 1 {
		t.Fatalf("expected 1 logout event, got %d", len(events.logouts))
	}

	if _, err := svc.Authenticate(context.Background(), signed); !errors.Is(err, ErrRevokedAccessToken) {
		t.Fatalf("expected ErrRevokedAccessToken after logout, got %v", err)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	users := newUserRepoStub()
	attempts := newRateLimitStub()
	svc, _ := newAuthServiceForTest(t, users, attempts, &eventsStub{})

	seedUser(t, users, "jan@example.com", "correct horse battery staple")

	if _, _, err := svc.Login(context.Background(), "jan@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(attempts.attempts["jan@example.com"]) != 1 {
		t.Fatal("expected the failed attempt to be recorded")
	}
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest(t, newUserRepoStub(), newRateLimitStub(), &eventsStub{})

	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginRateLimited(t *testing.T) {
	users := newUserRepoStub()
	attempts := newRateLimitStub()
	svc, _ := newAuthServiceForTest(t, users, attempts, &eventsStub{})

	seedUser(t, users, "jan@example.com", "correct horse battery staple")

	for i := 0; i < 5; i++ {
		if _, _, err := svc.Login(context.Background(), "jan@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// The window is full now; even the right password is rejected.
	if _, _, err := svc.Login(context.Background(), "jan@example.com", "correct horse battery staple"); !errors.Is(err, ErrTooManyLoginAttempts) {
		t.Fatalf("expected ErrTooManyLoginAttempts, got %v", err)
	}
}

func TestAuthService_AuthenticateGarbageToken(t *testing.T) {
	svc, _ := newAuthServiceForTest(t, newUserRepoStub(), newRateLimitStub(), &eventsStub{})

	if _, err := svc.Authenticate(context.Background(), "not.a.token"); !errors.Is(err, ErrInvalidAccessToken) {
		t.Fatalf("expected ErrInvalidAccessToken, got %v", err)
	}
}

func TestAuthService_LogoutOnlyAffectsThatToken(t *testing.T) {
	users := newUserRepoStub()
	svc, _ := newAuthServiceForTest(t, users, newRateLimitStub(), &eventsStub{})

	user := seedUser(t, users, "jan@example.com", "correct horse battery staple")

	// Two sessions for the same user with different expirations.
	first, firstCtx, err := svc.Login(context.Background(), user.Email, "correct horse battery staple")
	if err != nil {
		t.Fatalf("first Login returned error: %v", err)
	}
	svc.tokens.WithClock(fixedClock(time.Now().UTC().Add(10 * time.Second)))
	second, _, err := svc.Login(context.Background(), user.Email, "correct horse battery staple")
	if err != nil {
		t.Fatalf("second Login returned error: %v", err)
	}

	if err := svc.Logout(context.Background(), *firstCtx); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), first); !errors.Is(err, ErrRevokedAccessToken) {
		t.Fatalf("expected first token revoked, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), second); err != nil {
		t.Fatalf("expected second token to stay valid, got %v", err)
	}
}
