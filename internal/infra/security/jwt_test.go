package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testUser() domain.User {
	return domain.User{
		ID:    uuid.New(),
		Name:  "Jan",
		Email: "jan@example.com",
		Roles: []domain.Role{domain.RoleUser, domain.RoleAdmin},
	}
}

func TestTokenManager_IssueParseRoundTrip(t *testing.T) {
	manager, err := NewTokenManager(testSecret, "shopme-test", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	issuedAt := time.Date(2026, time.July, 1, 10, 0, 0, 123456789, time.UTC)
	manager.WithClock(func() time.Time { return issuedAt })

	user := testUser()
	signed, issuedCtx, err := manager.Issue(user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parsed, err := manager.Parse(signed)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if parsed.UserID != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, parsed.UserID)
	}
	if parsed.Name != user.Name || parsed.Email != user.Email {
		t.Fatalf("unexpected identity claims: %+v", parsed)
	}
	if len(parsed.Scopes) != 2 {
		t.Fatalf("expected 2 scopes, got %v", parsed.Scopes)
	}

	// The expiry must survive the round trip exactly, since revocation
	// records match on it.
	if !parsed.ExpiresAt.Equal(issuedCtx.ExpiresAt) {
		t.Fatalf("expiry changed across round trip: issued %v, parsed %v", issuedCtx.ExpiresAt, parsed.ExpiresAt)
	}
	if issuedCtx.ExpiresAt.Nanosecond() != 0 {
		t.Fatalf("expected whole-second expiry, got %v", issuedCtx.ExpiresAt)
	}
}

func TestTokenManager_ParseExpired(t *testing.T) {
	manager, err := NewTokenManager(testSecret, "shopme-test", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	issuedAt := time.Date(2026, time.July, 1, 10, 0, 0, 0, time.UTC)
	manager.WithClock(func() time.Time { return issuedAt })

	signed, _, err := manager.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	manager.WithClock(func() time.Time { return issuedAt.Add(2 * time.Hour) })
	if _, err := manager.Parse(signed); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenManager_ParseTampered(t *testing.T) {
	manager, err := NewTokenManager(testSecret, "shopme-test", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	signed, _, err := manager.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", signed)
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := manager.Parse(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenManager_ParseWrongSecret(t *testing.T) {
	issuer, err := NewTokenManager(testSecret, "shopme-test", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	verifier, err := NewTokenManager("ffffffffffffffffffffffffffffffff", "shopme-test", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	signed, _, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Parse(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestNewTokenManager_RejectsShortSecret(t *testing.T) {
	if _, err := NewTokenManager("too-short", "shopme-test", time.Hour); err == nil {
		t.Fatal("expected an error for a short secret")
	}
}
