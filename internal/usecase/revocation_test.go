package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestRevocationService_RevokeThenIsRevoked(t *testing.T) {
	store := newRevokedTokenStoreStub()
	svc := NewRevocationService(store, 15*time.Minute, zap.NewNop())

	now := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(fixedClock(now))

	userID := uuid.New()
	expiresAt := now.Add(time.Hour)

	if err := svc.Revoke(context.Background(), userID, expiresAt); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	revoked, err := svc.IsRevoked(context.Background(), userID, expiresAt)
	if err != nil {
		t.Fatalf("IsRevoked returned error: %v", err)
	}
	if !revoked {
		t.Fatal("expected token to be revoked")
	}
}

func TestRevocationService_ExactMatchOnly(t *testing.T) {
	store := newRevokedTokenStoreStub()
	svc := NewRevocationService(store, 15*time.Minute, zap.NewNop())

	now := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(fixedClock(now))

	userID := uuid.New()
	if err := svc.Revoke(context.Background(), userID, now.Add(time.Hour)); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	// Same user, different token expiry: that token stays valid.
	revoked, err := svc.IsRevoked(context.Background(), userID, now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("IsRevoked returned error: %v", err)
	}
	if revoked {
		t.Fatal("expected differently-expiring token to stay valid")
	}

	// Different user, same expiry.
	revoked, err = svc.IsRevoked(context.Background(), uuid.New(), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("IsRevoked returned error: %v", err)
	}
	if revoked {
		t.Fatal("expected other user's token to stay valid")
	}
}

func TestRevocationService_RevokeIdempotent(t *testing.T) {
	store := newRevokedTokenStoreStub()
	svc := NewRevocationService(store, 15*time.Minute, zap.NewNop())

	now := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(fixedClock(now))

	userID := uuid.New()
	expiresAt := now.Add(time.Hour)

	for i := 0; i < 3; i++ {
		if err := svc.Revoke(context.Background(), userID, expiresAt); err != nil {
			t.Fatalf("Revoke #%d returned error: %v", i+1, err)
		}
	}

	revoked, err := svc.IsRevoked(context.Background(), userID, expiresAt)
	if err != nil {
		t.Fatalf("IsRevoked returned error: %v", err)
	}
	if !revoked {
		t.Fatal("expected token to be revoked")
	}
}

func TestRevocationService_SweepRunsOncePerPeriod(t *testing.T) {
	store := newRevokedTokenStoreStub()
	svc := NewRevocationService(store, 15*time.Minute, zap.NewNop())

	start := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	current := start
	svc.WithClock(func() time.Time { return current })

	// The first revocation claims the initial sweep window.
	if err := svc.Revoke(context.Background(), uuid.New(), start.Add(time.Hour)); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if store.sweepCalls != 1 {
		t.Fatalf("expected 1 sweep after first revoke, got %d", store.sweepCalls)
	}

	// Further revocations inside the period do not sweep.
	current = start.Add(5 * time.Minute)
	if err := svc.Revoke(context.Background(), uuid.New(), current.Add(time.Hour)); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if store.sweepCalls != 1 {
		t.Fatalf("expected no extra sweep inside the period, got %d", store.sweepCalls)
	}

	// Once the period elapses the next revocation sweeps again.
	current = start.Add(16 * time.Minute)
	if err := svc.Revoke(context.Background(), uuid.New(), current.Add(time.Hour)); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if store.sweepCalls != 2 {
		t.Fatalf("expected a second sweep after the period, got %d", store.sweepCalls)
	}
	if !store.lastSweepCut.Equal(current) {
		t.Fatalf("expected sweep cutoff %v, got %v", current, store.lastSweepCut)
	}
}

func TestRevocationService_SweepRemovesOnlyExpired(t *testing.T) {
	store := newRevokedTokenStoreStub()
	svc := NewRevocationService(store, 15*time.Minute, zap.NewNop())

	start := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	current := start
	svc.WithClock(func() time.Time { return current })

	userID := uuid.New()
	shortLived := start.Add(time.Minute)
	longLived := start.Add(2 * time.Hour)

	if err := svc.Revoke(context.Background(), userID, shortLived); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if err := svc.Revoke(context.Background(), userID, longLived); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	// Let the short-lived token expire, then trigger a sweep via a revoke.
	current = start.Add(20 * time.Minute)
	if err := svc.Revoke(context.Background(), uuid.New(), current.Add(time.Hour)); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	if revoked, _ := svc.IsRevoked(context.Background(), userID, shortLived); revoked {
		t.Fatal("expected expired revocation record to be swept")
	}
	if revoked, _ := svc.IsRevoked(context.Background(), userID, longLived); !revoked {
		t.Fatal("expected live revocation record to survive the sweep")
	}
}

func TestRevocationService_IsRevokedNeverSweeps(t *testing.T) {
	store := newRevokedTokenStoreStub()
	svc := NewRevocationService(store, 15*time.Minute, zap.NewNop())

	now := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(fixedClock(now))

	for i := 0; i < 5; i++ {
		if _, err := svc.IsRevoked(context.Background(), uuid.New(), now.Add(time.Hour)); err != nil {
			t.Fatalf("IsRevoked returned error: %v", err)
		}
	}
	if store.sweepCalls != 0 {
		t.Fatalf("expected reads to never sweep, got %d sweeps", store.sweepCalls)
	}
}

func TestRevocationService_SweepFailureDoesNotBlockRevoke(t *testing.T) {
	store := newRevokedTokenStoreStub()
	store.removeErr = context.DeadlineExceeded
	svc := NewRevocationService(store, 15*time.Minute, zap.NewNop())

	now := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(fixedClock(now))

	userID := uuid.New()
	expiresAt := now.Add(time.Hour)

	if err := svc.Revoke(context.Background(), userID, expiresAt); err != nil {
		t.Fatalf("Revoke returned error despite failed sweep: %v", err)
	}
	if revoked, _ := svc.IsRevoked(context.Background(), userID, expiresAt); !revoked {
		t.Fatal("expected revocation to be recorded even when the sweep fails")
	}
}
