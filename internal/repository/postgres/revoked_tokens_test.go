package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
)

func TestRevokedTokenRepository_SaveIdempotent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRevokedTokenRepository(mock)

	token := domain.RevokedToken{
		UserID:    uuid.New(),
		ExpiresAt: time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec(`INSERT INTO revoked_tokens \(user_id,expiration_date\) VALUES \(\$1,\$2\) ON CONFLICT \(user_id, expiration_date\) DO NOTHING`).
		WithArgs(token.UserID, token.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO revoked_tokens`).
		WithArgs(token.UserID, token.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	if err := repo.Save(context.Background(), token); err != nil {
		t.Fatalf("first Save returned error: %v", err)
	}
	if err := repo.Save(context.Background(), token); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRevokedTokenRepository_Exists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRevokedTokenRepository(mock)

	userID := uuid.New()
	expiresAt := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)

	// Column order follows squirrel's alphabetical rendering of Eq maps, and
	// the UUID arrives as its driver.Valuer string form.
	mock.ExpectQuery(`SELECT 1 FROM revoked_tokens WHERE expiration_date = \$1 AND user_id = \$2 LIMIT 1`).
		WithArgs(expiresAt, userID.String()).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))

	revoked, err := repo.Exists(context.Background(), userID, expiresAt)
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if !revoked {
		t.Fatal("expected token to be revoked")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRevokedTokenRepository_Exists_Miss(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRevokedTokenRepository(mock)

	userID := uuid.New()
	expiresAt := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT 1 FROM revoked_tokens`).
		WithArgs(expiresAt, userID.String()).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}))

	revoked, err := repo.Exists(context.Background(), userID, expiresAt)
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if revoked {
		t.Fatal("expected token not to be revoked")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRevokedTokenRepository_RemoveExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRevokedTokenRepository(mock)

	now := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM revoked_tokens WHERE expiration_date < \$1`).
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	removed, err := repo.RemoveExpired(context.Background(), now)
	if err != nil {
		t.Fatalf("RemoveExpired returned error: %v", err)
	}
	if removed != 4 {
		t.Fatalf("expected 4 removed records, got %d", removed)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
