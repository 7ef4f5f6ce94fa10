package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
)

// RevokedTokenRepository implements port.RevokedTokenRepository using
// PostgreSQL.
type RevokedTokenRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewRevokedTokenRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewRevokedTokenRepository(exec pgExecutor) *RevokedTokenRepository {
	return &RevokedTokenRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Save records a revoked token. Repeated saves of the same (user, expiration)
// pair are a no-op, so a double logout stays idempotent.
func (r *RevokedTokenRepository) Save(ctx context.Context, token domain.RevokedToken) error {
	stmt, args, err := r.builder.
		Insert("revoked_tokens").
		Columns("user_id", "expiration_date").
		Values(token.UserID, token.ExpiresAt).
		Suffix("ON CONFLICT (user_id, expiration_date) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert revoked token sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert revoked token: %w", err)
	}
	return nil
}

// Exists reports whether an exact (user, expiration) revocation record is
// present.
func (r *RevokedTokenRepository) Exists(ctx context.Context, userID uuid.UUID, expiresAt time.Time) (bool, error) {
	stmt, args, err := r.builder.
		Select("1").
		From("revoked_tokens").
		Where(squirrel.Eq{"user_id": userID, "expiration_date": expiresAt}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists revoked token sql: %w", err)
	}

	var one int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check revoked token exists: %w", err)
	}
	return true, nil
}

// RemoveExpired deletes records whose expiration already passed. Those tokens
// fail plain expiry validation anyway, so the records only waste space.
func (r *RevokedTokenRepository) RemoveExpired(ctx context.Context, now time.Time) (int64, error) {
	stmt, args, err := r.builder.
		Delete("revoked_tokens").
		Where(squirrel.Lt{"expiration_date": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete expired tokens sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
