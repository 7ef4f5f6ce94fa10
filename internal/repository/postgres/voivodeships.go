package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
)

// VoivodeshipRepository implements port.VoivodeshipRepository using PostgreSQL.
type VoivodeshipRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewVoivodeshipRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewVoivodeshipRepository(exec pgExecutor) *VoivodeshipRepository {
	return &VoivodeshipRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List returns all voivodeships ordered by name.
func (r *VoivodeshipRepository) List(ctx context.Context) ([]domain.Voivodeship, error) {
	stmt, args, err := r.builder.
		Select("id", "name").
		From("voivodeships").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list voivodeships sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list voivodeships: %w", err)
	}
	defer rows.Close()

	var voivodeships []domain.Voivodeship
	for rows.Next() {
		var v domain.Voivodeship
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, fmt.Errorf("scan voivodeship: %w", err)
		}
		voivodeships = append(voivodeships, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate voivodeships: %w", err)
	}
	return voivodeships, nil
}

// ExistsByName reports whether a voivodeship with the given name exists,
// matched case-insensitively.
func (r *VoivodeshipRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	stmt, args, err := r.builder.
		Select("1").
		From("voivodeships").
		Where(squirrel.Expr("LOWER(name) = LOWER(?)", name)).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists voivodeship sql: %w", err)
	}

	var one int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check voivodeship exists: %w", err)
	}
	return true, nil
}
