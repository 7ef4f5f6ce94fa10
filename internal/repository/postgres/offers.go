package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
	"github.com/blstream/ShopMe-Backend/internal/core/search"
	"github.com/blstream/ShopMe-Backend/internal/repository"
)

var offerColumns = []string{
	"id",
	"date",
	"title",
	"description",
	"base_price",
	"category",
	"owner_id",
	"owner_name",
	"owner_email",
	"owner_phone",
	"owner_city",
	"owner_voivodeship",
}

// OfferRepository implements port.OfferRepository using PostgreSQL.
type OfferRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewOfferRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewOfferRepository(exec pgExecutor) *OfferRepository {
	return &OfferRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Search executes the compiled filter with pagination and sorting applied. A
// nil filter scans the whole table. The page metadata comes from a separate
// count query sharing the same filter.
func (r *OfferRepository) Search(ctx context.Context, filter search.CompiledFilter, page search.PageRequest) (domain.Page[domain.Offer], error) {
	query := r.builder.
		Select(offerColumns...).
		From("offers").
		OrderBy(page.OrderBy()).
		Limit(uint64(page.Size)).
		Offset(page.Offset())
	if filter != nil {
		query = query.Where(filter)
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return domain.Page[domain.Offer]{}, fmt.Errorf("build search offers sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return domain.Page[domain.Offer]{}, fmt.Errorf("search offers: %w", err)
	}
	defer rows.Close()

	offers := make([]domain.Offer, 0, page.Size)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return domain.Page[domain.Offer]{}, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.Offer]{}, fmt.Errorf("iterate offers: %w", err)
	}

	total, err := r.count(ctx, filter)
	if err != nil {
		return domain.Page[domain.Offer]{}, err
	}

	return domain.NewPage(offers, page.Number, page.Size, total), nil
}

func (r *OfferRepository) count(ctx context.Context, filter search.CompiledFilter) (int64, error) {
	query := r.builder.Select("COUNT(*)").From("offers")
	if filter != nil {
		query = query.Where(filter)
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count offers sql: %w", err)
	}

	var total int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count offers: %w", err)
	}
	return total, nil
}

// GetByID retrieves a single offer by identifier.
func (r *OfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	stmt, args, err := r.builder.
		Select(offerColumns...).
		From("offers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select offer sql: %w", err)
	}

	offer, err := scanOffer(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select offer: %w", err)
	}
	return &offer, nil
}

// Save upserts an offer row, replacing the mutable fields on conflict.
func (r *OfferRepository) Save(ctx context.Context, offer domain.Offer) error {
	stmt, args, err := r.builder.
		Insert("offers").
		Columns(offerColumns...).
		Values(
			offer.ID,
			offer.Date,
			offer.Title,
			offer.Description,
			offer.BasePrice,
			offer.Category,
			offer.Owner.ID,
			offer.Owner.Name,
			offer.Owner.Email,
			offer.Owner.Phone,
			offer.Owner.City,
			offer.Owner.Voivodeship,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			base_price = EXCLUDED.base_price,
			category = EXCLUDED.category`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert offer sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("upsert offer: %w", err)
	}
	return nil
}

// ExistsByID reports whether an offer with the given identifier exists.
func (r *OfferRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	stmt, args, err := r.builder.
		Select("1").
		From("offers").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists offer sql: %w", err)
	}

	var one int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check offer exists: %w", err)
	}
	return true, nil
}

// DeleteByID removes an offer row, reporting ErrNotFound when nothing matched.
func (r *OfferRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	stmt, args, err := r.builder.
		Delete("offers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete offer sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteAllByOwner removes every offer owned by the given user and reports how
// many rows went away.
func (r *OfferRepository) DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	stmt, args, err := r.builder.
		Delete("offers").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete owner offers sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("delete owner offers: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanOffer(row pgx.Row) (domain.Offer, error) {
	var offer domain.Offer
	err := row.Scan(
		&offer.ID,
		&offer.Date,
		&offer.Title,
		&offer.Description,
		&offer.BasePrice,
		&offer.Category,
		&offer.Owner.ID,
		&offer.Owner.Name,
		&offer.Owner.Email,
		&offer.Owner.Phone,
		&offer.Owner.City,
		&offer.Owner.Voivodeship,
	)
	return offer, err
}
