package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
	"github.com/blstream/ShopMe-Backend/internal/repository"
)

var userColumns = []string{
	"id",
	"name",
	"surname",
	"email",
	"password_hash",
	"phone",
	"bank_account",
	"street",
	"city",
	"zip_code",
	"voivodeship",
	"invoice_requested",
	"invoice_company_name",
	"invoice_nip",
	"invoice_street",
	"invoice_city",
	"invoice_zip_code",
	"additional_info",
	"roles",
	"created_at",
}

// UserRepository implements port.UserRepository using PostgreSQL.
type UserRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewUserRepository(exec pgExecutor) *UserRepository {
	return &UserRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new user row. Email uniqueness violations surface as
// ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	var invoiceCompany, invoiceNIP, invoiceStreet, invoiceCity, invoiceZip any
	if user.Invoice != nil {
		invoiceCompany = user.Invoice.CompanyName
		invoiceNIP = user.Invoice.NIP
		invoiceStreet = user.Invoice.Street
		invoiceCity = user.Invoice.City
		invoiceZip = user.Invoice.ZipCode
	}

	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}

	stmt, args, err := r.builder.
		Insert("users").
		Columns(userColumns...).
		Values(
			user.ID,
			user.Name,
			user.Surname,
			user.Email,
			user.PasswordHash,
			user.Phone,
			user.BankAccount,
			user.Address.Street,
			user.Address.City,
			user.Address.ZipCode,
			user.Voivodeship,
			user.InvoiceRequested,
			invoiceCompany,
			invoiceNIP,
			invoiceStreet,
			invoiceCity,
			invoiceZip,
			user.AdditionalInfo,
			roles,
			user.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a user by the lowercased email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, squirrel.Expr("LOWER(email) = LOWER(?)", email))
}

func (r *UserRepository) getBy(ctx context.Context, predicate squirrel.Sqlizer) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select(userColumns...).
		From("users").
		Where(predicate).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	user, err := scanUser(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

// ExistsByEmail reports whether a user with the given email exists.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	stmt, args, err := r.builder.
		Select("1").
		From("users").
		Where(squirrel.Expr("LOWER(email) = LOWER(?)", email)).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists user sql: %w", err)
	}

	var one int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return true, nil
}

// Count returns the number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	stmt, args, err := r.builder.
		Select("COUNT(*)").
		From("users").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count users sql: %w", err)
	}

	var total int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

// DeleteByID removes a user row, reporting ErrNotFound when nothing matched.
func (r *UserRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	stmt, args, err := r.builder.
		Delete("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete user sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user           domain.User
		invoiceCompany *string
		invoiceNIP     *string
		invoiceStreet  *string
		invoiceCity    *string
		invoiceZip     *string
		roles          []string
	)

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Surname,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.BankAccount,
		&user.Address.Street,
		&user.Address.City,
		&user.Address.ZipCode,
		&user.Voivodeship,
		&user.InvoiceRequested,
		&invoiceCompany,
		&invoiceNIP,
		&invoiceStreet,
		&invoiceCity,
		&invoiceZip,
		&user.AdditionalInfo,
		&roles,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if invoiceCompany != nil {
		user.Invoice = &domain.Invoice{
			CompanyName: *invoiceCompany,
			Street:      deref(invoiceStreet),
			City:        deref(invoiceCity),
			ZipCode:     deref(invoiceZip),
			NIP:         deref(invoiceNIP),
		}
	}

	user.Roles = make([]domain.Role, 0, len(roles))
	for _, role := range roles {
		user.Roles = append(user.Roles, domain.Role(role))
	}

	return &user, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
