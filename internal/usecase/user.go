package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
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
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserAccessDenied indicates the caller may not act on the account.
	ErrUserAccessDenied = errors.New("user access denied")
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-ZąĄćĆęĘłŁńŃóÓśŚżŻźŹ' -]+$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{9,10}$`)
	nipPattern   = regexp.MustCompile(`^[0-9]{10}$`)
)

// RegisterUserInput carries the registration payload.
type RegisterUserInput struct {
	Name             string
	Surname          string
	Email            string
	Password         string
	Phone            string
	BankAccount      string
	Street           string
	City             string
	ZipCode          string
	Voivodeship      string
	InvoiceRequested bool
	Invoice          *domain.Invoice
	AdditionalInfo   string
}

// UserService implements account registration and lifecycle operations.
type UserService struct {
	users        port.UserRepository
	offers       *OfferService
	voivodeships *VoivodeshipService
	policy       *security.PasswordPolicy
	events       port.EventPublisher
	logger       *zap.Logger
	now          func() time.Time
}

// NewUserService constructs the user service.
func NewUserService(
	users port.UserRepository,
	offers *OfferService,
	voivodeships *VoivodeshipService,
	policy *security.PasswordPolicy,
	events port.EventPublisher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		users:        users,
		offers:       offers,
		voivodeships: voivodeships,
		policy:       policy,
		events:       events,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the internal clock for deterministic tests.
func (s *UserService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// Register validates the payload and creates a new account. The very first
// registered account additionally receives the administrator role.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roles := []domain.Role{domain.RoleUser}
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if count == 0 {
		roles = append(roles, domain.RoleAdmin)
	}

	var invoice *domain.Invoice
	if input.InvoiceRequested && input.Invoice != nil {
		copied := *input.Invoice
		invoice = &copied
	}

	user := domain.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Surname:      strings.TrimSpace(input.Surname),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(input.Phone),
		BankAccount:  strings.TrimSpace(input.BankAccount),
		Address: domain.Address{
			Street:  strings.TrimSpace(input.Street),
			City:    strings.TrimSpace(input.City),
			ZipCode: strings.TrimSpace(input.ZipCode),
		},
		Voivodeship:      strings.TrimSpace(input.Voivodeship),
		InvoiceRequested: input.InvoiceRequested,
		Invoice:          invoice,
		AdditionalInfo:   strings.TrimSpace(input.AdditionalInfo),
		Roles:            roles,
		CreatedAt:        s.now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	event := domain.UserRegisteredEvent{
		EventID:      uuid.NewString(),
		UserID:       user.ID.String(),
		Email:        user.Email,
		Voivodeship:  user.Voivodeship,
		Roles:        user.Roles,
		RegisteredAt: user.CreatedAt,
	}
	if err := s.events.PublishUserRegistered(ctx, event); err != nil {
		s.logger.Warn("publish user registered event failed",
			zap.String("user_id", event.UserID),
			zap.Error(err),
		)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", appLogger.MaskEmail(user.Email)),
	)

	return &user, nil
}

// Get retrieves an account. Users may read their own account; administrators
// may read any.
func (s *UserService) Get(ctx context.Context, actor domain.UserContext, id uuid.UUID) (*domain.User, error) {
	if actor.UserID != id && !hasScope(actor, domain.RoleAdmin) {
		return nil, ErrUserAccessDenied
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Delete closes an account together with its offers. Users may close their
// own account; administrators may close any.
func (s *UserService) Delete(ctx context.Context, actor domain.UserContext, id uuid.UUID) error {
	if actor.UserID != id && !hasScope(actor, domain.RoleAdmin) {
		return ErrUserAccessDenied
	}

	deleted, err := s.offers.DeleteAllByOwner(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info("account closed",
		zap.String("user_id", id.String()),
		zap.Int64("offers_removed", deleted),
	)
	return nil
}

func (s *UserService) validate(ctx context.Context, input RegisterUserInput) error {
	violations := domain.NewValidationError()

	name := strings.TrimSpace(input.Name)
	if name == "" || !namePattern.MatchString(name) {
		violations.Add("name", "Name must contain letters only.")
	}
	surname := strings.TrimSpace(input.Surname)
	if surname == "" || !namePattern.MatchString(surname) {
		violations.Add("surname", "Surname must contain letters only.")
	}

	email := strings.TrimSpace(input.Email)
	if !emailPattern.MatchString(email) {
		violations.Add("email", "Email address is invalid.")
	}

	if phone := strings.TrimSpace(input.Phone); phone != "" && !phonePattern.MatchString(phone) {
		violations.Add("phone", "Phone number must be 9 or 10 digits.")
	}

	if voivodeship := strings.TrimSpace(input.Voivodeship); voivodeship != "" {
		known, err := s.voivodeships.Exists(ctx, voivodeship)
		if err != nil {
			return fmt.Errorf("validate voivodeship: %w", err)
		}
		if !known {
			violations.Add("voivodeship", "Voivodeship is unknown.")
		}
	}

	if input.InvoiceRequested {
		if input.Invoice == nil {
			violations.Add("invoice", "Invoice data is required when an invoice is requested.")
		} else {
			if strings.TrimSpace(input.Invoice.CompanyName) == "" {
				violations.Add("invoice.companyName", "Company name must not be empty.")
			}
			if !nipPattern.MatchString(strings.TrimSpace(input.Invoice.NIP)) {
				violations.Add("invoice.nip", "NIP must be 10 digits.")
			}
		}
	}

	for _, problem := range s.policy.Check(input.Password, input.Name, input.Surname, input.Email) {
		violations.Add("password", problem)
	}

	if violations.HasViolations() {
		return violations
	}
	return nil
}

func hasScope(actor domain.UserContext, role domain.Role) bool {
	for _, scope := range actor.Scopes {
		if scope == role {
			return true
		}
	}
	return false
}
