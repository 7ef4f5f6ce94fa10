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
	"github.com/blstream/ShopMe-Backend/internal/core/search"
	"github.com/blstream/ShopMe-Backend/internal/repository"
)

var (
	// ErrOfferNotFound indicates the requested offer does not exist.
	ErrOfferNotFound = errors.New("offer not found")
	// ErrOfferAccessDenied indicates the caller may not modify the offer.
	ErrOfferAccessDenied = errors.New("offer access denied")
)

// SearchOffersInput carries the raw, unvalidated query parameters of an offer
// search. Pointers distinguish absent parameters from zero values.
type SearchOffersInput struct {
	Title     *string
	PriceFrom *float64
	PriceTo   *float64
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      *int
	Size      *int
	Sort      *string
	Order     *string
}

// OfferInput carries the caller-editable offer fields.
type OfferInput struct {
	Title       string
	Description string
	BasePrice   float64
	Category    string
}

// OfferService implements offer search and lifecycle operations.
type OfferService struct {
	offers         port.OfferRepository
	events         port.EventPublisher
	tokenizer      *search.Tokenizer
	pageCfg        search.PageConfig
	titleMaxLength int
	logger         *zap.Logger
	now            func() time.Time
}

// NewOfferService constructs the offer service.
func NewOfferService(
	offers port.OfferRepository,
	events port.EventPublisher,
	tokenizer *search.Tokenizer,
	pageCfg search.PageConfig,
	titleMaxLength int,
	logger *zap.Logger,
) *OfferService {
	return &OfferService{
		offers:         offers,
		events:         events,
		tokenizer:      tokenizer,
		pageCfg:        pageCfg,
		titleMaxLength: titleMaxLength,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the internal clock for deterministic tests.
func (s *OfferService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// Search normalizes pagination, tokenizes the title query and compiles the
// criteria into one filter before delegating to the repository. A title query
// that sanitizes to nothing adds no criteria, so the search falls back to the
// remaining filters or an unconstrained page.
func (s *OfferService) Search(ctx context.Context, input SearchOffersInput) (domain.Page[domain.Offer], error) {
	page, err := search.NormalizePage(s.pageCfg, input.Page, input.Size, input.Sort, input.Order)
	if err != nil {
		return domain.Page[domain.Offer]{}, err
	}

	builder := search.NewBuilder()
	if input.Title != nil {
		for _, token := range s.tokenizer.Tokenize(*input.Title) {
			builder.With(search.FieldTitle, search.OpEqualsLike, token)
		}
	}
	if input.PriceFrom != nil {
		builder.With(search.FieldBasePrice, search.OpGreaterOrEqual, *input.PriceFrom)
	}
	if input.PriceTo != nil {
		builder.With(search.FieldBasePrice, search.OpLessOrEqual, *input.PriceTo)
	}
	if input.DateFrom != nil {
		builder.With(search.FieldDate, search.OpGreaterOrEqual, input.DateFrom.UTC())
	}
	if input.DateTo != nil {
		builder.With(search.FieldDate, search.OpLessOrEqual, input.DateTo.UTC())
	}

	result, err := s.offers.Search(ctx, builder.Build(), page)
	if err != nil {
		return domain.Page[domain.Offer]{}, fmt.Errorf("search offers: %w", err)
	}
	return result, nil
}

// Get retrieves a single offer.
func (s *OfferService) Get(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return offer, nil
}

// Create validates and persists a new offer owned by the given user. The
// creation date is assigned server-side.
func (s *OfferService) Create(ctx context.Context, owner domain.User, input OfferInput) (*domain.Offer, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	offer := domain.Offer{
		ID:          uuid.New(),
		Date:        s.now(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		BasePrice:   input.BasePrice,
		Category:    strings.TrimSpace(input.Category),
		Owner: domain.Owner{
			ID:          owner.ID,
			Name:        owner.Name + " " + owner.Surname,
			Email:       owner.Email,
			Phone:       owner.Phone,
			City:        owner.Address.City,
			Voivodeship: owner.Voivodeship,
		},
	}

	if err := s.offers.Save(ctx, offer); err != nil {
		return nil, fmt.Errorf("save offer: %w", err)
	}

	event := domain.OfferCreatedEvent{
		EventID:   uuid.NewString(),
		OfferID:   offer.ID.String(),
		OwnerID:   offer.Owner.ID.String(),
		Title:     offer.Title,
		BasePrice: offer.BasePrice,
		Category:  offer.Category,
		CreatedAt: offer.Date,
	}
	if err := s.events.PublishOfferCreated(ctx, event); err != nil {
		s.logger.Warn("publish offer created event failed",
			zap.String("offer_id", event.OfferID),
			zap.Error(err),
		)
	}

	return &offer, nil
}

// Update replaces the caller-editable fields of an existing offer. Only the
// owner or an administrator may update it.
func (s *OfferService) Update(ctx context.Context, actor domain.UserContext, id uuid.UUID, input OfferInput) (*domain.Offer, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	offer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, offer.Owner.ID) {
		return nil, ErrOfferAccessDenied
	}

	offer.Title = strings.TrimSpace(input.Title)
	offer.Description = strings.TrimSpace(input.Description)
	offer.BasePrice = input.BasePrice
	offer.Category = strings.TrimSpace(input.Category)

	if err := s.offers.Save(ctx, *offer); err != nil {
		return nil, fmt.Errorf("save offer: %w", err)
	}
	return offer, nil
}

// Delete removes an offer. Only the owner or an administrator may delete it.
func (s *OfferService) Delete(ctx context.Context, actor domain.UserContext, id uuid.UUID) error {
	offer, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(actor, offer.Owner.ID) {
		return ErrOfferAccessDenied
	}

	if err := s.offers.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOfferNotFound
		}
		return fmt.Errorf("delete offer: %w", err)
	}

	event := domain.OfferDeletedEvent{
		EventID:   uuid.NewString(),
		OfferID:   id.String(),
		OwnerID:   offer.Owner.ID.String(),
		DeletedAt: s.now(),
	}
	if err := s.events.PublishOfferDeleted(ctx, event); err != nil {
		s.logger.Warn("publish offer deleted event failed",
			zap.String("offer_id", event.OfferID),
			zap.Error(err),
		)
	}
	return nil
}

// DeleteAllByOwner removes every offer of the given user, publishing one
// deletion event per wiped listing owner. Used when an account is closed.
func (s *OfferService) DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	deleted, err := s.offers.DeleteAllByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete owner offers: %w", err)
	}

	if deleted > 0 {
		event := domain.OfferDeletedEvent{
			EventID:   uuid.NewString(),
			OfferID:   "",
			OwnerID:   ownerID.String(),
			DeletedAt: s.now(),
			Reason:    "account closed",
		}
		if err := s.events.PublishOfferDeleted(ctx, event); err != nil {
			s.logger.Warn("publish offer deleted event failed",
				zap.String("owner_id", event.OwnerID),
				zap.Error(err),
			)
		}
	}
	return deleted, nil
}

func (s *OfferService) validate(input OfferInput) error {
	violations := domain.NewValidationError()

	title := strings.TrimSpace(input.Title)
	if title == "" {
		violations.Add("title", "Title must not be empty.")
	} else if len([]rune(title)) > s.titleMaxLength {
		violations.Add("title", fmt.Sprintf("Title must not exceed %d characters.", s.titleMaxLength))
	}

	if input.BasePrice <= 0 {
		violations.Add("basePrice", "Base price must be greater than zero.")
	}
	if strings.TrimSpace(input.Category) == "" {
		violations.Add("category", "Category must not be empty.")
	}

	if violations.HasViolations() {
		return violations
	}
	return nil
}

func canManage(actor domain.UserContext, ownerID uuid.UUID) bool {
	if actor.UserID == ownerID {
		return true
	}
	for _, scope := range actor.Scopes {
		if scope == domain.RoleAdmin {
			return true
		}
	}
	return false
}
