package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
	"github.com/blstream/ShopMe-Backend/internal/core/search"
)

// OfferRepository exposes persistence behavior for offers. Search executes the
// compiled filter (nil meaning an unconstrained scan) with the normalized
// pagination and sort applied.
type OfferRepository interface {
	Search(ctx context.Context, filter search.CompiledFilter, page search.PageRequest) (domain.Page[domain.Offer], error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error)
	Save(ctx context.Context, offer domain.Offer) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
