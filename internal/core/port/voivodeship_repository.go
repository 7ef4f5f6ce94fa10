package port

import (
	"context"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
)

// VoivodeshipRepository exposes the voivodeship reference data.
type VoivodeshipRepository interface {
	List(ctx context.Context) ([]domain.Voivodeship, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// VoivodeshipCache is a read-through cache in front of the reference data.
type VoivodeshipCache interface {
	Get(ctx context.Context) ([]domain.Voivodeship, bool, error)
	Set(ctx context.Context, voivodeships []domain.Voivodeship) error
}
