package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
	"github.com/blstream/ShopMe-Backend/internal/core/port"
)

// VoivodeshipService serves the voivodeship reference list through a
// cache-aside Redis layer.
type VoivodeshipService struct {
	repo   port.VoivodeshipRepository
	cache  port.VoivodeshipCache
	logger *zap.Logger
}

// NewVoivodeshipService constructs the reference-data service.
func NewVoivodeshipService(repo port.VoivodeshipRepository, cache port.VoivodeshipCache, logger *zap.Logger) *VoivodeshipService {
	return &VoivodeshipService{repo: repo, cache: cache, logger: logger}
}

// GetAll lists all voivodeships, serving from cache when warm. Cache failures
// degrade to the database instead of failing the request.
func (s *VoivodeshipService) GetAll(ctx context.Context) ([]domain.Voivodeship, error) {
	cached, hit, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("voivodeship cache read failed", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	voivodeships, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list voivodeships: %w", err)
	}

	if err := s.cache.Set(ctx, voivodeships); err != nil {
		s.logger.Warn("voivodeship cache write failed", zap.Error(err))
	}
	return voivodeships, nil
}

// Exists reports whether the named voivodeship is valid reference data,
// matched case-insensitively. The warm cache answers without touching the
// database.
func (s *VoivodeshipService) Exists(ctx context.Context, name string) (bool, error) {
	cached, hit, err := s.cache.Get(ctx)
	if err == nil && hit {
		for _, v := range cached {
			if strings.EqualFold(v.Name, name) {
				return true, nil
			}
		}
		return false, nil
	}
	if err != nil {
		s.logger.Warn("voivodeship cache read failed", zap.Error(err))
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check voivodeship: %w", err)
	}
	return exists, nil
}
