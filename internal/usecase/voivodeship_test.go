package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestVoivodeshipService_GetAllWarmsCache(t *testing.T) {
	repo := &voivodeshipRepoStub{names: []string{"Mazowieckie", "Pomorskie"}}
	cache := &voivodeshipCacheStub{}
	svc := NewVoivodeshipService(repo, cache, zap.NewNop())

	first, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 voivodeships, got %d", len(first))
	}
	if cache.sets != 1 {
		t.Fatalf("expected the cache to be warmed once, got %d sets", cache.sets)
	}

	// Second read serves from cache; the stub would mint fresh ids otherwise.
	second, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("second GetAll returned error: %v", err)
	}
	if second[0].ID != first[0].ID {
		t.Fatal("expected the second read to come from the cache")
	}
}

func TestVoivodeshipService_GetAllSurvivesCacheFailure(t *testing.T) {
	repo := &voivodeshipRepoStub{names: []string{"Mazowieckie"}}
	cache := &voivodeshipCacheStub{getErr: errors.New("redis down")}
	svc := NewVoivodeshipService(repo, cache, zap.NewNop())

	voivodeships, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	if len(voivodeships) != 1 {
		t.Fatalf("expected 1 voivodeship, got %d", len(voivodeships))
	}
}

func TestVoivodeshipService_ExistsCaseInsensitive(t *testing.T) {
	repo := &voivodeshipRepoStub{names: []string{"Zachodniopomorskie"}}
	svc := NewVoivodeshipService(repo, &voivodeshipCacheStub{}, zap.NewNop())

	for _, name := range []string{"Zachodniopomorskie", "zachodniopomorskie", "ZACHODNIOPOMORSKIE"} {
		exists, err := svc.Exists(context.Background(), name)
		if err != nil {
			t.Fatalf("Exists(%q) returned error: %v", name, err)
		}
		if !exists {
			t.Fatalf("expected %q to exist", name)
		}
	}

	exists, err := svc.Exists(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if exists {
		t.Fatal("expected unknown voivodeship to not exist")
	}
}
