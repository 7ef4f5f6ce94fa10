package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
	"github.com/blstream/ShopMe-Backend/internal/core/search"
	"github.com/blstream/ShopMe-Backend/internal/repository"
)

// In-memory stubs shared by the service tests.

type revokedTokenStoreStub struct {
	mu           sync.Mutex
	records      map[string]time.Time
	sweepCalls   int
	lastSweepCut time.Time
	saveErr      error
	removeErr    error
}

func newRevokedTokenStoreStub() *revokedTokenStoreStub {
	return &revokedTokenStoreStub{records: make(map[string]time.Time)}
}

func revocationKey(userID uuid.UUID, expiresAt time.Time) string {
	return userID.String() + "|" + expiresAt.UTC().Format(time.RFC3339Nano)
}

func (s *revokedTokenStoreStub) Save(_ context.Context, token domain.RevokedToken) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[revocationKey(token.UserID, token.ExpiresAt)] = token.ExpiresAt.UTC()
	return nil
}

func (s *revokedTokenStoreStub) Exists(_ context.Context, userID uuid.UUID, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[revocationKey(userID, expiresAt)]
	return ok, nil
}

func (s *revokedTokenStoreStub) RemoveExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepCalls++
	s.lastSweepCut = now
	if s.removeErr != nil {
		return 0, s.removeErr
	}
	var removed int64
	for key, expiresAt := range s.records {
		if expiresAt.Before(now) {
			delete(s.records, key)
			removed++
		}
	}
	return removed, nil
}

type offerRepoStub struct {
	mu         sync.Mutex
	offers     map[uuid.UUID]domain.Offer
	lastFilter search.CompiledFilter
	lastPage   search.PageRequest
	searchErr  error
}

func newOfferRepoStub() *offerRepoStub {
	return &offerRepoStub{offers: make(map[uuid.UUID]domain.Offer)}
}

func (s *offerRepoStub) Search(_ context.Context, filter search.CompiledFilter, page search.PageRequest) (domain.Page[domain.Offer], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchErr != nil {
		return domain.Page[domain.Offer]{}, s.searchErr
	}
	s.lastFilter = filter
	s.lastPage = page

	var matched []domain.Offer
	for _, offer := range s.offers {
		matched = append(matched, offer)
	}
	return domain.NewPage(matched, page.Number, page.Size, int64(len(matched))), nil
}

func (s *offerRepoStub) GetByID(_ context.Context, id uuid.UUID) (*domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	offer, ok := s.offers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &offer, nil
}

func (s *offerRepoStub) Save(_ context.Context, offer domain.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers[offer.ID] = offer
	return nil
}

func (s *offerRepoStub) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.offers[id]
	return ok, nil
}

func (s *offerRepoStub) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.offers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.offers, id)
	return nil
}

func (s *offerRepoStub) DeleteAllByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, offer := range s.offers {
		if offer.Owner.ID == ownerID {
			delete(s.offers, id)
			deleted++
		}
	}
	return deleted, nil
}

type userRepoStub struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[uuid.UUID]domain.User)}
}

func (s *userRepoStub) Create(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			copied := user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *userRepoStub) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (s *userRepoStub) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func (s *userRepoStub) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type voivodeshipRepoStub struct {
	names []string
}

func (s *voivodeshipRepoStub) List(_ context.Context) ([]domain.Voivodeship, error) {
	out := make([]domain.Voivodeship, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, domain.Voivodeship{ID: uuid.New(), Name: name})
	}
	return out, nil
}

func (s *voivodeshipRepoStub) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, known := range s.names {
		if strings.EqualFold(known, name) {
			return true, nil
		}
	}
	return false, nil
}

type voivodeshipCacheStub struct {
	entries []domain.Voivodeship
	warm    bool
	getErr  error
	sets    int
}

func (s *voivodeshipCacheStub) Get(_ context.Context) ([]domain.Voivodeship, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	return s.entries, s.warm, nil
}

func (s *voivodeshipCacheStub) Set(_ context.Context, voivodeships []domain.Voivodeship) error {
	s.entries = voivodeships
	s.warm = true
	s.sets++
	return nil
}

type rateLimitStub struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func newRateLimitStub() *rateLimitStub {
	return &rateLimitStub{attempts: make(map[string][]time.Time)}
}

func (s *rateLimitStub) RecordAttempt(_ context.Context, identifier string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[identifier] = append(s.attempts[identifier], at)
	return nil
}

func (s *rateLimitStub) CountAttempts(_ context.Context, identifier string, window time.Duration, reference time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, at := range s.attempts[identifier] {
		if !at.Before(reference.Add(-window)) && !at.After(reference) {
			count++
		}
	}
	return count, nil
}

func (s *rateLimitStub) TrimWindow(_ context.Context, identifier string, window time.Duration, reference time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []time.Time
	for _, at := range s.attempts[identifier] {
		if !at.Before(reference.Add(-window)) {
			kept = append(kept, at)
		}
	}
	s.attempts[identifier] = kept
	return nil
}

func (s *rateLimitStub) OldestAttempt(_ context.Context, identifier string, window time.Duration, reference time.Time) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var oldest time.Time
	found := false
	for _, at := range s.attempts[identifier] {
		if at.Before(reference.Add(-window)) || at.After(reference) {
			continue
		}
		if !found || at.Before(oldest) {
			oldest = at
			found = true
		}
	}
	return oldest, found, nil
}

type eventsStub struct {
	mu            sync.Mutex
	offerCreated  []domain.OfferCreatedEvent
	offerDeleted  []domain.OfferDeletedEvent
	registrations []domain.UserRegisteredEvent
	logouts       []domain.UserLoggedOutEvent
}

func (s *eventsStub) PublishOfferCreated(_ context.Context, event domain.OfferCreatedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offerCreated = append(s.offerCreated, event)
	return nil
}

func (s *eventsStub) PublishOfferDeleted(_ context.Context, event domain.OfferDeletedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offerDeleted = append(s.offerDeleted, event)
	return nil
}

func (s *eventsStub) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registrations = append(s.registrations, event)
	return nil
}

func (s *eventsStub) PublishUserLoggedOut(_ context.Context, event domain.UserLoggedOutEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logouts = append(s.logouts, event)
	return nil
}
