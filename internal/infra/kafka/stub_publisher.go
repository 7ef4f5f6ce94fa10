package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
)

// StubPublisher logs events instead of sending them to Kafka. Used when no
// brokers are configured, typically in development.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("stub event published",
		zap.String("event_type", eventType),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishOfferCreated logs shopme.offer.created events.
func (p *StubPublisher) PublishOfferCreated(_ context.Context, event domain.OfferCreatedEvent) error {
	p.logEvent("offer.created", event.CreatedAt, map[string]any{
		"offer_id":   event.OfferID,
		"owner_id":   event.OwnerID,
		"title":      event.Title,
		"base_price": event.BasePrice,
		"category":   event.Category,
	})
	return nil
}

// PublishOfferDeleted logs shopme.offer.deleted events.
func (p *StubPublisher) PublishOfferDeleted(_ context.Context, event domain.OfferDeletedEvent) error {
	p.logEvent("offer.deleted", event.DeletedAt, map[string]any{
		"offer_id": event.OfferID,
		"owner_id": event.OwnerID,
		"reason":   event.Reason,
	})
	return nil
}

// PublishUserRegistered logs shopme.user.registered events.
func (p *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	p.logEvent("user.registered", event.RegisteredAt, map[string]any{
		"user_id":     event.UserID,
		"email":       event.Email,
		"voivodeship": event.Voivodeship,
		"roles":       event.Roles,
	})
	return nil
}

// PublishUserLoggedOut logs shopme.user.logged_out events.
func (p *StubPublisher) PublishUserLoggedOut(_ context.Context, event domain.UserLoggedOutEvent) error {
	p.logEvent("user.logged_out", event.LoggedOutAt, map[string]any{
		"user_id":          event.UserID,
		"token_expires_at": event.TokenExpiresAt,
	})
	return nil
}
