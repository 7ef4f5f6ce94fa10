package port

import (
	"context"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	PublishOfferCreated(ctx context.Context, event domain.OfferCreatedEvent) error
	PublishOfferDeleted(ctx context.Context, event domain.OfferDeletedEvent) error
	PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error
	PublishUserLoggedOut(ctx context.Context, event domain.UserLoggedOutEvent) error
}
