package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
	"github.com/blstream/ShopMe-Backend/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata: map[string]string{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishOfferCreated publishes shopme.offer.created events.
func (p *EventPublisher) PublishOfferCreated(ctx context.Context, event domain.OfferCreatedEvent) error {
	payload := struct {
		OfferID   string    `json:"offer_id"`
		OwnerID   string    `json:"owner_id"`
		Title     string    `json:"title"`
		BasePrice float64   `json:"base_price"`
		Category  string    `json:"category"`
		CreatedAt time.Time `json:"created_at"`
	}{
		OfferID:   event.OfferID,
		OwnerID:   event.OwnerID,
		Title:     event.Title,
		BasePrice: event.BasePrice,
		Category:  event.Category,
		CreatedAt: event.CreatedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "offer.created", event.CreatedAt, payload)
}

// PublishOfferDeleted publishes shopme.offer.deleted events.
func (p *EventPublisher) PublishOfferDeleted(ctx context.Context, event domain.OfferDeletedEvent) error {
	payload := struct {
		OfferID   string    `json:"offer_id"`
		OwnerID   string    `json:"owner_id"`
		DeletedAt time.Time `json:"deleted_at"`
		Reason    string    `json:"reason,omitempty"`
	}{
		OfferID:   event.OfferID,
		OwnerID:   event.OwnerID,
		DeletedAt: event.DeletedAt.UTC(),
		Reason:    event.Reason,
	}

	return p.publish(ctx, event.EventID, "offer.deleted", event.DeletedAt, payload)
}

// PublishUserRegistered publishes shopme.user.registered events.
func (p *EventPublisher) PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error {
	roles := make([]string, 0, len(event.Roles))
	for _, role := range event.Roles {
		roles = append(roles, string(role))
	}

	payload := struct {
		UserID       string    `json:"user_id"`
		Email        string    `json:"email"`
		Voivodeship  string    `json:"voivodeship,omitempty"`
		Roles        []string  `json:"roles"`
		RegisteredAt time.Time `json:"registered_at"`
	}{
		UserID:       event.UserID,
		Email:        event.Email,
		Voivodeship:  event.Voivodeship,
		Roles:        roles,
		RegisteredAt: event.RegisteredAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "user.registered", event.RegisteredAt, payload)
}

// PublishUserLoggedOut publishes shopme.user.logged_out events.
func (p *EventPublisher) PublishUserLoggedOut(ctx context.Context, event domain.UserLoggedOutEvent) error {
	payload := struct {
		UserID         string    `json:"user_id"`
		TokenExpiresAt time.Time `json:"token_expires_at"`
		LoggedOutAt    time.Time `json:"logged_out_at"`
	}{
		UserID:         event.UserID,
		TokenExpiresAt: event.TokenExpiresAt.UTC(),
		LoggedOutAt:    event.LoggedOutAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "user.logged_out", event.LoggedOutAt, payload)
}
