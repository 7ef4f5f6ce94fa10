package domain

import "time"

// OfferCreatedEvent represents the payload for shopme.offer.created messages.
type OfferCreatedEvent struct {
	EventID   string
	OfferID   string
	OwnerID   string
	Title     string
	BasePrice float64
	Category  string
	CreatedAt time.Time
}

// OfferDeletedEvent represents the payload for shopme.offer.deleted messages.
type OfferDeletedEvent struct {
	EventID   string
	OfferID   string
	OwnerID   string
	DeletedAt time.Time
	Reason    string
}

// UserRegisteredEvent represents the payload for shopme.user.registered messages.
type UserRegisteredEvent struct {
	EventID      string
	UserID       string
	Email        string
	Voivodeship  string
	Roles        []Role
	RegisteredAt time.Time
}

// UserLoggedOutEvent represents the payload for shopme.user.logged_out messages.
type UserLoggedOutEvent struct {
	EventID        string
	UserID         string
	TokenExpiresAt time.Time
	LoggedOutAt    time.Time
}
