package domain

import (
	"time"

	"github.com/google/uuid"
)

// Offer mirrors the persisted representation in the offers table.
type Offer struct {
	ID          uuid.UUID
	Date        time.Time
	Title       string
	Description string
	BasePrice   float64
	Category    string
	Owner       Owner
}

// Owner is the seller snapshot embedded in an offer. It is denormalized on
// purpose so an offer stays readable after the owning account changes.
type Owner struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	City        string
	Voivodeship string
}
