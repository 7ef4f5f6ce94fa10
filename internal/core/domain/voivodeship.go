package domain

import "github.com/google/uuid"

// Voivodeship is a reference-data entry for the Polish administrative regions
// offers and users are located in.
type Voivodeship struct {
	ID   uuid.UUID
	Name string
}
