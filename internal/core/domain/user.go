package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates the authorization scopes a user can hold.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User mirrors the persisted representation in the users table.
type User struct {
	ID               uuid.UUID
	Name             string
	Surname          string
	Email            string
	PasswordHash     string
	Phone            string
	BankAccount      string
	Address          Address
	Voivodeship      string
	InvoiceRequested bool
	Invoice          *Invoice
	AdditionalInfo   string
	Roles            []Role
	CreatedAt        time.Time
}

// HasRole reports whether the user carries the given role.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Address holds the user's postal address.
type Address struct {
	Street  string
	City    string
	ZipCode string
}

// Invoice holds billing data, present only when the user requested invoices.
type Invoice struct {
	CompanyName string
	NIP         string
	Street      string
	City        string
	ZipCode     string
}
