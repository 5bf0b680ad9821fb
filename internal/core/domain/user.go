package domain

import (
	"github.com/shopspring/decimal"
)

// Role defines the authorization role of a user.
type Role string

const (
	RoleWorker        Role = "worker"
	RoleAdministrator Role = "administrator"
)

// IsValid reports whether the role is one of the two supported roles.
func (r Role) IsValid() bool {
	return r == RoleWorker || r == RoleAdministrator
}

// User represents an application user within the core domain.
// This is the primary representation used by services.
type User struct {
	UserID         int64  `json:"userID"`         // Primary Key
	Username       string `json:"username"`       // Login name, globally unique
	PasswordHash   string `json:"-"`              // bcrypt hash, never serialized
	FirstName      string `json:"firstName"`      //
	LastName       string `json:"lastName"`       //
	BirthDate      string `json:"birthDate"`      // YYYY-MM-DD
	Identification string `json:"identification"` // National identification, globally unique
	Role           Role   `json:"role"`           // worker or administrator
	LocationID     *int64 `json:"locationID"`     // Nullable FK -> locations.location_id
}

// EnrichedUser is a user row enriched with the aggregates the management
// screens display: total hours worked across finalized activities and total
// hay collected in kilograms.
type EnrichedUser struct {
	UserID         int64           `json:"userID"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Username       string          `json:"username"`
	BirthDate      string          `json:"birthDate"`
	Identification string          `json:"identification"`
	Role           Role            `json:"role"`
	LocationID     *int64          `json:"locationID"`
	LocationName   *string         `json:"locationName"`
	WorkedHours    decimal.Decimal `json:"workedHours"`
	HayCollected   decimal.Decimal `json:"hayCollected"`
}
