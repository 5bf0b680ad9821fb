package dto

import (
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
)

// RegisterWorkerRequest defines the data needed to register a new user.
// Role defaults to worker when omitted.
type RegisterWorkerRequest struct {
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	BirthDate      string `json:"birthDate" binding:"required,datetime=2006-01-02"`
	Identification string `json:"identification" binding:"required"`
	LocationID     *int64 `json:"locationID"`
	Username       string `json:"username" binding:"required,min=3"`
	Password       string `json:"password" binding:"required,min=6"`
	Role           string `json:"role" binding:"omitempty,oneof=worker administrator"`
}

// UpdateWorkerRequest defines the data allowed for an administrator edit.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateWorkerRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	BirthDate      *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	Identification *string `json:"identification"`
	LocationID     *int64  `json:"locationID"`
}

// UserResponse is the outward shape of a user, without credentials.
type UserResponse struct {
	UserID         int64  `json:"userID"`
	Username       string `json:"username"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	BirthDate      string `json:"birthDate"`
	Identification string `json:"identification"`
	Role           string `json:"role"`
	LocationID     *int64 `json:"locationID"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:         user.UserID,
		Username:       user.Username,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		BirthDate:      user.BirthDate,
		Identification: user.Identification,
		Role:           string(user.Role),
		LocationID:     user.LocationID,
	}
}

// EnrichedUserResponse is a user row with the worked-hours and hay-collected
// aggregates the management screens display.
type EnrichedUserResponse struct {
	UserID         int64   `json:"userID"`
	Username       string  `json:"username"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	BirthDate      string  `json:"birthDate"`
	Identification string  `json:"identification"`
	Role           string  `json:"role"`
	LocationID     *int64  `json:"locationID"`
	LocationName   *string `json:"locationName"`
	WorkedHours    string  `json:"workedHours"`
	HayCollected   string  `json:"hayCollected"`
}

// ListUsersResponse wraps the enriched user listing.
type ListUsersResponse struct {
	Users []EnrichedUserResponse `json:"users"`
}

// ToListUsersResponse converts enriched domain rows to the listing DTO.
// Decimal aggregates are serialized as strings to keep exact values.
func ToListUsersResponse(users []domain.EnrichedUser) ListUsersResponse {
	rows := make([]EnrichedUserResponse, len(users))
	for i, u := range users {
		rows[i] = EnrichedUserResponse{
			UserID:         u.UserID,
			Username:       u.Username,
			FirstName:      u.FirstName,
			LastName:       u.LastName,
			BirthDate:      u.BirthDate,
			Identification: u.Identification,
			Role:           string(u.Role),
			LocationID:     u.LocationID,
			LocationName:   u.LocationName,
			WorkedHours:    u.WorkedHours.String(),
			HayCollected:   u.HayCollected.String(),
		}
	}
	return ListUsersResponse{Users: rows}
}

// ExistsResponse reports the result of a uniqueness pre-check.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}
