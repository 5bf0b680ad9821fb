package services

import (
	"context"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	"github.com/ecocomercial/farmops_backend/internal/dto"
)

// UserSvcFacade defines user management and authentication operations.
type UserSvcFacade interface {
	// AuthenticateUser verifies the claimed credentials and returns the
	// matching user, or apperrors.ErrNotFound when no exact match exists.
	// Passwords are verified against the stored bcrypt hash.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
	// RegisterWorker creates a new user. Role defaults to worker. Username
	// and identification uniqueness are pre-checked; the storage constraint
	// closes the remaining race.
	RegisterWorker(ctx context.Context, req dto.RegisterWorkerRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.EnrichedUser, error)
	ListWorkers(ctx context.Context) ([]domain.EnrichedUser, error)
	UpdateWorker(ctx context.Context, userID int64, req dto.UpdateWorkerRequest) error
	// DeleteWorker removes the user and all dependent hay and activity
	// records as one all-or-nothing unit.
	DeleteWorker(ctx context.Context, userID int64) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	IdentificationExists(ctx context.Context, identification string) (bool, error)
	// UpdateUsername and UpdatePassword report whether a row was actually
	// changed.
	UpdateUsername(ctx context.Context, userID int64, username string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, password string) (bool, error)
}
