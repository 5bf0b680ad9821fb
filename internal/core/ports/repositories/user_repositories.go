package repositories

import (
	"context"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// SaveUser inserts a new user and returns the generated id.
	// A username or identification collision surfaces apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) (int64, error)
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindEnrichedUsers returns every user with worked-hours and
	// hay-collected aggregates computed in SQL.
	FindEnrichedUsers(ctx context.Context) ([]domain.EnrichedUser, error)
	// FindEnrichedWorkers is FindEnrichedUsers restricted to the worker role.
	FindEnrichedWorkers(ctx context.Context) ([]domain.EnrichedUser, error)
	UpdateWorker(ctx context.Context, user domain.User) error
	// DeleteWorkerCascade removes the user's hay records, activity records
	// and the user row as one all-or-nothing transaction.
	DeleteWorkerCascade(ctx context.Context, userID int64) error
	CountByUsername(ctx context.Context, username string) (int64, error)
	CountByIdentification(ctx context.Context, identification string) (int64, error)
	// UpdateUsername reports whether a row was actually changed.
	UpdateUsername(ctx context.Context, userID int64, username string) (bool, error)
	// UpdatePassword stores a new password hash and reports whether a row
	// was actually changed.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) (bool, error)
}
