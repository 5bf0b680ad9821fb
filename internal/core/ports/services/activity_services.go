package services

import (
	"context"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	"github.com/ecocomercial/farmops_backend/internal/dto"
)

// ActivitySvcFacade defines the activity lifecycle and its reads.
type ActivitySvcFacade interface {
	// StartActivity creates an in-progress record for the worker and
	// returns the new record id. At most one in-progress record may exist
	// per worker and activity type.
	StartActivity(ctx context.Context, workerID int64, req dto.StartActivityRequest) (int64, error)
	// FinalizeActivity transitions in-progress -> finalized, setting the end
	// time to now and the derived counters. Counters irrelevant to the
	// activity type are forced to zero. Fails with apperrors.ErrInvalidState
	// unless the record is in progress.
	FinalizeActivity(ctx context.Context, recordID int64, req dto.FinalizeActivityRequest) error
	// CancelActivity transitions in-progress -> cancelled. Fails with
	// apperrors.ErrInvalidState unless the record is in progress.
	CancelActivity(ctx context.Context, recordID int64) error
	// ListActivities returns activities in the given state. Administrators
	// see every worker's records; workers see only their own.
	ListActivities(ctx context.Context, workerID int64, role domain.Role, state domain.ActivityState) ([]domain.ActivityDetail, error)
	// ActivityHistory is ListActivities restricted to finalized records.
	ActivityHistory(ctx context.Context, workerID int64, role domain.Role) ([]domain.ActivityDetail, error)
	// LastActivity returns the most recent record for the worker and
	// activity type, optionally filtered by state, or nil when none exists.
	LastActivity(ctx context.Context, activityTypeID, workerID int64, state *domain.ActivityState) (*domain.ActivityDetail, error)
	ActivityDetails(ctx context.Context, recordID int64) (*domain.ActivityDetail, error)
	// UserLocation returns the location assigned to a worker, with machine
	// and area resolved.
	UserLocation(ctx context.Context, workerID int64) (*domain.Location, error)
}
