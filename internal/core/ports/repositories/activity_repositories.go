package repositories

import (
	"context"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
)

// ActivityRepository defines persistence operations for activity records.
type ActivityRepository interface {
	// InsertActivity creates an in-progress record and returns the generated
	// id. A second in-progress record for the same worker and activity type
	// violates the partial unique index and surfaces apperrors.ErrDuplicate.
	InsertActivity(ctx context.Context, record domain.ActivityRecord) (int64, error)
	FindActivityRecord(ctx context.Context, recordID int64) (*domain.ActivityRecord, error)
	// FinalizeActivity sets the end time, counters and finalized state. The
	// update is guarded on the in-progress state so a concurrent transition
	// cannot be overwritten; a guard miss surfaces apperrors.ErrInvalidState.
	FinalizeActivity(ctx context.Context, recordID int64, endTime string, rowsRaked, balesProduced int) error
	// CancelActivity transitions an in-progress record to the cancelled
	// terminal state, guarded the same way as FinalizeActivity.
	CancelActivity(ctx context.Context, recordID int64) error
	// FindActivities returns the joined activity view filtered by state,
	// restricted to one worker when workerID is non-nil, ordered by date
	// then start time, descending.
	FindActivities(ctx context.Context, workerID *int64, state domain.ActivityState) ([]domain.ActivityDetail, error)
	// FindLastActivity returns the most recent record for a worker and
	// activity type, optionally filtered by state, or nil when none exists.
	FindLastActivity(ctx context.Context, activityTypeID, workerID int64, state *domain.ActivityState) (*domain.ActivityDetail, error)
	FindActivityDetails(ctx context.Context, recordID int64) (*domain.ActivityDetail, error)
	// FindUserLocation returns the location assigned to a worker with its
	// machine resolved.
	FindUserLocation(ctx context.Context, workerID int64) (*domain.Location, error)
}
