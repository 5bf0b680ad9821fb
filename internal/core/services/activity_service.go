package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecocomercial/farmops_backend/internal/apperrors"
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	portsrepo "github.com/ecocomercial/farmops_backend/internal/core/ports/repositories"
	portssvc "github.com/ecocomercial/farmops_backend/internal/core/ports/services"
	"github.com/ecocomercial/farmops_backend/internal/dto"
	"github.com/ecocomercial/farmops_backend/internal/middleware"
	"github.com/ecocomercial/farmops_backend/pkg/retry"
)

// ActivityService handles the activity lifecycle: start, finalize, cancel and
// the joined reads backing the activity screens.
type ActivityService struct {
	activityRepo portsrepo.ActivityRepository
	retryPolicy  retry.Policy
	// now is swappable in tests; finalize stamps the end time with it.
	now func() time.Time
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityRepo portsrepo.ActivityRepository, retryPolicy retry.Policy) portssvc.ActivitySvcFacade {
	return &ActivityService{
		activityRepo: activityRepo,
		retryPolicy:  retryPolicy,
		now:          time.Now,
	}
}

var _ portssvc.ActivitySvcFacade = (*ActivityService)(nil)

// StartActivity creates an in-progress record for the worker. The partial
// unique index on in-progress records rejects a second open record for the
// same worker and activity type with apperrors.ErrDuplicate.
func (s *ActivityService) StartActivity(ctx context.Context, workerID int64, req dto.StartActivityRequest) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	record := domain.ActivityRecord{
		ActivityTypeID: req.ActivityTypeID,
		WorkerID:       workerID,
		LocationID:     req.LocationID,
		Date:           req.Date,
		StartTime:      req.Time,
		State:          domain.ActivityInProgress,
	}

	// No retry: a repeated insert after an ambiguous failure could open the
	// record twice.
	recordID, err := s.activityRepo.InsertActivity(ctx, record)
	if err != nil {
		logger.Error("Failed to start activity",
			slog.String("error", err.Error()),
			slog.Int64("worker_id", workerID),
			slog.Int64("activity_type_id", req.ActivityTypeID),
		)
		return 0, fmt.Errorf("failed to start activity: %w", err)
	}

	logger.Info("Activity started",
		slog.Int64("record_id", recordID),
		slog.Int64("activity_type_id", req.ActivityTypeID),
	)
	return recordID, nil
}

// finalizeCounters validates the derived counters against the activity type.
// Windrow raking requires a positive row count, baling a positive bale
// count; every other type forces both to zero.
func finalizeCounters(activityTypeID int64, req dto.FinalizeActivityRequest) (rowsRaked, balesProduced int, err error) {
	switch activityTypeID {
	case domain.ActivityTypeWindrowRake:
		if req.RowsRaked <= 0 {
			return 0, 0, fmt.Errorf("%w: rows raked is required for windrow raking", apperrors.ErrValidation)
		}
		return req.RowsRaked, 0, nil
	case domain.ActivityTypeBaling:
		if req.BalesProduced <= 0 {
			return 0, 0, fmt.Errorf("%w: bales produced is required for baling", apperrors.ErrValidation)
		}
		return 0, req.BalesProduced, nil
	default:
		return 0, 0, nil
	}
}

// FinalizeActivity transitions in-progress to finalized, stamping the end
// time with the current clock. Fails with apperrors.ErrInvalidState unless
// the record is in progress.
func (s *ActivityService) FinalizeActivity(ctx context.Context, recordID int64, req dto.FinalizeActivityRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	record, err := s.findRecord(ctx, recordID)
	if err != nil {
		return err
	}
	if record.State != domain.ActivityInProgress {
		return fmt.Errorf("activity %d is %s, not in progress: %w", recordID, record.State, apperrors.ErrInvalidState)
	}

	rowsRaked, balesProduced, err := finalizeCounters(record.ActivityTypeID, req)
	if err != nil {
		return err
	}

	endTime := s.now().Format("15:04:05")

	// The update is guarded on the in-progress state, so repeating it after
	// a first success reports invalid state instead of overwriting.
	err = retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		return s.activityRepo.FinalizeActivity(ctx, recordID, endTime, rowsRaked, balesProduced)
	})
	if err != nil {
		logger.Error("Failed to finalize activity", slog.String("error", err.Error()), slog.Int64("record_id", recordID))
		return fmt.Errorf("failed to finalize activity: %w", err)
	}

	logger.Info("Activity finalized", slog.Int64("record_id", recordID), slog.String("end_time", endTime))
	return nil
}

// CancelActivity transitions in-progress to cancelled. The record stays in
// storage as an audit trail. Fails with apperrors.ErrInvalidState unless the
// record is in progress.
func (s *ActivityService) CancelActivity(ctx context.Context, recordID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	record, err := s.findRecord(ctx, recordID)
	if err != nil {
		return err
	}
	if record.State != domain.ActivityInProgress {
		return fmt.Errorf("activity %d is %s, not in progress: %w", recordID, record.State, apperrors.ErrInvalidState)
	}

	err = retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		return s.activityRepo.CancelActivity(ctx, recordID)
	})
	if err != nil {
		logger.Error("Failed to cancel activity", slog.String("error", err.Error()), slog.Int64("record_id", recordID))
		return fmt.Errorf("failed to cancel activity: %w", err)
	}

	logger.Info("Activity cancelled", slog.Int64("record_id", recordID))
	return nil
}

func (s *ActivityService) findRecord(ctx context.Context, recordID int64) (*domain.ActivityRecord, error) {
	var record *domain.ActivityRecord
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		record, repoErr = s.activityRepo.FindActivityRecord(ctx, recordID)
		return repoErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load activity record: %w", err)
	}
	return record, nil
}

// ListActivities returns activities in the given state. Administrators see
// every worker's records; workers see only their own.
func (s *ActivityService) ListActivities(ctx context.Context, workerID int64, role domain.Role, state domain.ActivityState) ([]domain.ActivityDetail, error) {
	if !state.IsValid() {
		return nil, fmt.Errorf("%w: invalid activity state %q", apperrors.ErrValidation, state)
	}

	var filter *int64
	if role != domain.RoleAdministrator {
		filter = &workerID
	}

	var details []domain.ActivityDetail
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		details, repoErr = s.activityRepo.FindActivities(ctx, filter, state)
		return repoErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return details, nil
}

// ActivityHistory is ListActivities restricted to finalized records.
func (s *ActivityService) ActivityHistory(ctx context.Context, workerID int64, role domain.Role) ([]domain.ActivityDetail, error) {
	return s.ListActivities(ctx, workerID, role, domain.ActivityFinalized)
}

// LastActivity returns the most recent record for the worker and activity
// type, or nil when none exists.
func (s *ActivityService) LastActivity(ctx context.Context, activityTypeID, workerID int64, state *domain.ActivityState) (*domain.ActivityDetail, error) {
	if state != nil && !state.IsValid() {
		return nil, fmt.Errorf("%w: invalid activity state %q", apperrors.ErrValidation, *state)
	}

	var detail *domain.ActivityDetail
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		detail, repoErr = s.activityRepo.FindLastActivity(ctx, activityTypeID, workerID, state)
		return repoErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find last activity: %w", err)
	}
	return detail, nil
}

func (s *ActivityService) ActivityDetails(ctx context.Context, recordID int64) (*domain.ActivityDetail, error) {
	var detail *domain.ActivityDetail
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		detail, repoErr = s.activityRepo.FindActivityDetails(ctx, recordID)
		return repoErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get activity details: %w", err)
	}
	return detail, nil
}

// UserLocation returns the location assigned to a worker with its machine
// resolved.
func (s *ActivityService) UserLocation(ctx context.Context, workerID int64) (*domain.Location, error) {
	var location *domain.Location
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		location, repoErr = s.activityRepo.FindUserLocation(ctx, workerID)
		return repoErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user location: %w", err)
	}
	return location, nil
}
