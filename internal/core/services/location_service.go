package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ecocomercial/farmops_backend/internal/apperrors"
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	portsrepo "github.com/ecocomercial/farmops_backend/internal/core/ports/repositories"
	portssvc "github.com/ecocomercial/farmops_backend/internal/core/ports/services"
	"github.com/ecocomercial/farmops_backend/internal/dto"
	"github.com/ecocomercial/farmops_backend/internal/middleware"
	"github.com/ecocomercial/farmops_backend/pkg/retry"
)

// LocationService handles business logic for locations and the machine
// catalog.
type LocationService struct {
	locationRepo portsrepo.LocationRepository
	retryPolicy  retry.Policy
}

// NewLocationService creates a new LocationService.
func NewLocationService(locationRepo portsrepo.LocationRepository, retryPolicy retry.Policy) portssvc.LocationSvcFacade {
	return &LocationService{
		locationRepo: locationRepo,
		retryPolicy:  retryPolicy,
	}
}

var _ portssvc.LocationSvcFacade = (*LocationService)(nil)

func (s *LocationService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	var locations []domain.Location
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		locations, repoErr = s.locationRepo.FindLocations(ctx)
		return repoErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// AddLocation validates the area and the machine reference before inserting.
func (s *LocationService) AddLocation(ctx context.Context, req dto.CreateLocationRequest) (*domain.Location, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	area, err := decimal.NewFromString(req.Area)
	if err != nil {
		return nil, fmt.Errorf("%w: area %q is not a number", apperrors.ErrValidation, req.Area)
	}
	if area.IsNegative() {
		return nil, fmt.Errorf("%w: area must not be negative", apperrors.ErrValidation)
	}

	var machine *domain.Machine
	err = retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		machine, repoErr = s.locationRepo.FindMachineByID(ctx, req.MachineID)
		return repoErr
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: machine %d not found", apperrors.ErrValidation, req.MachineID)
		}
		logger.Error("Failed to validate machine reference", slog.String("error", err.Error()), slog.Int64("machine_id", req.MachineID))
		return nil, fmt.Errorf("failed to validate machine: %w", err)
	}

	location := domain.Location{
		Name:        req.Name,
		MachineID:   machine.MachineID,
		MachineName: machine.Name,
		Area:        area,
	}

	// No retry: a repeated insert after an ambiguous failure would create
	// the location twice.
	locationID, err := s.locationRepo.SaveLocation(ctx, location)
	if err != nil {
		logger.Error("Failed to save location", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to add location: %w", err)
	}
	location.LocationID = locationID

	logger.Info("Location added", slog.Int64("location_id", locationID))
	return &location, nil
}

// DeleteLocation refuses to remove a location that any user or activity
// record still references.
func (s *LocationService) DeleteLocation(ctx context.Context, locationID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	var userCount, activityCount int64
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		userCount, activityCount, repoErr = s.locationRepo.CountLocationReferences(ctx, locationID)
		return repoErr
	})
	if err != nil {
		logger.Error("Failed to count location references", slog.String("error", err.Error()), slog.Int64("location_id", locationID))
		return fmt.Errorf("failed to check location references: %w", err)
	}
	if userCount > 0 || activityCount > 0 {
		logger.Warn("Location still referenced",
			slog.Int64("location_id", locationID),
			slog.Int64("user_count", userCount),
			slog.Int64("activity_count", activityCount),
		)
		return fmt.Errorf("location %d has %d users and %d activity records: %w",
			locationID, userCount, activityCount, apperrors.ErrConflict)
	}

	// Keyed delete, safe to retry. The foreign keys catch a reference that
	// appears between the check and the delete.
	err = retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		return s.locationRepo.DeleteLocation(ctx, locationID)
	})
	if err != nil {
		logger.Error("Failed to delete location", slog.String("error", err.Error()), slog.Int64("location_id", locationID))
		return fmt.Errorf("failed to delete location: %w", err)
	}

	logger.Info("Location deleted", slog.Int64("location_id", locationID))
	return nil
}

func (s *LocationService) ListMachines(ctx context.Context) ([]domain.Machine, error) {
	var machines []domain.Machine
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		machines, repoErr = s.locationRepo.FindMachines(ctx)
		return repoErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	return machines, nil
}
