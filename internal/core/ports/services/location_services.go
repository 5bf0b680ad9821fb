package services

import (
	"context"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	"github.com/ecocomercial/farmops_backend/internal/dto"
)

// LocationSvcFacade defines location and machine operations.
type LocationSvcFacade interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
	// AddLocation validates the area (>= 0) and the machine reference
	// before inserting.
	AddLocation(ctx context.Context, req dto.CreateLocationRequest) (*domain.Location, error)
	// DeleteLocation fails with apperrors.ErrConflict while the location is
	// referenced by any user or activity record.
	DeleteLocation(ctx context.Context, locationID int64) error
	ListMachines(ctx context.Context) ([]domain.Machine, error)
}
