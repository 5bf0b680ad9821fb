package repositories

import (
	"context"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
)

// LocationRepository defines persistence operations for locations and the
// read-only machine catalog.
type LocationRepository interface {
	FindLocations(ctx context.Context) ([]domain.Location, error)
	// SaveLocation inserts a new location and returns the generated id.
	SaveLocation(ctx context.Context, location domain.Location) (int64, error)
	// CountLocationReferences returns how many users and activity records
	// still reference the location. The referential guard for deletion is
	// enforced at this layer.
	CountLocationReferences(ctx context.Context, locationID int64) (userCount, activityCount int64, err error)
	DeleteLocation(ctx context.Context, locationID int64) error
	FindMachines(ctx context.Context) ([]domain.Machine, error)
	FindMachineByID(ctx context.Context, machineID int64) (*domain.Machine, error)
}
