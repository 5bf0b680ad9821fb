package repositories

import (
	"context"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// HayRepository defines persistence operations for hay weight records.
// Records are immutable once inserted.
type HayRepository interface {
	// InsertHayRecord logs a harvested quantity; date and time are assigned
	// by the database server.
	InsertHayRecord(ctx context.Context, workerID int64, quantityKg decimal.Decimal) error
	// FindHayRecords returns hay records with the owning worker's location
	// name, restricted to one worker when workerID is non-nil, ordered by
	// date then time, descending.
	FindHayRecords(ctx context.Context, workerID *int64) ([]domain.HayRecord, error)
}
