package services

import (
	"context"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	"github.com/ecocomercial/farmops_backend/internal/dto"
)

// HaySvcFacade defines hay weight record operations.
type HaySvcFacade interface {
	// SaveHayRecord logs a harvested quantity (>= 0) for the worker; the
	// record date and time are assigned server-side. Records are immutable.
	SaveHayRecord(ctx context.Context, workerID int64, req dto.CreateHayRecordRequest) error
	// HayRecords lists records, optionally restricted to one worker.
	HayRecords(ctx context.Context, workerID *int64) ([]domain.HayRecord, error)
	// WorkerHayRecords lists one worker's records.
	WorkerHayRecords(ctx context.Context, workerID int64) ([]domain.HayRecord, error)
}
