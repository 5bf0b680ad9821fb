package services

import (
	"context"
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

// HayService handles the hay weight log.
type HayService struct {
	hayRepo     portsrepo.HayRepository
	retryPolicy retry.Policy
}

// NewHayService creates a new HayService.
func NewHayService(hayRepo portsrepo.HayRepository, retryPolicy retry.Policy) portssvc.HaySvcFacade {
	return &HayService{
		hayRepo:     hayRepo,
		retryPolicy: retryPolicy,
	}
}

var _ portssvc.HaySvcFacade = (*HayService)(nil)

// SaveHayRecord logs a harvested quantity for the worker. Records are
// immutable once written; the date and time come from the database server.
func (s *HayService) SaveHayRecord(ctx context.Context, workerID int64, req dto.CreateHayRecordRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	quantity, err := decimal.NewFromString(req.QuantityKg)
	if err != nil {
		return fmt.Errorf("%w: quantity %q is not a number", apperrors.ErrValidation, req.QuantityKg)
	}
	if quantity.IsNegative() {
		return fmt.Errorf("%w: quantity must not be negative", apperrors.ErrValidation)
	}

	// No retry: hay records carry no natural key, so a repeated insert
	// after an ambiguous failure would log the quantity twice.
	if err := s.hayRepo.InsertHayRecord(ctx, workerID, quantity); err != nil {
		logger.Error("Failed to save hay record", slog.String("error", err.Error()), slog.Int64("worker_id", workerID))
		return fmt.Errorf("failed to save hay record: %w", err)
	}

	logger.Info("Hay record saved", slog.Int64("worker_id", workerID), slog.String("quantity_kg", quantity.String()))
	return nil
}

// HayRecords lists records, optionally restricted to one worker.
func (s *HayService) HayRecords(ctx context.Context, workerID *int64) ([]domain.HayRecord, error) {
	var records []domain.HayRecord
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		records, repoErr = s.hayRepo.FindHayRecords(ctx, workerID)
		return repoErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list hay records: %w", err)
	}
	return records, nil
}

// WorkerHayRecords lists one worker's records.
func (s *HayService) WorkerHayRecords(ctx context.Context, workerID int64) ([]domain.HayRecord, error) {
	return s.HayRecords(ctx, &workerID)
}
