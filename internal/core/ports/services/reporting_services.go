package services

import (
	"context"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
)

// ReportingSvcFacade defines the combined reporting reads consumed by the
// spreadsheet export collaborator.
type ReportingSvcFacade interface {
	DailyCombinedReport(ctx context.Context) ([]domain.CombinedDailyRecord, error)
}
