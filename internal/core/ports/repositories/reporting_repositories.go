package repositories

import (
	"context"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
)

// ReportingRepository defines the combined report reads.
type ReportingRepository interface {
	// FindDailyCombinedRecords returns finalized worker-role activities
	// joined with a best-effort hay quantity matched on the same day and
	// start time, ordered by date then start time, descending.
	FindDailyCombinedRecords(ctx context.Context) ([]domain.CombinedDailyRecord, error)
}
