package services

import (
	"context"
	"fmt"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	portsrepo "github.com/ecocomercial/farmops_backend/internal/core/ports/repositories"
	portssvc "github.com/ecocomercial/farmops_backend/internal/core/ports/services"
	"github.com/ecocomercial/farmops_backend/pkg/retry"
)

// ReportingService serves the combined report reads.
type ReportingService struct {
	reportingRepo portsrepo.ReportingRepository
	retryPolicy   retry.Policy
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, retryPolicy retry.Policy) portssvc.ReportingSvcFacade {
	return &ReportingService{
		reportingRepo: reportingRepo,
		retryPolicy:   retryPolicy,
	}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

func (s *ReportingService) DailyCombinedReport(ctx context.Context) ([]domain.CombinedDailyRecord, error) {
	var records []domain.CombinedDailyRecord
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		records, repoErr = s.reportingRepo.FindDailyCombinedRecords(ctx)
		return repoErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build daily combined report: %w", err)
	}
	return records, nil
}
