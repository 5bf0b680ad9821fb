package services

import (
	"errors"

	"github.com/ecocomercial/farmops_backend/internal/apperrors"
	portsrepo "github.com/ecocomercial/farmops_backend/internal/core/ports/repositories"
	portssvc "github.com/ecocomercial/farmops_backend/internal/core/ports/services"
	"github.com/ecocomercial/farmops_backend/internal/platform/config"
	"github.com/ecocomercial/farmops_backend/pkg/retry"
)

// isTransient reports whether a repository failure is worth retrying.
// Constraint and not-found failures are deterministic; only timeouts and
// connection drops repeat differently.
func isTransient(err error) bool {
	return errors.Is(err, apperrors.ErrTimeout) || errors.Is(err, apperrors.ErrConnection)
}

// newRetryPolicy builds the shared policy applied to idempotent repository
// calls. Plain inserts never go through it: re-running one after an
// ambiguous failure could write twice.
func newRetryPolicy(cfg *config.Config) retry.Policy {
	return retry.Policy{
		Attempts:  cfg.RetryAttempts,
		Backoff:   cfg.RetryBackoff,
		Retryable: isTransient,
	}
}

// NewServiceContainer creates the service container with all services
// initialized from the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	policy := newRetryPolicy(cfg)

	return &portssvc.ServiceContainer{
		User:      NewUserService(repos.UserRepo, policy),
		Location:  NewLocationService(repos.LocationRepo, policy),
		Activity:  NewActivityService(repos.ActivityRepo, policy),
		Hay:       NewHayService(repos.HayRepo, policy),
		Reporting: NewReportingService(repos.ReportingRepo, policy),
	}
}
