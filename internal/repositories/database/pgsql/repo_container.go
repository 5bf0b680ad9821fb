package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ecocomercial/farmops_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository over a shared
// connection pool and the configured query deadlines.
func NewRepositoryProvider(dbPool *pgxpool.Pool, queryTimeout, listTimeout time.Duration) *portsrepo.RepositoryProvider {
	base := BaseRepository{
		Pool:         dbPool,
		queryTimeout: queryTimeout,
		listTimeout:  listTimeout,
	}

	return &portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(base),
		LocationRepo:  newPgxLocationRepository(base),
		ActivityRepo:  newPgxActivityRepository(base),
		HayRepo:       newPgxHayRepository(base),
		ReportingRepo: newPgxReportingRepository(base),
	}
}
