//go:build integration

package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
)

// Runs against a real database: TEST_PGSQL_URL=postgres://... go test -tags integration ./...
func integrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_PGSQL_URL")
	if url == "" {
		t.Skip("TEST_PGSQL_URL not set")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://../../../../migrations", "postgres", driver)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	srcErr, dbErr := m.Close()
	require.NoError(t, srcErr)
	require.NoError(t, dbErr)

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedWorker(t *testing.T, pool *pgxpool.Pool, ctx context.Context, username string, locationID int64) int64 {
	t.Helper()

	var workerID int64
	err := pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, first_name, last_name, birth_date, identification, role, location_id)
		VALUES ($1, 'x', 'Test', 'Worker', '1990-01-01', $2, 'worker', $3)
		RETURNING user_id;`,
		username, username, locationID).Scan(&workerID)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM hay_records WHERE worker_id = $1;`, workerID)
		_, _ = pool.Exec(context.Background(), `DELETE FROM activity_records WHERE worker_id = $1;`, workerID)
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE user_id = $1;`, workerID)
	})
	return workerID
}

func seedActivity(t *testing.T, pool *pgxpool.Pool, ctx context.Context, workerID, locationID int64, start, end, state string) {
	t.Helper()

	var endArg any
	if end != "" {
		endArg = end
	}
	_, err := pool.Exec(ctx, `
		INSERT INTO activity_records (activity_type_id, worker_id, location_id, activity_date, start_time, end_time, state)
		VALUES (1, $1, $2, '2025-06-10', $3, $4, $5);`,
		workerID, locationID, start, endArg, state)
	require.NoError(t, err)
}

func TestFindEnrichedWorkers_AggregatesWorkedHoursAndHay(t *testing.T) {
	pool := integrationPool(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	suffix := uuid.NewString()[:8]

	var machineID int64
	err := pool.QueryRow(ctx, `INSERT INTO machines (name) VALUES ($1) RETURNING machine_id;`,
		"Tractor "+suffix).Scan(&machineID)
	require.NoError(t, err)
	var locationID int64
	err = pool.QueryRow(ctx, `INSERT INTO locations (name, machine_id, area) VALUES ($1, $2, 10) RETURNING location_id;`,
		"North Field "+suffix, machineID).Scan(&locationID)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM locations WHERE location_id = $1;`, locationID)
		_, _ = pool.Exec(context.Background(), `DELETE FROM machines WHERE machine_id = $1;`, machineID)
	})

	dayWorker := "day-" + suffix
	nightWorker := "night-" + suffix
	dayWorkerID := seedWorker(t, pool, ctx, dayWorker, locationID)
	nightWorkerID := seedWorker(t, pool, ctx, nightWorker, locationID)

	// 1.5h + 2.25h finalized. The open record must not count.
	seedActivity(t, pool, ctx, dayWorkerID, locationID, "08:00:00", "09:30:00", "finalized")
	seedActivity(t, pool, ctx, dayWorkerID, locationID, "10:00:00", "12:15:00", "finalized")
	seedActivity(t, pool, ctx, dayWorkerID, locationID, "13:00:00", "", "in_progress")

	// Logged across midnight: end < start textually, corrected by +24h to 1h.
	seedActivity(t, pool, ctx, nightWorkerID, locationID, "23:30:00", "00:30:00", "finalized")

	for _, qty := range []string{"10", "5.5"} {
		_, err := pool.Exec(ctx, `INSERT INTO hay_records (worker_id, quantity_kg) VALUES ($1, $2);`,
			dayWorkerID, qty)
		require.NoError(t, err)
	}

	repo := &PgxUserRepository{BaseRepository: BaseRepository{
		Pool:         pool,
		queryTimeout: 10 * time.Second,
		listTimeout:  15 * time.Second,
	}}
	workers, err := repo.FindEnrichedWorkers(ctx)
	require.NoError(t, err)

	byUsername := map[string]domain.EnrichedUser{}
	for _, w := range workers {
		byUsername[w.Username] = w
	}

	day, ok := byUsername[dayWorker]
	require.True(t, ok, "seeded worker missing from listing")
	require.True(t, day.WorkedHours.Equal(decimal.RequireFromString("3.75")),
		"worked hours = %s, want 3.75", day.WorkedHours)
	require.True(t, day.HayCollected.Equal(decimal.RequireFromString("15.5")),
		"hay collected = %s, want 15.5", day.HayCollected)

	night, ok := byUsername[nightWorker]
	require.True(t, ok, "seeded worker missing from listing")
	require.True(t, night.WorkedHours.Equal(decimal.RequireFromString("1")),
		"worked hours = %s, want 1", night.WorkedHours)
}
