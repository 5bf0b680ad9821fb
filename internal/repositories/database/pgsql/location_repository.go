package pgsql

import (
	"context"
	"fmt"

	"github.com/ecocomercial/farmops_backend/internal/apperrors"
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	portsrepo "github.com/ecocomercial/farmops_backend/internal/core/ports/repositories"
	"github.com/ecocomercial/farmops_backend/internal/models"
)

type PgxLocationRepository struct {
	BaseRepository
}

func newPgxLocationRepository(base BaseRepository) portsrepo.LocationRepository {
	return &PgxLocationRepository{BaseRepository: base}
}

var _ portsrepo.LocationRepository = (*PgxLocationRepository)(nil)

func toDomainLocation(m models.Location) domain.Location {
	return domain.Location{
		LocationID:  m.LocationID,
		Name:        m.Name,
		MachineID:   m.MachineID,
		MachineName: m.MachineName,
		Area:        m.Area,
	}
}

func (r *PgxLocationRepository) FindLocations(ctx context.Context) ([]domain.Location, error) {
	query := `
        SELECT l.location_id, l.name, l.machine_id, m.name, l.area
        FROM locations l
        JOIN machines m ON l.machine_id = m.machine_id
        ORDER BY l.name;
    `
	qctx, cancel := r.listCtx(ctx)
	defer cancel()

	rows, err := r.Pool.Query(qctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", mapQueryErr(err))
	}
	defer rows.Close()

	locations := []domain.Location{}
	for rows.Next() {
		var m models.Location
		if err := rows.Scan(&m.LocationID, &m.Name, &m.MachineID, &m.MachineName, &m.Area); err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		locations = append(locations, toDomainLocation(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating location rows: %w", mapQueryErr(rows.Err()))
	}

	return locations, nil
}

func (r *PgxLocationRepository) SaveLocation(ctx context.Context, location domain.Location) (int64, error) {
	query := `
        INSERT INTO locations (name, machine_id, area)
        VALUES ($1, $2, $3)
        RETURNING location_id;
    `
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	var locationID int64
	err := r.Pool.QueryRow(qctx, query, location.Name, location.MachineID, location.Area).Scan(&locationID)
	if err != nil {
		return 0, fmt.Errorf("failed to save location: %w", mapQueryErr(err))
	}
	return locationID, nil
}

// CountLocationReferences checks user and activity references in a single
// round trip, like the deletion guard it backs.
func (r *PgxLocationRepository) CountLocationReferences(ctx context.Context, locationID int64) (int64, int64, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM users WHERE location_id = $1) AS user_count,
            (SELECT COUNT(*) FROM activity_records WHERE location_id = $1) AS activity_count;
    `
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	var userCount, activityCount int64
	err := r.Pool.QueryRow(qctx, query, locationID).Scan(&userCount, &activityCount)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count location references: %w", mapQueryErr(err))
	}
	return userCount, activityCount, nil
}

func (r *PgxLocationRepository) DeleteLocation(ctx context.Context, locationID int64) error {
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	cmdTag, err := r.Pool.Exec(qctx, `DELETE FROM locations WHERE location_id = $1;`, locationID)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", mapQueryErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("location %d not found: %w", locationID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxLocationRepository) FindMachines(ctx context.Context) ([]domain.Machine, error) {
	qctx, cancel := r.listCtx(ctx)
	defer cancel()

	rows, err := r.Pool.Query(qctx, `SELECT machine_id, name FROM machines ORDER BY machine_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query machines: %w", mapQueryErr(err))
	}
	defer rows.Close()

	machines := []domain.Machine{}
	for rows.Next() {
		var m models.Machine
		if err := rows.Scan(&m.MachineID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan machine row: %w", err)
		}
		machines = append(machines, domain.Machine{MachineID: m.MachineID, Name: m.Name})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating machine rows: %w", mapQueryErr(rows.Err()))
	}

	return machines, nil
}

func (r *PgxLocationRepository) FindMachineByID(ctx context.Context, machineID int64) (*domain.Machine, error) {
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	var m models.Machine
	err := r.Pool.QueryRow(qctx, `SELECT machine_id, name FROM machines WHERE machine_id = $1;`, machineID).
		Scan(&m.MachineID, &m.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to find machine by ID %d: %w", machineID, mapQueryErr(err))
	}
	return &domain.Machine{MachineID: m.MachineID, Name: m.Name}, nil
}
