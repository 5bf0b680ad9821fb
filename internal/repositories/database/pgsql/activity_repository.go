package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ecocomercial/farmops_backend/internal/apperrors"
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	portsrepo "github.com/ecocomercial/farmops_backend/internal/core/ports/repositories"
	"github.com/ecocomercial/farmops_backend/internal/models"
)

type PgxActivityRepository struct {
	BaseRepository
}

func newPgxActivityRepository(base BaseRepository) portsrepo.ActivityRepository {
	return &PgxActivityRepository{BaseRepository: base}
}

var _ portsrepo.ActivityRepository = (*PgxActivityRepository)(nil)

// activityDetailColumns selects the joined activity view. Dates and times are
// formatted server side so the rest of the stack never handles time zones.
const activityDetailColumns = `
        ar.record_id,
        ar.activity_type_id,
        at.name,
        ar.worker_id,
        u.first_name || ' ' || u.last_name,
        ar.location_id,
        l.name,
        l.machine_id,
        m.name,
        l.area,
        to_char(ar.activity_date, 'YYYY-MM-DD'),
        to_char(ar.start_time, 'HH24:MI:SS'),
        to_char(ar.end_time, 'HH24:MI:SS'),
        ar.state,
        ar.rows_raked,
        ar.bales_produced`

const activityDetailJoins = `
        FROM activity_records ar
        JOIN activity_types at ON ar.activity_type_id = at.activity_type_id
        JOIN users u ON ar.worker_id = u.user_id
        JOIN locations l ON ar.location_id = l.location_id
        JOIN machines m ON l.machine_id = m.machine_id`

func scanActivityDetail(row pgx.Row) (*domain.ActivityDetail, error) {
	var d domain.ActivityDetail
	var state string
	err := row.Scan(
		&d.RecordID,
		&d.ActivityTypeID,
		&d.ActivityName,
		&d.WorkerID,
		&d.WorkerName,
		&d.LocationID,
		&d.LocationName,
		&d.MachineID,
		&d.MachineName,
		&d.Area,
		&d.Date,
		&d.StartTime,
		&d.EndTime,
		&state,
		&d.RowsRaked,
		&d.BalesProduced,
	)
	if err != nil {
		return nil, err
	}
	d.State = domain.ActivityState(state)
	return &d, nil
}

func (r *PgxActivityRepository) InsertActivity(ctx context.Context, record domain.ActivityRecord) (int64, error) {
	query := `
        INSERT INTO activity_records (activity_type_id, worker_id, location_id, activity_date, start_time, state)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING record_id;
    `
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	var recordID int64
	err := r.Pool.QueryRow(qctx, query,
		record.ActivityTypeID,
		record.WorkerID,
		record.LocationID,
		record.Date,
		record.StartTime,
		string(domain.ActivityInProgress),
	).Scan(&recordID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert activity record: %w", mapQueryErr(err))
	}
	return recordID, nil
}

func (r *PgxActivityRepository) FindActivityRecord(ctx context.Context, recordID int64) (*domain.ActivityRecord, error) {
	query := `
        SELECT record_id, activity_type_id, worker_id, location_id,
               to_char(activity_date, 'YYYY-MM-DD'),
               to_char(start_time, 'HH24:MI:SS'),
               to_char(end_time, 'HH24:MI:SS'),
               state, rows_raked, bales_produced
        FROM activity_records
        WHERE record_id = $1;
    `
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	var m models.ActivityRecord
	err := r.Pool.QueryRow(qctx, query, recordID).Scan(
		&m.RecordID,
		&m.ActivityTypeID,
		&m.WorkerID,
		&m.LocationID,
		&m.Date,
		&m.StartTime,
		&m.EndTime,
		&m.State,
		&m.RowsRaked,
		&m.BalesProduced,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find activity record %d: %w", recordID, mapQueryErr(err))
	}

	return &domain.ActivityRecord{
		RecordID:       m.RecordID,
		ActivityTypeID: m.ActivityTypeID,
		WorkerID:       m.WorkerID,
		LocationID:     m.LocationID,
		Date:           m.Date,
		StartTime:      m.StartTime,
		EndTime:        m.EndTime,
		State:          domain.ActivityState(m.State),
		RowsRaked:      m.RowsRaked,
		BalesProduced:  m.BalesProduced,
	}, nil
}

func (r *PgxActivityRepository) FinalizeActivity(ctx context.Context, recordID int64, endTime string, rowsRaked, balesProduced int) error {
	query := `
        UPDATE activity_records
        SET end_time = $2, rows_raked = $3, bales_produced = $4, state = $5
        WHERE record_id = $1 AND state = $6;
    `
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	cmdTag, err := r.Pool.Exec(qctx, query,
		recordID, endTime, rowsRaked, balesProduced,
		string(domain.ActivityFinalized), string(domain.ActivityInProgress),
	)
	if err != nil {
		return fmt.Errorf("failed to finalize activity %d: %w", recordID, mapQueryErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("activity %d is not in progress: %w", recordID, apperrors.ErrInvalidState)
	}
	return nil
}

func (r *PgxActivityRepository) CancelActivity(ctx context.Context, recordID int64) error {
	query := `
        UPDATE activity_records
        SET state = $2
        WHERE record_id = $1 AND state = $3;
    `
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	cmdTag, err := r.Pool.Exec(qctx, query,
		recordID, string(domain.ActivityCancelled), string(domain.ActivityInProgress),
	)
	if err != nil {
		return fmt.Errorf("failed to cancel activity %d: %w", recordID, mapQueryErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("activity %d is not in progress: %w", recordID, apperrors.ErrInvalidState)
	}
	return nil
}

func (r *PgxActivityRepository) FindActivities(ctx context.Context, workerID *int64, state domain.ActivityState) ([]domain.ActivityDetail, error) {
	query := `SELECT` + activityDetailColumns + activityDetailJoins + `
        WHERE ar.state = $1 AND ($2::bigint IS NULL OR ar.worker_id = $2)
        ORDER BY ar.activity_date DESC, ar.start_time DESC;
    `
	qctx, cancel := r.listCtx(ctx)
	defer cancel()

	rows, err := r.Pool.Query(qctx, query, string(state), workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", mapQueryErr(err))
	}
	defer rows.Close()

	details := []domain.ActivityDetail{}
	for rows.Next() {
		d, err := scanActivityDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		details = append(details, *d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", mapQueryErr(rows.Err()))
	}

	return details, nil
}

func (r *PgxActivityRepository) FindLastActivity(ctx context.Context, activityTypeID, workerID int64, state *domain.ActivityState) (*domain.ActivityDetail, error) {
	var stateFilter *string
	if state != nil {
		s := string(*state)
		stateFilter = &s
	}

	query := `SELECT` + activityDetailColumns + activityDetailJoins + `
        WHERE ar.activity_type_id = $1 AND ar.worker_id = $2
          AND ($3::text IS NULL OR ar.state = $3)
        ORDER BY ar.activity_date DESC, ar.start_time DESC
        LIMIT 1;
    `
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	d, err := scanActivityDetail(r.Pool.QueryRow(qctx, query, activityTypeID, workerID, stateFilter))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last activity: %w", mapQueryErr(err))
	}
	return d, nil
}

func (r *PgxActivityRepository) FindActivityDetails(ctx context.Context, recordID int64) (*domain.ActivityDetail, error) {
	query := `SELECT` + activityDetailColumns + activityDetailJoins + `
        WHERE ar.record_id = $1;
    `
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	d, err := scanActivityDetail(r.Pool.QueryRow(qctx, query, recordID))
	if err != nil {
		return nil, fmt.Errorf("failed to find activity details for %d: %w", recordID, mapQueryErr(err))
	}
	return d, nil
}

func (r *PgxActivityRepository) FindUserLocation(ctx context.Context, workerID int64) (*domain.Location, error) {
	query := `
        SELECT l.location_id, l.name, l.machine_id, m.name, l.area
        FROM users u
        JOIN locations l ON u.location_id = l.location_id
        JOIN machines m ON l.machine_id = m.machine_id
        WHERE u.user_id = $1;
    `
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	var m models.Location
	err := r.Pool.QueryRow(qctx, query, workerID).
		Scan(&m.LocationID, &m.Name, &m.MachineID, &m.MachineName, &m.Area)
	if err != nil {
		return nil, fmt.Errorf("failed to find location for user %d: %w", workerID, mapQueryErr(err))
	}
	loc := toDomainLocation(m)
	return &loc, nil
}
