package pgsql

import (
	"context"
	"fmt"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	portsrepo "github.com/ecocomercial/farmops_backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(base BaseRepository) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: base}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// FindDailyCombinedRecords joins finalized worker activities with hay logged
// by the same worker on the same day at the same start time. The match is
// best effort: unmatched activities report a zero quantity and hay logged
// outside an activity window never appears here.
func (r *PgxReportingRepository) FindDailyCombinedRecords(ctx context.Context) ([]domain.CombinedDailyRecord, error) {
	query := `
        SELECT
            ar.record_id,
            to_char(ar.activity_date, 'YYYY-MM-DD'),
            to_char(ar.start_time, 'HH24:MI:SS'),
            to_char(ar.end_time, 'HH24:MI:SS'),
            ar.activity_type_id,
            at.name,
            ar.worker_id,
            u.first_name,
            u.last_name,
            ar.location_id,
            l.name,
            ar.rows_raked,
            ar.bales_produced,
            COALESCE((
                SELECT h.quantity_kg
                FROM hay_records h
                WHERE h.worker_id = ar.worker_id
                  AND h.record_date = ar.activity_date
                  AND h.record_time = ar.start_time
                LIMIT 1
            ), 0)
        FROM activity_records ar
        JOIN activity_types at ON ar.activity_type_id = at.activity_type_id
        JOIN users u ON ar.worker_id = u.user_id
        JOIN locations l ON ar.location_id = l.location_id
        WHERE ar.state = $1 AND u.role = $2
        ORDER BY ar.activity_date DESC, ar.start_time DESC;
    `
	qctx, cancel := r.listCtx(ctx)
	defer cancel()

	rows, err := r.Pool.Query(qctx, query, string(domain.ActivityFinalized), string(domain.RoleWorker))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily combined records: %w", mapQueryErr(err))
	}
	defer rows.Close()

	records := []domain.CombinedDailyRecord{}
	for rows.Next() {
		var rec domain.CombinedDailyRecord
		if err := rows.Scan(
			&rec.ActivityRecordID,
			&rec.Date,
			&rec.StartTime,
			&rec.EndTime,
			&rec.ActivityTypeID,
			&rec.ActivityName,
			&rec.WorkerID,
			&rec.WorkerFirstName,
			&rec.WorkerLastName,
			&rec.LocationID,
			&rec.LocationName,
			&rec.RowsRaked,
			&rec.BalesProduced,
			&rec.HayQuantityKg,
		); err != nil {
			return nil, fmt.Errorf("failed to scan combined record row: %w", err)
		}
		records = append(records, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating combined record rows: %w", mapQueryErr(rows.Err()))
	}

	return records, nil
}
