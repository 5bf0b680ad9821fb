package pgsql

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	portsrepo "github.com/ecocomercial/farmops_backend/internal/core/ports/repositories"
	"github.com/ecocomercial/farmops_backend/internal/models"
)

type PgxHayRepository struct {
	BaseRepository
}

func newPgxHayRepository(base BaseRepository) portsrepo.HayRepository {
	return &PgxHayRepository{BaseRepository: base}
}

var _ portsrepo.HayRepository = (*PgxHayRepository)(nil)

// InsertHayRecord stamps the record with the database server's clock so all
// hay timestamps come from a single source.
func (r *PgxHayRepository) InsertHayRecord(ctx context.Context, workerID int64, quantityKg decimal.Decimal) error {
	query := `
        INSERT INTO hay_records (worker_id, quantity_kg, record_date, record_time)
        VALUES ($1, $2, CURRENT_DATE, CURRENT_TIME);
    `
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	_, err := r.Pool.Exec(qctx, query, workerID, quantityKg)
	if err != nil {
		return fmt.Errorf("failed to insert hay record: %w", mapQueryErr(err))
	}
	return nil
}

func (r *PgxHayRepository) FindHayRecords(ctx context.Context, workerID *int64) ([]domain.HayRecord, error) {
	query := `
        SELECT h.record_id, h.worker_id, h.quantity_kg,
               to_char(h.record_date, 'YYYY-MM-DD'),
               to_char(h.record_time, 'HH24:MI:SS'),
               l.name
        FROM hay_records h
        JOIN users u ON h.worker_id = u.user_id
        LEFT JOIN locations l ON u.location_id = l.location_id
        WHERE ($1::bigint IS NULL OR h.worker_id = $1)
        ORDER BY h.record_date DESC, h.record_time DESC;
    `
	qctx, cancel := r.listCtx(ctx)
	defer cancel()

	rows, err := r.Pool.Query(qctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query hay records: %w", mapQueryErr(err))
	}
	defer rows.Close()

	records := []domain.HayRecord{}
	for rows.Next() {
		var m models.HayRecord
		var locationName *string
		if err := rows.Scan(&m.RecordID, &m.WorkerID, &m.QuantityKg, &m.Date, &m.Time, &locationName); err != nil {
			return nil, fmt.Errorf("failed to scan hay record row: %w", err)
		}
		records = append(records, domain.HayRecord{
			RecordID:     m.RecordID,
			WorkerID:     m.WorkerID,
			QuantityKg:   m.QuantityKg,
			Date:         m.Date,
			Time:         m.Time,
			LocationName: locationName,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating hay record rows: %w", mapQueryErr(rows.Err()))
	}

	return records, nil
}
