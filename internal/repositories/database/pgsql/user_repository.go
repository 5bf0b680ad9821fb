package pgsql

import (
	"context"
	"fmt"

	"github.com/ecocomercial/farmops_backend/internal/apperrors"
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	portsrepo "github.com/ecocomercial/farmops_backend/internal/core/ports/repositories"
	"github.com/ecocomercial/farmops_backend/internal/models"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(base BaseRepository) portsrepo.UserRepository {
	return &PgxUserRepository{BaseRepository: base}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:         m.UserID,
		Username:       m.Username,
		PasswordHash:   m.PasswordHash,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		BirthDate:      m.BirthDate,
		Identification: m.Identification,
		Role:           domain.Role(m.Role),
		LocationID:     m.LocationID,
	}
}

const userColumns = `
	user_id, username, password_hash, first_name, last_name,
	to_char(birth_date, 'YYYY-MM-DD'), identification, role, location_id`

// workedHoursSubquery sums (end - start) in hours over a worker's finalized
// activity records with both times present. Spans that come out textually
// negative (a shift logged across midnight) are corrected by adding 24 hours.
const workedHoursSubquery = `
	COALESCE((
		SELECT SUM(
			CASE
				WHEN EXTRACT(EPOCH FROM (ar.end_time - ar.start_time)) < 0
				THEN (EXTRACT(EPOCH FROM (ar.end_time - ar.start_time)) + 86400) / 3600.0
				ELSE EXTRACT(EPOCH FROM (ar.end_time - ar.start_time)) / 3600.0
			END
		)
		FROM activity_records ar
		WHERE ar.worker_id = u.user_id
			AND ar.state = 'finalized'
			AND ar.end_time IS NOT NULL
			AND ar.start_time IS NOT NULL
	), 0) AS worked_hours`

const hayCollectedSubquery = `
	COALESCE((
		SELECT SUM(hr.quantity_kg)
		FROM hay_records hr
		WHERE hr.worker_id = u.user_id
	), 0) AS hay_collected`

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (int64, error) {
	query := `
        INSERT INTO users (username, password_hash, first_name, last_name, birth_date, identification, role, location_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING user_id;
    `
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	var userID int64
	err := r.Pool.QueryRow(qctx, query,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.BirthDate,
		user.Identification,
		string(user.Role),
		user.LocationID,
	).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("failed to save user: %w", mapQueryErr(err))
	}
	return userID, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`

	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	var m models.User
	err := r.Pool.QueryRow(qctx, query, userID).Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.FirstName,
		&m.LastName,
		&m.BirthDate,
		&m.Identification,
		&m.Role,
		&m.LocationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID %d: %w", userID, mapQueryErr(err))
	}

	user := toDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`

	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	var m models.User
	err := r.Pool.QueryRow(qctx, query, username).Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.FirstName,
		&m.LastName,
		&m.BirthDate,
		&m.Identification,
		&m.Role,
		&m.LocationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username: %w", mapQueryErr(err))
	}

	user := toDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) findEnriched(ctx context.Context, roleFilter string) ([]domain.EnrichedUser, error) {
	query := `
        SELECT
            u.user_id, u.first_name, u.last_name, u.username,
            to_char(u.birth_date, 'YYYY-MM-DD'), u.identification, u.role,
            u.location_id, l.name,` + workedHoursSubquery + `,` + hayCollectedSubquery + `
        FROM users u
        LEFT JOIN locations l ON u.location_id = l.location_id` + roleFilter + `
        ORDER BY u.last_name, u.first_name;
    `
	qctx, cancel := r.listCtx(ctx)
	defer cancel()

	rows, err := r.Pool.Query(qctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", mapQueryErr(err))
	}
	defer rows.Close()

	users := []domain.EnrichedUser{}
	for rows.Next() {
		var u domain.EnrichedUser
		err := rows.Scan(
			&u.UserID,
			&u.FirstName,
			&u.LastName,
			&u.Username,
			&u.BirthDate,
			&u.Identification,
			&u.Role,
			&u.LocationID,
			&u.LocationName,
			&u.WorkedHours,
			&u.HayCollected,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", mapQueryErr(rows.Err()))
	}

	return users, nil
}

func (r *PgxUserRepository) FindEnrichedUsers(ctx context.Context) ([]domain.EnrichedUser, error) {
	return r.findEnriched(ctx, "")
}

func (r *PgxUserRepository) FindEnrichedWorkers(ctx context.Context) ([]domain.EnrichedUser, error) {
	return r.findEnriched(ctx, `
        WHERE u.role = 'worker'`)
}

func (r *PgxUserRepository) UpdateWorker(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users
        SET first_name = $1, last_name = $2, birth_date = $3, identification = $4, location_id = $5
        WHERE user_id = $6;
    `
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	cmdTag, err := r.Pool.Exec(qctx, query,
		user.FirstName,
		user.LastName,
		user.BirthDate,
		user.Identification,
		user.LocationID,
		user.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update worker query: %w", mapQueryErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("worker not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// DeleteWorkerCascade deletes the worker's hay records, activity records and
// the user row inside one transaction; any failure rolls the whole unit back.
func (r *PgxUserRepository) DeleteWorkerCascade(ctx context.Context, userID int64) error {
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	tx, err := r.Begin(qctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(qctx, `DELETE FROM hay_records WHERE worker_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to delete worker hay records: %w", mapQueryErr(err))
	}
	if _, err := tx.Exec(qctx, `DELETE FROM activity_records WHERE worker_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to delete worker activity records: %w", mapQueryErr(err))
	}
	cmdTag, err := tx.Exec(qctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete worker: %w", mapQueryErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("worker %d not found: %w", userID, apperrors.ErrNotFound)
	}

	return r.Commit(qctx, tx)
}

func (r *PgxUserRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	var count int64
	err := r.Pool.QueryRow(qctx, `SELECT COUNT(*) FROM users WHERE username = $1;`, username).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by username: %w", mapQueryErr(err))
	}
	return count, nil
}

func (r *PgxUserRepository) CountByIdentification(ctx context.Context, identification string) (int64, error) {
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	var count int64
	err := r.Pool.QueryRow(qctx, `SELECT COUNT(*) FROM users WHERE identification = $1;`, identification).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by identification: %w", mapQueryErr(err))
	}
	return count, nil
}

func (r *PgxUserRepository) UpdateUsername(ctx context.Context, userID int64, username string) (bool, error) {
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	cmdTag, err := r.Pool.Exec(qctx, `UPDATE users SET username = $1 WHERE user_id = $2;`, username, userID)
	if err != nil {
		return false, fmt.Errorf("failed to update username: %w", mapQueryErr(err))
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) (bool, error) {
	qctx, cancel := r.queryCtx(ctx)
	defer cancel()

	cmdTag, err := r.Pool.Exec(qctx, `UPDATE users SET password_hash = $1 WHERE user_id = $2;`, passwordHash, userID)
	if err != nil {
		return false, fmt.Errorf("failed to update password: %w", mapQueryErr(err))
	}
	return cmdTag.RowsAffected() > 0, nil
}
