package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"lattesdocs/internal/model"
	"lattesdocs/internal/repository"
)

const uniqueViolation = "23505"

const requestColumns = `id, public_id, full_name, email, phone, goal, deadline, notes, status, finalized_at, created_at, updated_at`

// RequestPostgres implements repository.RequestRepository on database/sql.
type RequestPostgres struct {
	db *sql.DB
}

func NewRequestPostgres(db *sql.DB) *RequestPostgres {
	return &RequestPostgres{db: db}
}

var _ repository.RequestRepository = (*RequestPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*model.Request, error) {
	var (
		r         model.Request
		deadline  sql.NullTime
		finalized sql.NullTime
	)
	if err := row.Scan(
		&r.ID,
		&r.PublicID,
		&r.FullName,
		&r.Email,
		&r.Phone,
		&r.Goal,
		&deadline,
		&r.Notes,
		&r.Status,
		&finalized,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if deadline.Valid {
		r.Deadline = &deadline.Time
	}
	if finalized.Valid {
		r.FinalizedAt = &finalized.Time
	}
	return &r, nil
}

// Create inserts a request row. A clash on public_id is reported as
// repository.ErrDuplicatePublicID so the caller can draw a new code.
func (r *RequestPostgres) Create(ctx context.Context, req *model.Request) (*model.Request, error) {
	const q = `
		INSERT INTO lattes_requests (id, public_id, full_name, email, phone, goal, deadline, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + requestColumns

	var deadline sql.NullTime
	if req.Deadline != nil {
		deadline = sql.NullTime{Time: *req.Deadline, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, q,
		req.ID,
		req.PublicID,
		req.FullName,
		req.Email,
		req.Phone,
		req.Goal,
		deadline,
		req.Notes,
		req.Status,
		req.CreatedAt,
		req.UpdatedAt,
	)
	out, err := scanRequest(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, repository.ErrDuplicatePublicID
		}
		return nil, err
	}
	return out, nil
}

func (r *RequestPostgres) ExistsPublicID(ctx context.Context, publicID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM lattes_requests WHERE public_id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, publicID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *RequestPostgres) FindByPublicID(ctx context.Context, publicID string) (*model.Request, error) {
	const q = `SELECT ` + requestColumns + ` FROM lattes_requests WHERE public_id = $1`
	return scanRequest(r.db.QueryRowContext(ctx, q, publicID))
}

func (r *RequestPostgres) FindByPublicIDAndEmail(ctx context.Context, publicID, email string) (*model.Request, error) {
	const q = `SELECT ` + requestColumns + ` FROM lattes_requests WHERE public_id = $1 AND lower(email) = lower($2)`
	return scanRequest(r.db.QueryRowContext(ctx, q, publicID, email))
}

func (r *RequestPostgres) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	const q = `UPDATE lattes_requests SET status = $2, updated_at = now() WHERE id = $1`
	return execOne(ctx, r.db, q, id, status)
}

// MarkFinalized only sets finalized_at once; a second call is a no-op.
func (r *RequestPostgres) MarkFinalized(ctx context.Context, id string, at time.Time) error {
	const q = `UPDATE lattes_requests SET finalized_at = COALESCE(finalized_at, $2), updated_at = now() WHERE id = $1`
	return execOne(ctx, r.db, q, id, at)
}

func (r *RequestPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM lattes_requests WHERE id = $1`
	return execOne(ctx, r.db, q, id)
}

// execOne runs a single-row statement and maps "no row touched" to sql.ErrNoRows.
func execOne(ctx context.Context, db *sql.DB, q string, args ...any) error {
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
