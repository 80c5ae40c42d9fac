package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (id, candidate_id, job_offer_id, status, cv_score, analysis, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	analysis, err := json.Marshal(app.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		app.ID,
		app.CandidateID,
		app.JobOfferID,
		app.Status,
		app.CVScore,
		analysis,
		app.CreatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, appID string) (Application, error) {
	const query = `
SELECT id, candidate_id, job_offer_id, status, cv_score, analysis, created_at, updated_at
FROM applications
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, appID)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

func (r *PGRepo) ListByCandidate(ctx context.Context, candidateID string) ([]Application, error) {
	const query = `
SELECT id, candidate_id, job_offer_id, status, cv_score, analysis, created_at, updated_at
FROM applications
WHERE candidate_id = $1
ORDER BY created_at DESC`
	return r.queryList(ctx, query, candidateID)
}

func (r *PGRepo) ListByJobOffer(ctx context.Context, jobOfferID string) ([]Application, error) {
	const query = `
SELECT id, candidate_id, job_offer_id, status, cv_score, analysis, created_at, updated_at
FROM applications
WHERE job_offer_id = $1
ORDER BY created_at DESC`
	return r.queryList(ctx, query, jobOfferID)
}

func (r *PGRepo) queryList(ctx context.Context, query string, arg any) ([]Application, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, appID, status string) error {
	const query = `UPDATE applications SET status = $2, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, appID, status)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var analysisRaw []byte
	err := row.Scan(
		&app.ID,
		&app.CandidateID,
		&app.JobOfferID,
		&app.Status,
		&app.CVScore,
		&analysisRaw,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return Application{}, err
	}
	if len(analysisRaw) > 0 {
		if err := json.Unmarshal(analysisRaw, &app.Analysis); err != nil {
			return Application{}, fmt.Errorf("unmarshal analysis: %w", err)
		}
	}
	return app, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
