package joboffers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, offer JobOffer) error {
	const query = `
INSERT INTO job_offers (id, company_id, recruiter_id, title, description, skills, is_active, deadline, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`
	skills, err := json.Marshal(offer.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	var deadline sql.NullTime
	if offer.Deadline != nil {
		deadline = sql.NullTime{Time: *offer.Deadline, Valid: true}
	}
	_, err = r.DB.ExecContext(ctx, query,
		offer.ID,
		nullableString(offer.CompanyID),
		offer.RecruiterID,
		offer.Title,
		offer.Description,
		skills,
		offer.IsActive,
		deadline,
		offer.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, offerID string) (JobOffer, error) {
	const query = `
SELECT id, company_id, recruiter_id, title, description, skills, is_active, deadline, created_at, updated_at
FROM job_offers
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, offerID)
	offer, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobOffer{}, ErrNotFound
		}
		return JobOffer{}, err
	}
	return offer, nil
}

func (r *PGRepo) List(ctx context.Context, activeOnly bool) ([]JobOffer, error) {
	query := `
SELECT id, company_id, recruiter_id, title, description, skills, is_active, deadline, created_at, updated_at
FROM job_offers`
	if activeOnly {
		query += `
WHERE is_active = TRUE`
	}
	query += `
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JobOffer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, offer)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, offer JobOffer) error {
	const query = `
UPDATE job_offers
SET title = $2, description = $3, skills = $4, deadline = $5, updated_at = now()
WHERE id = $1`
	skills, err := json.Marshal(offer.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	var deadline sql.NullTime
	if offer.Deadline != nil {
		deadline = sql.NullTime{Time: *offer.Deadline, Valid: true}
	}
	res, err := r.DB.ExecContext(ctx, query, offer.ID, offer.Title, offer.Description, skills, deadline)
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

func (r *PGRepo) SetActive(ctx context.Context, offerID string, active bool) error {
	const query = `UPDATE job_offers SET is_active = $2, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, offerID, active)
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

func scanOffer(row rowScanner) (JobOffer, error) {
	var offer JobOffer
	var companyID sql.NullString
	var skillsRaw []byte
	var deadline sql.NullTime
	err := row.Scan(
		&offer.ID,
		&companyID,
		&offer.RecruiterID,
		&offer.Title,
		&offer.Description,
		&skillsRaw,
		&offer.IsActive,
		&deadline,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	)
	if err != nil {
		return JobOffer{}, err
	}
	if companyID.Valid {
		offer.CompanyID = companyID.String
	}
	if len(skillsRaw) > 0 {
		if err := json.Unmarshal(skillsRaw, &offer.Skills); err != nil {
			return JobOffer{}, fmt.Errorf("unmarshal skills: %w", err)
		}
	}
	if deadline.Valid {
		t := deadline.Time
		offer.Deadline = &t
	}
	return offer, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
