package companies

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, company Company) error {
	const query = `
INSERT INTO companies (id, name, description, owner_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		company.ID,
		company.Name,
		nullableString(company.Description),
		company.OwnerID,
		company.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, companyID string) (Company, error) {
	const query = `
SELECT id, name, description, owner_id, created_at, updated_at
FROM companies
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, companyID)
	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Company{}, ErrNotFound
		}
		return Company{}, err
	}
	return company, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Company, error) {
	const query = `
SELECT id, name, description, owner_id, created_at, updated_at
FROM companies
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, company)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (Company, error) {
	var company Company
	var description sql.NullString
	err := row.Scan(
		&company.ID,
		&company.Name,
		&description,
		&company.OwnerID,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		return Company{}, err
	}
	if description.Valid {
		company.Description = description.String
	}
	return company, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
