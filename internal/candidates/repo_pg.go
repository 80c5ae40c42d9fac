package candidates

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Save(ctx context.Context, cv CV) error {
	const query = `
INSERT INTO cvs (id, user_id, file_name, storage_key, mime_type, size_bytes, extracted_text, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
ON CONFLICT (user_id) DO UPDATE SET
  id = EXCLUDED.id,
  file_name = EXCLUDED.file_name,
  storage_key = EXCLUDED.storage_key,
  mime_type = EXCLUDED.mime_type,
  size_bytes = EXCLUDED.size_bytes,
  extracted_text = EXCLUDED.extracted_text,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		cv.ID,
		cv.UserID,
		cv.FileName,
		cv.StorageKey,
		nullableString(cv.MimeType),
		cv.SizeBytes,
		nullableString(cv.ExtractedText),
		cv.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByUser(ctx context.Context, userID string) (CV, error) {
	const query = `
SELECT id, user_id, file_name, storage_key, mime_type, size_bytes, extracted_text, created_at, updated_at
FROM cvs
WHERE user_id = $1
LIMIT 1`
	var cv CV
	var mimeType sql.NullString
	var extracted sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&cv.ID,
		&cv.UserID,
		&cv.FileName,
		&cv.StorageKey,
		&mimeType,
		&cv.SizeBytes,
		&extracted,
		&cv.CreatedAt,
		&cv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CV{}, ErrNotFound
		}
		return CV{}, err
	}
	if mimeType.Valid {
		cv.MimeType = mimeType.String
	}
	if extracted.Valid {
		cv.ExtractedText = extracted.String
	}
	return cv, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
