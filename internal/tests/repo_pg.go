package tests

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, t Test) error {
	const query = `
INSERT INTO tests (id, application_id, questions, status, time_limit, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	questions, err := json.Marshal(t.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		t.ID,
		t.ApplicationID,
		questions,
		t.Status,
		t.TimeLimit,
		t.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByApplication(ctx context.Context, applicationID string) (Test, error) {
	const query = `
SELECT id, application_id, questions, status, score, time_limit, completed_at, test_answers, created_at
FROM tests
WHERE application_id = $1
LIMIT 1`
	var t Test
	var questionsRaw []byte
	var score sql.NullFloat64
	var completedAt sql.NullTime
	var answersRaw []byte
	err := r.DB.QueryRowContext(ctx, query, applicationID).Scan(
		&t.ID,
		&t.ApplicationID,
		&questionsRaw,
		&t.Status,
		&score,
		&t.TimeLimit,
		&completedAt,
		&answersRaw,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Test{}, ErrNotFound
		}
		return Test{}, err
	}
	if err := json.Unmarshal(questionsRaw, &t.Questions); err != nil {
		return Test{}, fmt.Errorf("unmarshal questions: %w", err)
	}
	if score.Valid {
		t.Score = &score.Float64
	}
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	if len(answersRaw) > 0 {
		if err := json.Unmarshal(answersRaw, &t.Answers); err != nil {
			return Test{}, fmt.Errorf("unmarshal answers: %w", err)
		}
	}
	return t, nil
}

// Complete grades the test and updates the parent application inside one
// transaction. The status guard on the UPDATE is what enforces the single
// attempt; losing a concurrent race surfaces as ErrAlreadyCompleted.
func (r *PGRepo) Complete(ctx context.Context, testID string, answers []int, score float64, completedAt time.Time, applicationStatus string) error {
	answersRaw, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const completeQuery = `
UPDATE tests
SET status = $2, score = $3, test_answers = $4, completed_at = $5
WHERE id = $1 AND status = $6`
	res, err := tx.ExecContext(ctx, completeQuery, testID, StatusCompleted, score, answersRaw, completedAt, StatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyCompleted
	}

	const flipQuery = `
UPDATE applications
SET status = $2, updated_at = now()
WHERE id = (SELECT application_id FROM tests WHERE id = $1)`
	if _, err := tx.ExecContext(ctx, flipQuery, testID, applicationStatus); err != nil {
		return err
	}

	return tx.Commit()
}
