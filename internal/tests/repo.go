package tests

import (
	"context"
	"time"
)

type Repo interface {
	Create(ctx context.Context, t Test) error
	GetByApplication(ctx context.Context, applicationID string) (Test, error)
	// Complete persists the grade and flips the parent application to
	// applicationStatus in the same atomic step. Returns
	// ErrAlreadyCompleted when the test is no longer PENDING, so a test
	// can only ever be graded once.
	Complete(ctx context.Context, testID string, answers []int, score float64, completedAt time.Time, applicationStatus string) error
}
