package tests

import (
	"context"
	"sync"
	"time"

	"recruit-backend/internal/applications"
)

type MemoryRepo struct {
	mu    sync.Mutex
	byApp map[string]Test
	byID  map[string]string

	// Apps receives the status flip when a test completes. Both writes
	// happen under the repo mutex to mirror the transactional repo.
	Apps applications.Repo
}

func NewMemoryRepo(apps applications.Repo) *MemoryRepo {
	return &MemoryRepo{
		byApp: make(map[string]Test),
		byID:  make(map[string]string),
		Apps:  apps,
	}
}

func (r *MemoryRepo) Create(ctx context.Context, t Test) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byApp[t.ApplicationID] = t
	r.byID[t.ID] = t.ApplicationID
	return nil
}

func (r *MemoryRepo) GetByApplication(ctx context.Context, applicationID string) (Test, error) {
	if err := ctx.Err(); err != nil {
		return Test{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byApp[applicationID]
	if !ok {
		return Test{}, ErrNotFound
	}
	return t, nil
}

func (r *MemoryRepo) Complete(ctx context.Context, testID string, answers []int, score float64, completedAt time.Time, applicationStatus string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	appID, ok := r.byID[testID]
	if !ok {
		return ErrNotFound
	}
	t := r.byApp[appID]
	if t.Status != StatusPending {
		return ErrAlreadyCompleted
	}

	t.Status = StatusCompleted
	t.Score = &score
	t.Answers = answers
	t.CompletedAt = &completedAt
	r.byApp[appID] = t

	return r.Apps.UpdateStatus(ctx, appID, applicationStatus)
}
