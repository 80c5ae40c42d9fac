package candidates

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu  sync.RWMutex
	cvs map[string]CV
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{cvs: make(map[string]CV)}
}

func (r *MemoryRepo) Save(ctx context.Context, cv CV) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.cvs[cv.UserID]; ok {
		cv.CreatedAt = existing.CreatedAt
	}
	cv.UpdatedAt = time.Now().UTC()
	r.cvs[cv.UserID] = cv
	return nil
}

func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (CV, error) {
	if err := ctx.Err(); err != nil {
		return CV{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cv, ok := r.cvs[userID]
	if !ok {
		return CV{}, ErrNotFound
	}
	return cv, nil
}
