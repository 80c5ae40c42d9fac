package joboffers

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	offers map[string]JobOffer
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{offers: make(map[string]JobOffer)}
}

func (r *MemoryRepo) Create(ctx context.Context, offer JobOffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offers[offer.ID] = offer
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, offerID string) (JobOffer, error) {
	if err := ctx.Err(); err != nil {
		return JobOffer{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	offer, ok := r.offers[offerID]
	if !ok {
		return JobOffer{}, ErrNotFound
	}
	return offer, nil
}

func (r *MemoryRepo) List(ctx context.Context, activeOnly bool) ([]JobOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]JobOffer, 0, len(r.offers))
	for _, offer := range r.offers {
		if activeOnly && !offer.IsActive {
			continue
		}
		out = append(out, offer)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, offer JobOffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.offers[offer.ID]
	if !ok {
		return ErrNotFound
	}
	current.Title = offer.Title
	current.Description = offer.Description
	current.Skills = offer.Skills
	current.Deadline = offer.Deadline
	current.UpdatedAt = time.Now().UTC()
	r.offers[offer.ID] = current
	return nil
}

func (r *MemoryRepo) SetActive(ctx context.Context, offerID string, active bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	offer, ok := r.offers[offerID]
	if !ok {
		return ErrNotFound
	}
	offer.IsActive = active
	offer.UpdatedAt = time.Now().UTC()
	r.offers[offerID] = offer
	return nil
}
