package joboffers

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("job offer not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repo interface {
	Create(ctx context.Context, offer JobOffer) error
	GetByID(ctx context.Context, offerID string) (JobOffer, error)
	List(ctx context.Context, activeOnly bool) ([]JobOffer, error)
	Update(ctx context.Context, offer JobOffer) error
	SetActive(ctx context.Context, offerID string, active bool) error
}
