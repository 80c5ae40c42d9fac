package candidates

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("cv not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repo interface {
	// Save replaces any existing CV owned by the same user.
	Save(ctx context.Context, cv CV) error
	GetByUser(ctx context.Context, userID string) (CV, error)
}
