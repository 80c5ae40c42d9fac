package applications

import "context"

type Repo interface {
	// Create fails with ErrDuplicate when the candidate already has an
	// application for the same job offer.
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, appID string) (Application, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]Application, error)
	ListByJobOffer(ctx context.Context, jobOfferID string) ([]Application, error)
	UpdateStatus(ctx context.Context, appID, status string) error
}
