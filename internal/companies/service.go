package companies

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID, name, description string) (Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Company{}, ErrInvalidInput
	}
	company := Company{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
	}
	company.UpdatedAt = company.CreatedAt
	if err := s.Repo.Create(ctx, company); err != nil {
		return Company{}, err
	}
	return company, nil
}

func (s *Service) Get(ctx context.Context, companyID string) (Company, error) {
	if strings.TrimSpace(companyID) == "" {
		return Company{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, companyID)
}

func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.Repo.List(ctx)
}
