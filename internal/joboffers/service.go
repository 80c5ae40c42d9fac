package joboffers

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

// CreateInput carries the fields a recruiter supplies when opening a position.
type CreateInput struct {
	CompanyID   string
	Title       string
	Description string
	Skills      []string
	Deadline    *time.Time
}

func (s *Service) Create(ctx context.Context, recruiterID string, in CreateInput) (JobOffer, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || in.Description == "" {
		return JobOffer{}, ErrInvalidInput
	}

	skills := make([]string, 0, len(in.Skills))
	for _, skill := range in.Skills {
		skill = strings.TrimSpace(skill)
		if skill != "" {
			skills = append(skills, skill)
		}
	}

	now := time.Now().UTC()
	offer := JobOffer{
		ID:          uuid.NewString(),
		CompanyID:   strings.TrimSpace(in.CompanyID),
		RecruiterID: recruiterID,
		Title:       in.Title,
		Description: in.Description,
		Skills:      skills,
		IsActive:    true,
		Deadline:    in.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, offer); err != nil {
		return JobOffer{}, err
	}
	return offer, nil
}

func (s *Service) Get(ctx context.Context, offerID string) (JobOffer, error) {
	if strings.TrimSpace(offerID) == "" {
		return JobOffer{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, offerID)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]JobOffer, error) {
	return s.Repo.List(ctx, activeOnly)
}

// UpdateInput carries the editable offer fields. Nil pointers leave the
// current value untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	Skills      *[]string
	Deadline    *time.Time
}

func (s *Service) Update(ctx context.Context, offerID string, in UpdateInput) (JobOffer, error) {
	if strings.TrimSpace(offerID) == "" {
		return JobOffer{}, ErrInvalidInput
	}
	offer, err := s.Repo.GetByID(ctx, offerID)
	if err != nil {
		return JobOffer{}, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return JobOffer{}, ErrInvalidInput
		}
		offer.Title = title
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			return JobOffer{}, ErrInvalidInput
		}
		offer.Description = desc
	}
	if in.Skills != nil {
		skills := make([]string, 0, len(*in.Skills))
		for _, skill := range *in.Skills {
			skill = strings.TrimSpace(skill)
			if skill != "" {
				skills = append(skills, skill)
			}
		}
		offer.Skills = skills
	}
	if in.Deadline != nil {
		offer.Deadline = in.Deadline
	}
	if err := s.Repo.Update(ctx, offer); err != nil {
		return JobOffer{}, err
	}
	return s.Repo.GetByID(ctx, offerID)
}

// Close deactivates an offer so it stops accepting applications.
func (s *Service) Close(ctx context.Context, offerID string) error {
	if strings.TrimSpace(offerID) == "" {
		return ErrInvalidInput
	}
	return s.Repo.SetActive(ctx, offerID, false)
}
