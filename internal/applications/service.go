package applications

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"recruit-backend/internal/candidates"
	"recruit-backend/internal/joboffers"
	"recruit-backend/internal/scoring"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/telemetry"
	"recruit-backend/internal/skills"
	"recruit-backend/internal/testgen"
)

// TestScheduler creates the technical test for an admitted application.
type TestScheduler interface {
	CreateForApplication(ctx context.Context, applicationID string, questions []testgen.Question, timeLimitMinutes int) error
}

type Service struct {
	Repo      Repo
	Offers    joboffers.Repo
	CVs       candidates.Repo
	Scorer    *scoring.Service
	Generator *testgen.Generator
	Tests     TestScheduler

	now func() time.Time
}

func NewService(repo Repo, offers joboffers.Repo, cvs candidates.Repo, scorer *scoring.Service, gen *testgen.Generator, tests TestScheduler) *Service {
	return &Service{
		Repo:      repo,
		Offers:    offers,
		CVs:       cvs,
		Scorer:    scorer,
		Generator: gen,
		Tests:     tests,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SubmitResult is what the candidate sees right after applying. TestReady is
// true when a test was generated and is waiting for them.
type SubmitResult struct {
	Application Application
	TestReady   bool
}

// Submit screens the candidate's current CV against the job offer and either
// admits them to the technical test or rejects the application. The computed
// score and analysis are stored on the application and never recomputed.
func (s *Service) Submit(ctx context.Context, candidateID, jobOfferID string) (SubmitResult, error) {
	offer, err := s.Offers.GetByID(ctx, jobOfferID)
	if err != nil {
		if errors.Is(err, joboffers.ErrNotFound) {
			return SubmitResult{}, joboffers.ErrNotFound
		}
		return SubmitResult{}, err
	}

	now := s.now()
	if !offer.IsActive {
		return SubmitResult{}, ErrJobInactive
	}
	if offer.Deadline != nil && now.After(*offer.Deadline) {
		return SubmitResult{}, ErrDeadlinePassed
	}

	cv, err := s.CVs.GetByUser(ctx, candidateID)
	if err != nil {
		if errors.Is(err, candidates.ErrNotFound) {
			return SubmitResult{}, ErrNoCV
		}
		return SubmitResult{}, err
	}

	job := skills.Job{
		Title:          offer.Title,
		Description:    offer.Description,
		RequiredSkills: offer.Skills,
	}
	analysis := s.Scorer.Score(cv.ExtractedText, job)

	app := Application{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		JobOfferID:  jobOfferID,
		Status:      StatusRejected,
		CVScore:     analysis.Score,
		Analysis:    analysis,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	admitted := analysis.Score >= AdmissionThreshold
	if admitted {
		app.Status = StatusPending
	}

	if err := s.Repo.Create(ctx, app); err != nil {
		return SubmitResult{}, err
	}

	metrics.IncApplicationSubmitted(analysis.Score)
	if !admitted {
		metrics.IncApplicationRejected()
		return SubmitResult{Application: app}, nil
	}
	metrics.IncApplicationAdmitted()

	profile := testgen.CandidateProfile{
		Skills:          analysis.DetectedSkills,
		MatchingSkills:  analysis.MatchingSkills,
		ExperienceLevel: analysis.ExperienceLevel,
	}
	questions := s.Generator.Generate(ctx, job, profile)
	if err := s.Tests.CreateForApplication(ctx, app.ID, questions, TestTimeLimitMinutes); err != nil {
		telemetry.Error("applications.test.create_failed", map[string]any{
			"err":            err.Error(),
			"application_id": app.ID,
		})
		return SubmitResult{}, err
	}

	return SubmitResult{Application: app, TestReady: true}, nil
}

// Get returns an application, restricted to its owner.
func (s *Service) Get(ctx context.Context, appID, candidateID string) (Application, error) {
	app, err := s.Repo.GetByID(ctx, appID)
	if err != nil {
		return Application{}, err
	}
	if app.CandidateID != candidateID {
		return Application{}, ErrForbidden
	}
	return app, nil
}

func (s *Service) ListMine(ctx context.Context, candidateID string) ([]Application, error) {
	return s.Repo.ListByCandidate(ctx, candidateID)
}

// ListForOffer is the recruiter view of all applications against one offer.
func (s *Service) ListForOffer(ctx context.Context, jobOfferID string) ([]Application, error) {
	return s.Repo.ListByJobOffer(ctx, jobOfferID)
}

// Stats summarizes a candidate's applications by status.
type Stats struct {
	Total          int     `json:"total"`
	Pending        int     `json:"pending"`
	Accepted       int     `json:"accepted"`
	Rejected       int     `json:"rejected"`
	AverageCVScore float64 `json:"averageCvScore"`
}

func (s *Service) StatsFor(ctx context.Context, candidateID string) (Stats, error) {
	apps, err := s.Repo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return Stats{}, err
	}
	var stats Stats
	scoreSum := 0
	for _, app := range apps {
		stats.Total++
		scoreSum += app.CVScore
		switch app.Status {
		case StatusPending:
			stats.Pending++
		case StatusAccepted:
			stats.Accepted++
		case StatusRejected:
			stats.Rejected++
		}
	}
	if stats.Total > 0 {
		stats.AverageCVScore = float64(scoreSum) / float64(stats.Total)
	}
	return stats, nil
}
