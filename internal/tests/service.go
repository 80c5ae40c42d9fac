package tests

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"recruit-backend/internal/applications"
	"recruit-backend/internal/companies"
	"recruit-backend/internal/joboffers"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/testgen"
)

type Service struct {
	Repo      Repo
	Apps      applications.Repo
	Offers    joboffers.Repo
	Companies companies.Repo

	now func() time.Time
}

func NewService(repo Repo, apps applications.Repo, offers joboffers.Repo, comps companies.Repo) *Service {
	return &Service{
		Repo:      repo,
		Apps:      apps,
		Offers:    offers,
		Companies: comps,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateForApplication stores a fresh PENDING test for an admitted
// application. Satisfies applications.TestScheduler.
func (s *Service) CreateForApplication(ctx context.Context, applicationID string, questions []testgen.Question, timeLimitMinutes int) error {
	t := Test{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		Questions:     questions,
		Status:        StatusPending,
		TimeLimit:     timeLimitMinutes,
		CreatedAt:     s.now(),
	}
	return s.Repo.Create(ctx, t)
}

// View is what a candidate sees when opening their test. Questions carry no
// correct answers or explanations until the test has been graded.
type View struct {
	TestID           string          `json:"testId"`
	ApplicationID    string          `json:"applicationId"`
	JobTitle         string          `json:"jobTitle"`
	CompanyName      string          `json:"companyName,omitempty"`
	Status           string          `json:"status"`
	TimeLimitMinutes int             `json:"timeLimitMinutes"`
	Questions        []ViewQuestion  `json:"questions"`
	Score            *float64        `json:"score,omitempty"`
	CompletedAt      *time.Time      `json:"completedAt,omitempty"`
}

type ViewQuestion struct {
	ID         int      `json:"id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
	Skill      string   `json:"skill"`
}

// Fetch returns the candidate's test for an application they own.
func (s *Service) Fetch(ctx context.Context, applicationID, userID string) (View, error) {
	app, err := s.ownedApplication(ctx, applicationID, userID)
	if err != nil {
		return View{}, err
	}

	t, err := s.Repo.GetByApplication(ctx, applicationID)
	if err != nil {
		return View{}, err
	}

	view := View{
		TestID:           t.ID,
		ApplicationID:    t.ApplicationID,
		Status:           t.Status,
		TimeLimitMinutes: t.TimeLimit,
		Questions:        sanitize(t.Questions),
		Score:            t.Score,
		CompletedAt:      t.CompletedAt,
	}

	if offer, err := s.Offers.GetByID(ctx, app.JobOfferID); err == nil {
		view.JobTitle = offer.Title
		if offer.CompanyID != "" && s.Companies != nil {
			if company, err := s.Companies.GetByID(ctx, offer.CompanyID); err == nil {
				view.CompanyName = company.Name
			}
		}
	}

	return view, nil
}

// Result reports the outcome of grading a submission.
type Result struct {
	TestID            string           `json:"testId"`
	Score             float64          `json:"score"`
	Correct           int              `json:"correct"`
	Total             int              `json:"total"`
	Passed            bool             `json:"passed"`
	ApplicationStatus string           `json:"applicationStatus"`
	Details           []QuestionResult `json:"detailedResults"`
}

// QuestionResult is the per-question breakdown returned after grading. The
// correct answer and explanation are only disclosed here, never before
// submission.
type QuestionResult struct {
	ID            int    `json:"id"`
	Question      string `json:"question"`
	YourAnswer    int    `json:"yourAnswer"`
	CorrectAnswer int    `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation,omitempty"`
}

// Submit grades the answers and settles the application. Unanswered
// questions count as wrong. Submissions after the time limit are still
// graded; the limit is advisory and enforced client side.
func (s *Service) Submit(ctx context.Context, applicationID, userID string, answers []int) (Result, error) {
	if _, err := s.ownedApplication(ctx, applicationID, userID); err != nil {
		return Result{}, err
	}

	t, err := s.Repo.GetByApplication(ctx, applicationID)
	if err != nil {
		return Result{}, err
	}
	if t.Status != StatusPending {
		return Result{}, ErrAlreadyCompleted
	}

	total := len(t.Questions)
	if len(answers) > total {
		return Result{}, ErrInvalidAnswers
	}
	graded := make([]int, total)
	for i := range graded {
		graded[i] = Unanswered
	}
	copy(graded, answers)

	correct := 0
	details := make([]QuestionResult, 0, total)
	for i, q := range t.Questions {
		ok := graded[i] == q.CorrectAnswer
		if ok {
			correct++
		}
		details = append(details, QuestionResult{
			ID:            q.ID,
			Question:      q.Question,
			YourAnswer:    graded[i],
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     ok,
			Explanation:   q.Explanation,
		})
	}

	score := 0.0
	if total > 0 {
		score = 100 * float64(correct) / float64(total)
	}

	appStatus := applications.StatusRejected
	if score >= PassThreshold {
		appStatus = applications.StatusAccepted
	}

	if err := s.Repo.Complete(ctx, t.ID, graded, score, s.now(), appStatus); err != nil {
		return Result{}, err
	}

	metrics.IncTestCompleted(score)
	return Result{
		TestID:            t.ID,
		Score:             score,
		Correct:           correct,
		Total:             total,
		Passed:            score >= PassThreshold,
		ApplicationStatus: appStatus,
		Details:           details,
	}, nil
}

func (s *Service) ownedApplication(ctx context.Context, applicationID, userID string) (applications.Application, error) {
	app, err := s.Apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, applications.ErrNotFound) {
			return applications.Application{}, ErrNotFound
		}
		return applications.Application{}, err
	}
	if app.CandidateID != userID {
		return applications.Application{}, ErrForbidden
	}
	return app, nil
}

func sanitize(questions []testgen.Question) []ViewQuestion {
	out := make([]ViewQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, ViewQuestion{
			ID:         q.ID,
			Question:   q.Question,
			Options:    q.Options,
			Difficulty: q.Difficulty,
			Skill:      q.Skill,
		})
	}
	return out
}
