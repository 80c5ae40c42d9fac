package testgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"recruit-backend/internal/llm"
	"recruit-backend/internal/shared/telemetry"
	"recruit-backend/internal/skills"
)

// ErrDegraded signals internally that the generation capability failed and
// the fallback bank was used. It is never surfaced to callers of Generate.
var ErrDegraded = errors.New("generation degraded to fallback")

// CandidateProfile is the candidate side of the generation prompt.
type CandidateProfile struct {
	Skills          []string
	MatchingSkills  []string
	Experience      string
	Projects        []string
	ExperienceLevel string
}

// Generator produces the 10-question technical test for an admitted
// application. The LLM path is best-effort; the template fallback is total.
type Generator struct {
	LLM     llm.Client
	Timeout time.Duration
}

// NewGenerator constructs a Generator with the default 20s generation budget.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{LLM: client, Timeout: 20 * time.Second}
}

// Generate returns exactly QuestionCount valid questions. It never returns an
// error: any failure of the generation capability (timeout, malformed output,
// wrong count) degrades to the deterministic fallback bank.
func (g *Generator) Generate(ctx context.Context, job skills.Job, profile CandidateProfile) []Question {
	questions, err := g.generateWithLLM(ctx, job, profile)
	if err != nil {
		telemetry.Info("testgen.fallback", map[string]any{
			"job_title": job.Title,
			"reason":    err.Error(),
		})
		return FallbackQuestions(job, profile)
	}
	return questions
}

func (g *Generator) generateWithLLM(ctx context.Context, job skills.Job, profile CandidateProfile) ([]Question, error) {
	if g.LLM == nil {
		return nil, errors.New("llm client not configured")
	}

	timeout := g.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := g.LLM.Complete(ctx, buildPrompt(job, profile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegraded, err)
	}

	questions, err := parseQuestions(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegraded, err)
	}

	defaultSkill := firstNonEmpty(profile.Skills, job.RequiredSkills, "General")
	for i := range questions {
		questions[i].coerce(i, defaultSkill)
	}
	return questions, nil
}

// parseQuestions decodes the raw model output and enforces the exact count.
// The payload may be a bare JSON array or wrapped in a markdown fence.
func parseQuestions(raw string) ([]Question, error) {
	payload := extractJSONArray(raw)
	if payload == "" {
		return nil, errors.New("no JSON array in response")
	}

	var questions []Question
	if err := json.Unmarshal([]byte(payload), &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if len(questions) != QuestionCount {
		return nil, fmt.Errorf("expected %d questions, got %d", QuestionCount, len(questions))
	}
	return questions, nil
}

func extractJSONArray(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

func buildPrompt(job skills.Job, profile CandidateProfile) string {
	var b strings.Builder
	b.WriteString("Create exactly 10 technical multiple-choice questions for a candidate screening test.\n\n")

	b.WriteString("JOB CONTEXT:\n")
	fmt.Fprintf(&b, "Title: %s\n", job.Title)
	fmt.Fprintf(&b, "Description: %s\n", job.Description)
	fmt.Fprintf(&b, "Required skills: %s\n\n", strings.Join(job.RequiredSkills, ", "))

	b.WriteString("CANDIDATE PROFILE:\n")
	fmt.Fprintf(&b, "Level: %s\n", profile.ExperienceLevel)
	fmt.Fprintf(&b, "Declared skills: %s\n", strings.Join(profile.Skills, ", "))
	fmt.Fprintf(&b, "Experience: %s\n", profile.Experience)
	fmt.Fprintf(&b, "Projects: %s\n", strings.Join(profile.Projects, ", "))
	fmt.Fprintf(&b, "Matching skills: %s\n\n", strings.Join(profile.MatchingSkills, ", "))

	b.WriteString("RULES:\n")
	b.WriteString("- Exactly 10 questions, no more, no less\n")
	b.WriteString("- 4 answer options per question, exactly one correct\n")
	b.WriteString("- 50% of questions probe the candidate's declared skills\n")
	b.WriteString("- 30% probe the job's required skills\n")
	b.WriteString("- 20% probe practical scenarios tied to the candidate's projects\n")
	b.WriteString("- Adjust difficulty to the candidate's level\n\n")

	b.WriteString("Respond ONLY with a valid JSON array of exactly 10 objects shaped as:\n")
	b.WriteString(`[{"id":1,"question":"...","options":["A","B","C","D"],"correctAnswer":0,"explanation":"...","difficulty":"easy|medium|hard","skill":"..."}]`)
	return b.String()
}

func firstNonEmpty(primary, secondary []string, fallback string) string {
	if len(primary) > 0 && strings.TrimSpace(primary[0]) != "" {
		return primary[0]
	}
	if len(secondary) > 0 && strings.TrimSpace(secondary[0]) != "" {
		return secondary[0]
	}
	return fallback
}
