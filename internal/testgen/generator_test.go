package testgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"recruit-backend/internal/skills"
)

type stubLLM struct {
	response string
	err      error
	delay    time.Duration
}

func (s stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.response, s.err
}

func sampleJob() skills.Job {
	return skills.Job{
		Title:          "Backend Developer",
		Description:    "Go services",
		RequiredSkills: []string{"go", "sql"},
	}
}

func sampleProfile() CandidateProfile {
	return CandidateProfile{
		Skills:          []string{"go", "docker"},
		MatchingSkills:  []string{"go"},
		Experience:      "3 years",
		Projects:        []string{"payments API"},
		ExperienceLevel: "Mid-level",
	}
}

func validLLMResponse(t *testing.T) string {
	t.Helper()
	questions := make([]Question, QuestionCount)
	for i := range questions {
		questions[i] = Question{
			ID:            i + 1,
			Question:      fmt.Sprintf("Question %d?", i+1),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
			Explanation:   "because",
			Difficulty:    DifficultyMedium,
			Skill:         "go",
		}
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(raw)
}

func assertValidTest(t *testing.T, questions []Question) {
	t.Helper()
	if len(questions) != QuestionCount {
		t.Fatalf("got %d questions, want %d", len(questions), QuestionCount)
	}
	for i, q := range questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d: %d options", i, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			t.Errorf("question %d: correctAnswer %d out of range", i, q.CorrectAnswer)
		}
		if q.Question == "" || q.Skill == "" || q.Difficulty == "" {
			t.Errorf("question %d: missing fields: %+v", i, q)
		}
	}
}

func TestGenerateUsesLLMOutput(t *testing.T) {
	gen := NewGenerator(stubLLM{response: validLLMResponse(t)})
	questions := gen.Generate(context.Background(), sampleJob(), sampleProfile())
	assertValidTest(t, questions)
	if questions[0].Question != "Question 1?" {
		t.Fatalf("question text = %q", questions[0].Question)
	}
}

func TestGenerateFallsBackOnError(t *testing.T) {
	gen := NewGenerator(stubLLM{err: errors.New("boom")})
	questions := gen.Generate(context.Background(), sampleJob(), sampleProfile())
	assertValidTest(t, questions)
}

func TestGenerateFallsBackOnTimeout(t *testing.T) {
	gen := NewGenerator(stubLLM{response: "never", delay: time.Second})
	gen.Timeout = 10 * time.Millisecond
	questions := gen.Generate(context.Background(), sampleJob(), sampleProfile())
	assertValidTest(t, questions)
}

func TestGenerateFallsBackOnWrongCount(t *testing.T) {
	gen := NewGenerator(stubLLM{response: `[{"question":"only one","options":["a","b","c","d"],"correctAnswer":0}]`})
	questions := gen.Generate(context.Background(), sampleJob(), sampleProfile())
	assertValidTest(t, questions)
}

func TestGenerateFallsBackOnMalformedJSON(t *testing.T) {
	gen := NewGenerator(stubLLM{response: "sorry, I cannot help with that"})
	questions := gen.Generate(context.Background(), sampleJob(), sampleProfile())
	assertValidTest(t, questions)
}

func TestGenerateCoercesBrokenQuestions(t *testing.T) {
	questions := make([]Question, QuestionCount)
	for i := range questions {
		questions[i] = Question{
			Question:      fmt.Sprintf("Q%d", i+1),
			Options:       []string{"only", "three", "options"},
			CorrectAnswer: 7,
			Difficulty:    "impossible",
		}
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	gen := NewGenerator(stubLLM{response: string(raw)})
	got := gen.Generate(context.Background(), sampleJob(), sampleProfile())
	assertValidTest(t, got)
	for i, q := range got {
		if q.CorrectAnswer != 0 {
			t.Errorf("question %d: coerced correctAnswer = %d, want 0", i, q.CorrectAnswer)
		}
		if q.Difficulty != DifficultyMedium {
			t.Errorf("question %d: coerced difficulty = %q", i, q.Difficulty)
		}
	}
}

func TestGenerateAcceptsFencedJSON(t *testing.T) {
	fenced := "```json\n" + validLLMResponse(t) + "\n```"
	gen := NewGenerator(stubLLM{response: fenced})
	questions := gen.Generate(context.Background(), sampleJob(), sampleProfile())
	assertValidTest(t, questions)
}

func TestFallbackIsDeterministic(t *testing.T) {
	job, profile := sampleJob(), sampleProfile()
	first := FallbackQuestions(job, profile)
	assertValidTest(t, first)
	for i := 0; i < 5; i++ {
		if got := FallbackQuestions(job, profile); !reflect.DeepEqual(got, first) {
			t.Fatalf("fallback differs between runs")
		}
	}
}

func TestFallbackHandlesEmptyInputs(t *testing.T) {
	questions := FallbackQuestions(skills.Job{}, CandidateProfile{})
	assertValidTest(t, questions)
}
