package scoring

import (
	"strings"
	"testing"

	"recruit-backend/internal/skills"
)

func jobWithSkills(required ...string) skills.Job {
	return skills.Job{
		Title:          "Fullstack Developer",
		Description:    "Web development role",
		RequiredSkills: required,
	}
}

func TestScoreHighBand(t *testing.T) {
	svc := NewService()
	// 5 required, 4-5 matched: ratio >= 0.8 lands in 75-90.
	cv := "Python, SQL, Docker, React and Git on production systems."
	analysis := svc.Score(cv, jobWithSkills("python", "sql", "docker", "react", "git"))

	if analysis.Score < 75 || analysis.Score > 90 {
		t.Fatalf("score = %d, want high band 75-90", analysis.Score)
	}
	if len(analysis.MatchingSkills)+len(analysis.MissingSkills) != 5 {
		t.Fatalf("partition broken: %v / %v", analysis.MatchingSkills, analysis.MissingSkills)
	}
}

func TestScoreLowBand(t *testing.T) {
	svc := NewService()
	// 1 of 5 matched: ratio 0.2 lands in 15-39.
	cv := "Ten years in sales and customer relations. Some git usage."
	analysis := svc.Score(cv, jobWithSkills("python", "sql", "docker", "react", "git"))

	if analysis.Score < 15 || analysis.Score > 39 {
		t.Fatalf("score = %d, want low band 15-39", analysis.Score)
	}
}

func TestScoreBandBoundaries(t *testing.T) {
	cases := []struct {
		ratio  float64
		lo, hi int
	}{
		{1.0, 75, 90},
		{0.9, 75, 90},
		{0.8, 75, 90},
		{0.7, 60, 74},
		{0.6, 60, 74},
		{0.5, 40, 59},
		{0.4, 40, 59},
		{0.2, 15, 39},
		{0.0, 15, 39},
	}
	for _, tc := range cases {
		got := scoreForRatio(tc.ratio)
		if got < tc.lo || got > tc.hi {
			t.Errorf("scoreForRatio(%v) = %d, want %d-%d", tc.ratio, got, tc.lo, tc.hi)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	svc := NewService()
	job := jobWithSkills("python", "sql")
	cv := "Python developer with SQL background."

	first := svc.Score(cv, job)
	for i := 0; i < 5; i++ {
		if got := svc.Score(cv, job); got.Score != first.Score {
			t.Fatalf("score varies between runs: %d vs %d", got.Score, first.Score)
		}
	}
}

func TestScoreNoRequiredSkillsIsNeutral(t *testing.T) {
	svc := NewService()
	analysis := svc.Score("Any CV text at all", jobWithSkills())
	if analysis.Score < 20 || analysis.Score > 40 {
		t.Fatalf("score = %d, want neutral band 20-40", analysis.Score)
	}
}

func TestScoreEmptyCVFallsBack(t *testing.T) {
	svc := NewService()
	analysis := svc.Score("   ", jobWithSkills("python", "sql"))
	if analysis.Score != fallbackScore {
		t.Fatalf("score = %d, want fallback %d", analysis.Score, fallbackScore)
	}
	if len(analysis.MissingSkills) != 2 {
		t.Fatalf("missing = %v, want both required skills", analysis.MissingSkills)
	}
	if !strings.Contains(analysis.Summary, "not readable") {
		t.Fatalf("summary = %q", analysis.Summary)
	}
}

func TestExperienceLevelForScore(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{95, LevelSenior},
		{90, LevelSenior},
		{85, LevelMid},
		{80, LevelMid},
		{79, LevelJunior},
		{10, LevelJunior},
	}
	for _, tc := range cases {
		if got := ExperienceLevelForScore(tc.score); got != tc.want {
			t.Errorf("level(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
