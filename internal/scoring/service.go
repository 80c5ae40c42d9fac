package scoring

import (
	"fmt"
	"math"
	"strings"

	"recruit-backend/internal/skills"
)

// Score bands. Each band maps a match-ratio range onto a fixed score
// sub-range; the point inside the sub-range is interpolated linearly from the
// ratio so identical inputs always score identically.
const (
	neutralScore  = 30 // job declares no required skills
	fallbackScore = 45 // CV text empty or unreadable
)

type band struct {
	minRatio float64
	lo, hi   int
}

var bands = []band{
	{0.8, 75, 90},
	{0.6, 60, 74},
	{0.4, 40, 59},
	{0.0, 15, 39},
}

// Service scores one CV against one job offer. Scoring is total: it always
// produces a CVAnalysis and never returns an error.
type Service struct {
	Matcher *skills.Matcher
}

// NewService constructs a scoring service over the default taxonomy.
func NewService() *Service {
	return &Service{Matcher: skills.NewMatcher(skills.Default())}
}

// Score computes the CVAnalysis for cvText against the job.
func (s *Service) Score(cvText string, job skills.Job) CVAnalysis {
	if strings.TrimSpace(cvText) == "" {
		return s.fallback(job)
	}

	match := s.Matcher.Match(cvText, job)
	ratio := match.Ratio()

	var score int
	var detail string
	if ratio < 0 {
		score = neutralScore
		detail = "General profile evaluated; the offer declares no required skills."
	} else {
		score = scoreForRatio(ratio)
		detail = fmt.Sprintf("%d/%d required skills found in the CV.",
			len(match.MatchingSkills), len(match.MatchingSkills)+len(match.MissingSkills))
	}

	analysis := CVAnalysis{
		Score:           score,
		MatchingSkills:  emptyNotNil(match.MatchingSkills),
		MissingSkills:   emptyNotNil(match.MissingSkills),
		DetectedSkills:  emptyNotNil(match.CVSkills),
		ExperienceLevel: ExperienceLevelForScore(score),
		Summary:         detail,
	}
	fillNarrative(&analysis)
	return analysis
}

// fallback is the degraded result used when there is nothing to analyze.
// It must never fail; an application can still be decided on it.
func (s *Service) fallback(job skills.Job) CVAnalysis {
	analysis := CVAnalysis{
		Score:           fallbackScore,
		MatchingSkills:  []string{},
		MissingSkills:   append([]string{}, job.RequiredSkills...),
		DetectedSkills:  []string{},
		ExperienceLevel: ExperienceLevelForScore(fallbackScore),
		Summary:         "Automatic evaluation; CV content was not readable.",
		Recommendations: []string{"Manual review recommended"},
		Strengths:       []string{"Not determined"},
		Weaknesses:      []string{"CV content unavailable"},
	}
	return analysis
}

func scoreForRatio(ratio float64) int {
	if ratio < 0 {
		return neutralScore
	}
	if ratio > 1 {
		ratio = 1
	}
	for i, b := range bands {
		if ratio >= b.minRatio {
			upper := 1.0
			if i > 0 {
				upper = bands[i-1].minRatio
			}
			span := upper - b.minRatio
			frac := 0.0
			if span > 0 {
				frac = (ratio - b.minRatio) / span
			}
			return b.lo + int(math.Round(frac*float64(b.hi-b.lo)))
		}
	}
	return bands[len(bands)-1].lo
}

func fillNarrative(a *CVAnalysis) {
	switch {
	case a.Score >= 75:
		a.Recommendations = []string{"Strong profile", "Solid skill coverage"}
		a.Strengths = []string{"Required skills present", "Profile fits the role"}
		a.Weaknesses = []string{"A few skills to reinforce"}
	case a.Score >= 60:
		a.Recommendations = []string{"Promising profile"}
		a.Strengths = []string{"Partial skill coverage"}
		a.Weaknesses = []string{"Some required skills missing"}
	default:
		a.Recommendations = []string{"Profile does not fit this offer"}
		a.Strengths = []string{"Potential to develop"}
		a.Weaknesses = []string{"Missing required skills"}
	}
}

func emptyNotNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
