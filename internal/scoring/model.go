package scoring

// Experience levels derived from the CV score. Only used when an application
// is admitted to the technical test.
const (
	LevelJunior = "Junior"
	LevelMid    = "Mid-level"
	LevelSenior = "Senior"
)

// CVAnalysis is the scored match between one CV and one job offer.
// MatchingSkills and MissingSkills partition the job's required-skill list.
type CVAnalysis struct {
	Score           int      `json:"score"`
	MatchingSkills  []string `json:"matchingSkills"`
	MissingSkills   []string `json:"missingSkills"`
	DetectedSkills  []string `json:"detectedSkills"`
	ExperienceLevel string   `json:"experienceLevel"`
	Recommendations []string `json:"recommendations"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Summary         string   `json:"summary"`
}

// ExperienceLevelForScore maps a CV score to a level. Senior at 90+,
// Mid-level at 80+, Junior below.
func ExperienceLevelForScore(score int) string {
	switch {
	case score >= 90:
		return LevelSenior
	case score >= 80:
		return LevelMid
	default:
		return LevelJunior
	}
}
