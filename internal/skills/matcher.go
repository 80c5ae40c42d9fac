package skills

import (
	"sort"
	"strings"
	"unicode"
)

// Job carries the requirement side of a match.
type Job struct {
	Title          string
	Description    string
	RequiredSkills []string
}

// MatchResult partitions a job's required skills against a CV and reports the
// taxonomy skills detected on each side.
type MatchResult struct {
	CVSkills       []string
	JobSkills      []string
	MatchingSkills []string
	MissingSkills  []string
}

// Matcher detects skills in free text against a fixed taxonomy. The zero
// value is not usable; construct with NewMatcher.
type Matcher struct {
	taxonomy Taxonomy
}

// NewMatcher returns a Matcher over the given taxonomy.
func NewMatcher(taxonomy Taxonomy) *Matcher {
	return &Matcher{taxonomy: taxonomy}
}

// Match is deterministic: identical inputs always produce identical results.
// MatchingSkills and MissingSkills partition the job's required-skill list;
// every required skill lands in exactly one of the two.
func (m *Matcher) Match(cvText string, job Job) MatchResult {
	jobText := strings.Join([]string{job.Title, job.Description, strings.Join(job.RequiredSkills, " ")}, " ")

	result := MatchResult{
		CVSkills:  m.detect(cvText),
		JobSkills: m.detect(jobText),
	}

	cvLower := strings.ToLower(cvText)
	for _, required := range job.RequiredSkills {
		if skillInText(cvLower, required) {
			result.MatchingSkills = append(result.MatchingSkills, required)
		} else {
			result.MissingSkills = append(result.MissingSkills, required)
		}
	}
	return result
}

// Ratio returns matched/required, or -1 when the job declares no skills so
// callers can distinguish "nothing required" from "nothing matched".
func (r MatchResult) Ratio() float64 {
	total := len(r.MatchingSkills) + len(r.MissingSkills)
	if total == 0 {
		return -1
	}
	return float64(len(r.MatchingSkills)) / float64(total)
}

func (m *Matcher) detect(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, keyword := range m.taxonomy.All() {
		if skillInText(lower, keyword) {
			found = append(found, keyword)
		}
	}
	sort.Strings(found)
	return found
}

// skillInText reports whether the keyword appears in lowered text on a word
// boundary. Keywords containing symbols ("c++", "ci/cd") fall back to plain
// substring search since boundary rules do not apply cleanly.
func skillInText(loweredText, keyword string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return false
	}
	if strings.ContainsFunc(kw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' '
	}) {
		return strings.Contains(loweredText, kw)
	}

	idx := 0
	for {
		pos := strings.Index(loweredText[idx:], kw)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(kw)
		if boundaryBefore(loweredText, start) && boundaryAfter(loweredText, end) {
			return true
		}
		idx = start + 1
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	return !isWordByte(s[i-1])
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	return !isWordByte(s[i])
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
