package skills

import (
	"reflect"
	"testing"
)

func TestMatchPartitionsRequiredSkills(t *testing.T) {
	m := NewMatcher(Default())
	job := Job{
		Title:          "Backend Developer",
		Description:    "We need SQL and Docker experience",
		RequiredSkills: []string{"python", "sql", "docker", "kubernetes"},
	}
	cv := "Five years of Python and SQL. Built Docker images daily."

	result := m.Match(cv, job)

	wantMatching := []string{"python", "sql", "docker"}
	wantMissing := []string{"kubernetes"}
	if !reflect.DeepEqual(result.MatchingSkills, wantMatching) {
		t.Fatalf("matching = %v, want %v", result.MatchingSkills, wantMatching)
	}
	if !reflect.DeepEqual(result.MissingSkills, wantMissing) {
		t.Fatalf("missing = %v, want %v", result.MissingSkills, wantMissing)
	}
	if got := len(result.MatchingSkills) + len(result.MissingSkills); got != len(job.RequiredSkills) {
		t.Fatalf("partition size = %d, want %d", got, len(job.RequiredSkills))
	}
}

func TestMatchWordBoundaries(t *testing.T) {
	m := NewMatcher(Default())
	// "java" must not match inside "javascript".
	result := m.Match("Expert in JavaScript only", Job{RequiredSkills: []string{"java", "javascript"}})
	if !reflect.DeepEqual(result.MatchingSkills, []string{"javascript"}) {
		t.Fatalf("matching = %v, want [javascript]", result.MatchingSkills)
	}
	if !reflect.DeepEqual(result.MissingSkills, []string{"java"}) {
		t.Fatalf("missing = %v, want [java]", result.MissingSkills)
	}
}

func TestMatchSymbolKeywords(t *testing.T) {
	m := NewMatcher(Default())
	result := m.Match("Worked with C++ and CI/CD pipelines", Job{RequiredSkills: []string{"c++", "ci/cd"}})
	if len(result.MissingSkills) != 0 {
		t.Fatalf("missing = %v, want none", result.MissingSkills)
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	m := NewMatcher(Default())
	job := Job{Title: "Data Engineer", RequiredSkills: []string{"python", "sql", "aws"}}
	cv := "Python, SQL, AWS, Docker and airflow."

	first := m.Match(cv, job)
	for i := 0; i < 10; i++ {
		if got := m.Match(cv, job); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestRatio(t *testing.T) {
	cases := []struct {
		name     string
		matching int
		missing  int
		want     float64
	}{
		{"all matched", 4, 0, 1},
		{"partial", 3, 1, 0.75},
		{"none required", 0, 0, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := MatchResult{
				MatchingSkills: make([]string, tc.matching),
				MissingSkills:  make([]string, tc.missing),
			}
			if got := r.Ratio(); got != tc.want {
				t.Fatalf("ratio = %v, want %v", got, tc.want)
			}
		})
	}
}
