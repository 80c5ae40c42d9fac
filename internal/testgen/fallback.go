package testgen

import (
	"fmt"

	"recruit-backend/internal/skills"
)

// fallbackTemplate parameterizes one bank entry by job title and the
// candidate's top skills.
type fallbackTemplate struct {
	question      func(jobTitle, primarySkill, secondarySkill string) string
	options       [4]string
	correctAnswer int
	explanation   string
	difficulty    string
	skill         func(primarySkill, secondarySkill string) string
}

var fallbackBank = []fallbackTemplate{
	{
		question: func(_, primary, _ string) string {
			return fmt.Sprintf("Which practice best prevents injection attacks when using %s with a database?", primary)
		},
		options:       [4]string{"Client-side validation", "Escaping output", "Parameterized queries", "Shorter passwords"},
		correctAnswer: 2,
		explanation:   "Parameterized queries keep data separate from executable statements.",
		difficulty:    DifficultyMedium,
		skill:         func(primary, _ string) string { return primary },
	},
	{
		question: func(_, _, secondary string) string {
			return fmt.Sprintf("In a project using %s, how should growing complexity be managed?", secondary)
		},
		options:       [4]string{"Single large module", "Copy-paste per feature", "Modular architecture with clear interfaces", "Avoid abstractions entirely"},
		correctAnswer: 2,
		explanation:   "Modular boundaries keep large codebases maintainable.",
		difficulty:    DifficultyMedium,
		skill:         func(_, secondary string) string { return secondary },
	},
	{
		question: func(_, _, _ string) string {
			return "What is the most reliable way to track down a reproducible bug?"
		},
		options:       [4]string{"Print statements only", "Rewriting the module", "A systematic approach with a debugger and tests", "Waiting for it to disappear"},
		correctAnswer: 2,
		explanation:   "Combining a debugger with a failing test isolates the cause fastest.",
		difficulty:    DifficultyEasy,
		skill:         func(_, _ string) string { return "Debugging" },
	},
	{
		question: func(jobTitle, _, _ string) string {
			return fmt.Sprintf("How are delivery deadlines best managed in a %s role?", jobTitle)
		},
		options:       [4]string{"Work overtime at the end", "No planning", "Iterative planning with visible progress", "Commit to everything"},
		correctAnswer: 2,
		explanation:   "Iterative planning surfaces slippage early enough to act on it.",
		difficulty:    DifficultyEasy,
		skill:         func(_, _ string) string { return "Project management" },
	},
	{
		question: func(_, primary, _ string) string {
			return fmt.Sprintf("What is the right first step to diagnose a performance problem in %s code?", primary)
		},
		options:       [4]string{"Rewrite in another language", "Guess the slow part", "Profile and measure before changing anything", "Add more servers"},
		correctAnswer: 2,
		explanation:   "Measurements beat intuition; profiling finds the real hot spot.",
		difficulty:    DifficultyHard,
		skill:         func(_, _ string) string { return "Performance" },
	},
	{
		question: func(_, _, _ string) string {
			return "Which testing approach gives the strongest regression safety net?"
		},
		options:       [4]string{"Manual testing before releases", "Automated tests run on every change", "Testing only new features", "No tests, careful coding"},
		correctAnswer: 1,
		explanation:   "Automated tests on every change catch regressions immediately.",
		difficulty:    DifficultyMedium,
		skill:         func(_, _ string) string { return "Testing" },
	},
	{
		question: func(_, primary, _ string) string {
			return fmt.Sprintf("What should documentation for a %s codebase prioritize?", primary)
		},
		options:       [4]string{"Restating every line in prose", "Nothing, code is self-documenting", "Interfaces, invariants and setup steps", "Only diagrams"},
		correctAnswer: 2,
		explanation:   "Interfaces and invariants are what the code cannot say on its own.",
		difficulty:    DifficultyMedium,
		skill:         func(_, _ string) string { return "Documentation" },
	},
	{
		question: func(_, _, _ string) string {
			return "A teammate's review finds a flaw in your design. What is the professional response?"
		},
		options:       [4]string{"Defend the design as-is", "Ignore the comment", "Evaluate the concern and adjust if it holds", "Escalate to management"},
		correctAnswer: 2,
		explanation:   "Reviews exist to improve the design before it ships.",
		difficulty:    DifficultyEasy,
		skill:         func(_, _ string) string { return "Collaboration" },
	},
	{
		question: func(_, _, _ string) string {
			return "Which statement about version control branching is correct?"
		},
		options:       [4]string{"Branches should live for months", "Short-lived branches merged often reduce integration pain", "Everyone commits to main directly, always", "Branches are only for releases"},
		correctAnswer: 1,
		explanation:   "Frequent integration keeps merges small and conflicts rare.",
		difficulty:    DifficultyMedium,
		skill:         func(_, _ string) string { return "git" },
	},
	{
		question: func(jobTitle, _, _ string) string {
			return fmt.Sprintf("For a typical %s project, which architecture is the sensible default?", jobTitle)
		},
		options:       [4]string{"Distributed microservices from day one", "A layered monolith split when needs appear", "No structure, grow organically", "One process per function"},
		correctAnswer: 1,
		explanation:   "A well-layered monolith fits most projects and can be split later.",
		difficulty:    DifficultyMedium,
		skill:         func(_, _ string) string { return "Architecture" },
	},
}

// FallbackQuestions deterministically synthesizes the full test from the
// template bank. It always returns exactly QuestionCount valid questions and
// cannot fail.
func FallbackQuestions(job skills.Job, profile CandidateProfile) []Question {
	jobTitle := job.Title
	if jobTitle == "" {
		jobTitle = "software engineering"
	}
	primary := firstNonEmpty(profile.Skills, job.RequiredSkills, "software development")
	secondary := secondSkill(profile.Skills, job.RequiredSkills, primary)

	questions := make([]Question, 0, QuestionCount)
	for i, tpl := range fallbackBank {
		q := Question{
			Question:      tpl.question(jobTitle, primary, secondary),
			Options:       append([]string(nil), tpl.options[:]...),
			CorrectAnswer: tpl.correctAnswer,
			Explanation:   tpl.explanation,
			Difficulty:    tpl.difficulty,
			Skill:         tpl.skill(primary, secondary),
		}
		q.coerce(i, primary)
		questions = append(questions, q)
	}
	return questions
}

func secondSkill(primarySkills, requiredSkills []string, primary string) string {
	for _, s := range primarySkills {
		if s != "" && s != primary {
			return s
		}
	}
	for _, s := range requiredSkills {
		if s != "" && s != primary {
			return s
		}
	}
	return primary
}
