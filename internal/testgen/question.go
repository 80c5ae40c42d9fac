package testgen

import (
	"strconv"
	"strings"
)

// QuestionCount is the fixed size of a technical test.
const QuestionCount = 10

// Difficulty tags carried by every question.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is one multiple-choice entry: exactly 4 options, one correct
// index in [0,3].
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Skill         string   `json:"skill"`
}

// coerce repairs a malformed question in place rather than rejecting it.
// Shape violations from the generation capability are downgraded to safe
// defaults so a test always stays gradable.
func (q *Question) coerce(index int, defaultSkill string) {
	q.ID = index + 1
	if strings.TrimSpace(q.Question) == "" {
		q.Question = defaultQuestionText(index)
	}
	if len(q.Options) != 4 {
		q.Options = []string{"Option A", "Option B", "Option C", "Option D"}
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			q.Options[i] = defaultOptionText(i)
		}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
		q.CorrectAnswer = 0
	}
	if strings.TrimSpace(q.Explanation) == "" {
		q.Explanation = "Explanation not available."
	}
	switch q.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		q.Difficulty = DifficultyMedium
	}
	if strings.TrimSpace(q.Skill) == "" {
		q.Skill = defaultSkill
	}
}

func defaultQuestionText(index int) string {
	return "Technical question " + strconv.Itoa(index+1)
}

func defaultOptionText(index int) string {
	return "Option " + string(rune('A'+index))
}
