package tests

import (
	"time"

	"recruit-backend/internal/testgen"
)

// Test statuses. A test is graded exactly once; COMPLETED is terminal.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
)

// PassThreshold is the minimum test score that accepts the application.
const PassThreshold = 60.0

// Unanswered marks a question the candidate skipped.
const Unanswered = -1

// Test is the technical test attached to an admitted application.
type Test struct {
	ID            string
	ApplicationID string
	Questions     []testgen.Question
	Status        string
	Score         *float64
	TimeLimit     int
	CompletedAt   *time.Time
	Answers       []int
	CreatedAt     time.Time
}
