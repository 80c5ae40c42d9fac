package applications

import (
	"time"

	"recruit-backend/internal/scoring"
)

// Application statuses. PENDING means the candidate passed CV screening and
// has a technical test waiting; ACCEPTED and REJECTED are terminal.
const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// AdmissionThreshold is the minimum CV score that opens the technical test.
const AdmissionThreshold = 75

// TestTimeLimitMinutes is granted to every generated test.
const TestTimeLimitMinutes = 30

// Application records a candidate's submission against one job offer.
// CVScore and Analysis are frozen at submission time; re-uploading a CV
// never changes a past application.
type Application struct {
	ID          string
	CandidateID string
	JobOfferID  string
	Status      string
	CVScore     int
	Analysis    scoring.CVAnalysis
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
