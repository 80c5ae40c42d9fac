package applications

import (
	"time"

	"recruit-backend/internal/scoring"
)

// Response is the outward-facing representation of an application.
type Response struct {
	ID         string             `json:"id"`
	JobOfferID string             `json:"jobOfferId"`
	Status     string             `json:"status"`
	CVScore    int                `json:"cvScore"`
	Analysis   scoring.CVAnalysis `json:"analysis"`
	TestReady  bool               `json:"testReady,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

func toResponse(app Application) Response {
	return Response{
		ID:         app.ID,
		JobOfferID: app.JobOfferID,
		Status:     app.Status,
		CVScore:    app.CVScore,
		Analysis:   app.Analysis,
		CreatedAt:  app.CreatedAt,
	}
}
