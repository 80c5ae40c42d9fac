package tests_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/bootstrap"
	"recruit-backend/internal/candidates"
	"recruit-backend/internal/shared/config"
)

const strongCV = "Engineer experienced with Go, PostgreSQL, Docker, Kubernetes and AWS."

// admittedApplication drives the public API to the point where a candidate
// has a PENDING application with a waiting test, and returns the answer key
// read straight from the repository.
func admittedApplication(t *testing.T, guestID string) (*bootstrap.App, string, []int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}

	payload, _ := json.Marshal(map[string]any{
		"title":       "Backend Engineer",
		"description": "We are hiring.",
		"skills":      []string{"go", "postgresql", "docker", "kubernetes", "aws"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/job-offers", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "recruiter-1")
	req.Header.Set("X-Guest-Role", "RECRUITER")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create offer: %d: %s", resp.Code, resp.Body.String())
	}
	var offer struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&offer); err != nil {
		t.Fatalf("decode offer: %v", err)
	}

	err = app.CVRepo.Save(context.Background(), candidates.CV{
		ID:            "cv-" + guestID,
		UserID:        "guest:" + guestID,
		FileName:      "cv.pdf",
		StorageKey:    "cvs/" + guestID,
		ExtractedText: strongCV,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed cv: %v", err)
	}

	applyReq := httptest.NewRequest(http.MethodPost, "/api/v1/job-offers/"+offer.ID+"/apply", nil)
	applyReq.Header.Set("X-Guest-Id", guestID)
	applyResp := httptest.NewRecorder()
	app.Router.ServeHTTP(applyResp, applyReq)
	if applyResp.Code != http.StatusCreated {
		t.Fatalf("apply: %d: %s", applyResp.Code, applyResp.Body.String())
	}
	var application struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(applyResp.Body).Decode(&application); err != nil {
		t.Fatalf("decode application: %v", err)
	}
	if application.Status != "PENDING" {
		t.Fatalf("expected PENDING application, got %s", application.Status)
	}

	stored, err := app.TestsRepo.GetByApplication(context.Background(), application.ID)
	if err != nil {
		t.Fatalf("load stored test: %v", err)
	}
	key := make([]int, len(stored.Questions))
	for i, q := range stored.Questions {
		key[i] = q.CorrectAnswer
	}
	return app, application.ID, key
}

func submitAnswers(t *testing.T, app *bootstrap.App, guestID, applicationID string, answers []int) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(map[string]any{"answers": answers})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/"+applicationID+"/test", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func fetchApplicationStatus(t *testing.T, app *bootstrap.App, guestID, applicationID string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications/"+applicationID, nil)
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("fetch application: %d", resp.Code)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode application: %v", err)
	}
	return body.Status
}

func TestSubmitPassingScoreAcceptsApplication(t *testing.T) {
	app, appID, key := admittedApplication(t, "alice")

	// Seven right answers out of ten scores 70.
	answers := make([]int, len(key))
	copy(answers, key)
	for i := 7; i < len(answers); i++ {
		answers[i] = wrongAnswer(key[i])
	}

	resp := submitAnswers(t, app, "alice", appID, answers)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		Score             float64 `json:"score"`
		Correct           int     `json:"correct"`
		Passed            bool    `json:"passed"`
		ApplicationStatus string  `json:"applicationStatus"`
		Details           []struct {
			YourAnswer    int  `json:"yourAnswer"`
			CorrectAnswer int  `json:"correctAnswer"`
			IsCorrect     bool `json:"isCorrect"`
		} `json:"detailedResults"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Correct != 7 || result.Score != 70 {
		t.Fatalf("expected 7 correct / score 70, got %d / %v", result.Correct, result.Score)
	}
	if len(result.Details) != 10 {
		t.Fatalf("expected 10 detailed results, got %d", len(result.Details))
	}
	for i, d := range result.Details {
		if d.IsCorrect != (d.YourAnswer == d.CorrectAnswer) {
			t.Fatalf("detail %d inconsistent: %+v", i, d)
		}
	}
	if !result.Passed || result.ApplicationStatus != "ACCEPTED" {
		t.Fatalf("expected pass and ACCEPTED, got %+v", result)
	}
	if got := fetchApplicationStatus(t, app, "alice", appID); got != "ACCEPTED" {
		t.Fatalf("application status = %s, want ACCEPTED", got)
	}
}

func TestSubmitFailingScoreRejectsApplication(t *testing.T) {
	app, appID, key := admittedApplication(t, "bob")

	answers := make([]int, len(key))
	copy(answers, key)
	for i := 5; i < len(answers); i++ {
		answers[i] = wrongAnswer(key[i])
	}

	resp := submitAnswers(t, app, "bob", appID, answers)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		Score             float64 `json:"score"`
		Passed            bool    `json:"passed"`
		ApplicationStatus string  `json:"applicationStatus"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Score != 50 || result.Passed || result.ApplicationStatus != "REJECTED" {
		t.Fatalf("expected score 50 / REJECTED, got %+v", result)
	}
	if got := fetchApplicationStatus(t, app, "bob", appID); got != "REJECTED" {
		t.Fatalf("application status = %s, want REJECTED", got)
	}
}

func TestSecondSubmissionConflicts(t *testing.T) {
	app, appID, key := admittedApplication(t, "carol")

	if resp := submitAnswers(t, app, "carol", appID, key); resp.Code != http.StatusOK {
		t.Fatalf("first submit: %d", resp.Code)
	}
	resp := submitAnswers(t, app, "carol", appID, key)
	if resp.Code != http.StatusConflict {
		t.Fatalf("second submit: expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
	// The first grade stands.
	if got := fetchApplicationStatus(t, app, "carol", appID); got != "ACCEPTED" {
		t.Fatalf("application status = %s, want ACCEPTED", got)
	}
}

func TestPartialAnswersCountAsWrong(t *testing.T) {
	app, appID, key := admittedApplication(t, "dave")

	// Answer only the first six questions correctly.
	resp := submitAnswers(t, app, "dave", appID, key[:6])
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		Score   float64 `json:"score"`
		Correct int     `json:"correct"`
		Passed  bool    `json:"passed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Correct != 6 || result.Score != 60 || !result.Passed {
		t.Fatalf("expected 6 correct / score 60 / pass, got %+v", result)
	}
}

func TestSubmitForForeignApplicationForbidden(t *testing.T) {
	app, appID, key := admittedApplication(t, "erin")

	resp := submitAnswers(t, app, "mallory", appID, key)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestTooManyAnswersRejected(t *testing.T) {
	app, appID, key := admittedApplication(t, "frank")

	answers := append(append([]int{}, key...), 0)
	resp := submitAnswers(t, app, "frank", appID, answers)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func wrongAnswer(correct int) int {
	return (correct + 1) % 4
}
