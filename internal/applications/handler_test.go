package applications_test

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

const goHeavyCV = "Backend engineer with Go, PostgreSQL, Docker, Kubernetes and AWS. " +
	"Built REST APIs and CI pipelines, worked in agile teams."

const weakCV = "Graphic designer skilled in Photoshop and Illustrator with a passion for branding."

var backendSkills = []string{"go", "postgresql", "docker", "kubernetes", "aws"}

func buildApp(t *testing.T) *bootstrap.App {
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
	return app
}

func seedCV(t *testing.T, app *bootstrap.App, guestID, text string) {
	t.Helper()
	err := app.CVRepo.Save(context.Background(), candidates.CV{
		ID:            "cv-" + guestID,
		UserID:        "guest:" + guestID,
		FileName:      "cv.pdf",
		StorageKey:    "cvs/" + guestID,
		ExtractedText: text,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed cv: %v", err)
	}
}

func createOffer(t *testing.T, router *gin.Engine, title string, skills []string) string {
	t.Helper()
	payload, _ := json.Marshal(map[string]any{
		"title":       title,
		"description": "We are hiring.",
		"skills":      skills,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/job-offers", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "recruiter-1")
	req.Header.Set("X-Guest-Role", "RECRUITER")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create offer: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode offer: %v", err)
	}
	return created.ID
}

func apply(t *testing.T, router *gin.Engine, guestID, offerID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/job-offers/"+offerID+"/apply", nil)
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestApplyStrongCVOpensTest(t *testing.T) {
	app := buildApp(t)
	offerID := createOffer(t, app.Router, "Backend Engineer", backendSkills)
	seedCV(t, app, "alice", goHeavyCV)

	resp := apply(t, app.Router, "alice", offerID)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		CVScore   int    `json:"cvScore"`
		TestReady bool   `json:"testReady"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "PENDING" {
		t.Fatalf("expected status PENDING, got %s", body.Status)
	}
	if body.CVScore < 75 || body.CVScore > 90 {
		t.Fatalf("expected score in [75,90], got %d", body.CVScore)
	}
	if !body.TestReady {
		t.Fatal("expected a generated test")
	}

	// The waiting test has exactly ten questions and leaks no answers.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications/"+body.ID+"/test", nil)
	req.Header.Set("X-Guest-Id", "alice")
	testResp := httptest.NewRecorder()
	app.Router.ServeHTTP(testResp, req)
	if testResp.Code != http.StatusOK {
		t.Fatalf("fetch test: expected 200, got %d: %s", testResp.Code, testResp.Body.String())
	}

	var view struct {
		JobTitle         string           `json:"jobTitle"`
		TimeLimitMinutes int              `json:"timeLimitMinutes"`
		Questions        []map[string]any `json:"questions"`
	}
	if err := json.NewDecoder(testResp.Body).Decode(&view); err != nil {
		t.Fatalf("decode test: %v", err)
	}
	if len(view.Questions) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(view.Questions))
	}
	if view.TimeLimitMinutes != 30 {
		t.Fatalf("expected 30 minute limit, got %d", view.TimeLimitMinutes)
	}
	if view.JobTitle != "Backend Engineer" {
		t.Fatalf("expected job title, got %q", view.JobTitle)
	}
	for i, q := range view.Questions {
		if _, leaked := q["correctAnswer"]; leaked {
			t.Fatalf("question %d leaks correctAnswer", i)
		}
		if _, leaked := q["explanation"]; leaked {
			t.Fatalf("question %d leaks explanation", i)
		}
		options, ok := q["options"].([]any)
		if !ok || len(options) != 4 {
			t.Fatalf("question %d: expected 4 options", i)
		}
	}
}

func TestApplyWeakCVRejectsWithoutTest(t *testing.T) {
	app := buildApp(t)
	offerID := createOffer(t, app.Router, "Backend Engineer", backendSkills)
	seedCV(t, app, "bob", weakCV)

	resp := apply(t, app.Router, "bob", offerID)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		CVScore   int    `json:"cvScore"`
		TestReady bool   `json:"testReady"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "REJECTED" {
		t.Fatalf("expected status REJECTED, got %s", body.Status)
	}
	if body.CVScore >= 75 {
		t.Fatalf("expected score below threshold, got %d", body.CVScore)
	}
	if body.TestReady {
		t.Fatal("rejected application must not get a test")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications/"+body.ID+"/test", nil)
	req.Header.Set("X-Guest-Id", "bob")
	testResp := httptest.NewRecorder()
	app.Router.ServeHTTP(testResp, req)
	if testResp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing test, got %d", testResp.Code)
	}
}

func TestApplyTwiceConflicts(t *testing.T) {
	app := buildApp(t)
	offerID := createOffer(t, app.Router, "Backend Engineer", backendSkills)
	seedCV(t, app, "carol", goHeavyCV)

	if resp := apply(t, app.Router, "carol", offerID); resp.Code != http.StatusCreated {
		t.Fatalf("first apply: expected 201, got %d", resp.Code)
	}
	resp := apply(t, app.Router, "carol", offerID)
	if resp.Code != http.StatusConflict {
		t.Fatalf("second apply: expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestApplyWithoutCVFails(t *testing.T) {
	app := buildApp(t)
	offerID := createOffer(t, app.Router, "Backend Engineer", backendSkills)

	resp := apply(t, app.Router, "dave", offerID)
	if resp.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected 412, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestApplyToClosedOfferConflicts(t *testing.T) {
	app := buildApp(t)
	offerID := createOffer(t, app.Router, "Backend Engineer", backendSkills)
	seedCV(t, app, "erin", goHeavyCV)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/job-offers/"+offerID, nil)
	req.Header.Set("X-Guest-Id", "recruiter-1")
	req.Header.Set("X-Guest-Role", "RECRUITER")
	closeResp := httptest.NewRecorder()
	app.Router.ServeHTTP(closeResp, req)
	if closeResp.Code != http.StatusOK {
		t.Fatalf("close offer: expected 200, got %d", closeResp.Code)
	}

	resp := apply(t, app.Router, "erin", offerID)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCVScoreFrozenAfterApplying(t *testing.T) {
	app := buildApp(t)
	offerID := createOffer(t, app.Router, "Backend Engineer", backendSkills)
	seedCV(t, app, "frank", goHeavyCV)

	resp := apply(t, app.Router, "frank", offerID)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var created struct {
		ID      string `json:"id"`
		CVScore int    `json:"cvScore"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Swapping the CV afterwards must not touch the stored application.
	seedCV(t, app, "frank", weakCV)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications/"+created.ID, nil)
	req.Header.Set("X-Guest-Id", "frank")
	getResp := httptest.NewRecorder()
	app.Router.ServeHTTP(getResp, req)
	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.Code)
	}
	var fetched struct {
		CVScore int `json:"cvScore"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fetched.CVScore != created.CVScore {
		t.Fatalf("cv score changed: %d -> %d", created.CVScore, fetched.CVScore)
	}
}

func TestCandidateStats(t *testing.T) {
	app := buildApp(t)
	strongOffer := createOffer(t, app.Router, "Backend Engineer", backendSkills)
	weakOffer := createOffer(t, app.Router, "Designer", []string{"figma", "sketch", "typography"})
	seedCV(t, app, "gina", goHeavyCV)

	if resp := apply(t, app.Router, "gina", strongOffer); resp.Code != http.StatusCreated {
		t.Fatalf("apply strong: %d", resp.Code)
	}
	if resp := apply(t, app.Router, "gina", weakOffer); resp.Code != http.StatusCreated {
		t.Fatalf("apply weak: %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/candidate/stats", nil)
	req.Header.Set("X-Guest-Id", "gina")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var stats struct {
		Total          int     `json:"total"`
		Pending        int     `json:"pending"`
		Rejected       int     `json:"rejected"`
		AverageCVScore float64 `json:"averageCvScore"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Total != 2 || stats.Pending != 1 || stats.Rejected != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	// Scores 90 and 15 average to 52.5.
	if stats.AverageCVScore != 52.5 {
		t.Fatalf("unexpected average cv score: %v", stats.AverageCVScore)
	}
}

func TestRecruiterListsApplicationsForOffer(t *testing.T) {
	app := buildApp(t)
	offerID := createOffer(t, app.Router, "Backend Engineer", backendSkills)
	seedCV(t, app, "henry", goHeavyCV)
	if resp := apply(t, app.Router, "henry", offerID); resp.Code != http.StatusCreated {
		t.Fatalf("apply: %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/job-offers/"+offerID+"/applications", nil)
	req.Header.Set("X-Guest-Id", "recruiter-1")
	req.Header.Set("X-Guest-Role", "RECRUITER")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var list []struct {
		CandidateID string `json:"candidateId"`
		Status      string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].CandidateID != "guest:henry" {
		t.Fatalf("unexpected list: %+v", list)
	}

	// Candidates must not see the recruiter view.
	reqCand := httptest.NewRequest(http.MethodGet, "/api/v1/job-offers/"+offerID+"/applications", nil)
	reqCand.Header.Set("X-Guest-Id", "henry")
	respCand := httptest.NewRecorder()
	app.Router.ServeHTTP(respCand, reqCand)
	if respCand.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for candidate, got %d", respCand.Code)
	}
}
