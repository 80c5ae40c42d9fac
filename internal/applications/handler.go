package applications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/joboffers"
	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/job-offers/:id/apply", h.apply)
	rg.GET("/job-offers/:id/applications", middleware.RequireRole(middleware.RoleRecruiter, middleware.RoleCEO), h.listForOffer)
	rg.GET("/applications", h.listMine)
	rg.GET("/applications/:id", h.get)
	rg.GET("/candidate/stats", h.stats)
}

func (h *Handler) apply(c *gin.Context) {
	candidateID := middleware.UserIDFromContext(c)
	jobOfferID := c.Param("id")

	result, err := h.Svc.Submit(c.Request.Context(), candidateID, jobOfferID)
	if err != nil {
		switch {
		case errors.Is(err, joboffers.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job offer not found", nil)
		case errors.Is(err, ErrJobInactive):
			respond.Error(c, http.StatusConflict, "job_inactive", "job offer is not accepting applications", nil)
		case errors.Is(err, ErrDeadlinePassed):
			respond.Error(c, http.StatusConflict, "deadline_passed", "job offer deadline has passed", nil)
		case errors.Is(err, ErrNoCV):
			respond.Error(c, http.StatusPreconditionFailed, "cv_required", "upload a cv before applying", nil)
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "already_applied", "you already applied to this job offer", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit application", nil)
		}
		return
	}

	c.Set("applicationId", result.Application.ID)
	c.Set("statusTransition", "->"+result.Application.Status)

	resp := toResponse(result.Application)
	resp.TestReady = result.TestReady
	respond.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) get(c *gin.Context) {
	candidateID := middleware.UserIDFromContext(c)

	app, err := h.Svc.Get(c.Request.Context(), c.Param("id"), candidateID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "not your application", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch application", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(app))
}

func (h *Handler) listMine(c *gin.Context) {
	candidateID := middleware.UserIDFromContext(c)
	apps, err := h.Svc.ListMine(c.Request.Context(), candidateID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponses(apps))
}

func (h *Handler) listForOffer(c *gin.Context) {
	apps, err := h.Svc.ListForOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	out := make([]gin.H, 0, len(apps))
	for _, app := range apps {
		out = append(out, gin.H{
			"id":          app.ID,
			"candidateId": app.CandidateID,
			"status":      app.Status,
			"cvScore":     app.CVScore,
			"createdAt":   app.CreatedAt,
		})
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) stats(c *gin.Context) {
	candidateID := middleware.UserIDFromContext(c)
	stats, err := h.Svc.StatsFor(c.Request.Context(), candidateID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute stats", nil)
		return
	}
	respond.JSON(c, http.StatusOK, stats)
}

func toResponses(apps []Application) []Response {
	out := make([]Response, 0, len(apps))
	for _, app := range apps {
		out = append(out, toResponse(app))
	}
	return out
}
