package tests

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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
	rg.GET("/applications/:id/test", h.fetch)
	rg.POST("/applications/:id/test", h.submit)
}

func (h *Handler) fetch(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	applicationID := c.Param("id")

	view, err := h.Svc.Fetch(c.Request.Context(), applicationID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Set("applicationId", applicationID)
	c.Set("testId", view.TestID)
	respond.JSON(c, http.StatusOK, view)
}

type submitRequest struct {
	Answers []int `json:"answers"`
}

func (h *Handler) submit(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	applicationID := c.Param("id")

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Submit(c.Request.Context(), applicationID, userID, req.Answers)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Set("applicationId", applicationID)
	c.Set("testId", result.TestID)
	c.Set("statusTransition", "PENDING->"+result.ApplicationStatus)
	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "test not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "not your test", nil)
	case errors.Is(err, ErrAlreadyCompleted):
		respond.Error(c, http.StatusConflict, "already_completed", "test has already been submitted", nil)
	case errors.Is(err, ErrInvalidAnswers):
		respond.Error(c, http.StatusBadRequest, "validation_error", "more answers than questions", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process test", nil)
	}
}
