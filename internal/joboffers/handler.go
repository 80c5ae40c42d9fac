package joboffers

import (
	"errors"
	"net/http"
	"time"

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
	rg.POST("/job-offers", middleware.RequireRole(middleware.RoleRecruiter, middleware.RoleCEO), h.create)
	rg.GET("/job-offers", h.list)
	rg.GET("/job-offers/:id", h.get)
	rg.PATCH("/job-offers/:id", middleware.RequireRole(middleware.RoleRecruiter, middleware.RoleCEO), h.update)
	rg.DELETE("/job-offers/:id", middleware.RequireRole(middleware.RoleRecruiter, middleware.RoleCEO), h.close)
}

type createRequest struct {
	CompanyID   string   `json:"companyId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Deadline    string   `json:"deadline"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	var deadline *time.Time
	if req.Deadline != "" {
		parsed, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "deadline must be RFC3339", nil)
			return
		}
		deadline = &parsed
	}

	recruiterID := middleware.UserIDFromContext(c)
	offer, err := h.Svc.Create(c.Request.Context(), recruiterID, CreateInput{
		CompanyID:   req.CompanyID,
		Title:       req.Title,
		Description: req.Description,
		Skills:      req.Skills,
		Deadline:    deadline,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "title and description are required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create job offer", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(offer))
}

func (h *Handler) get(c *gin.Context) {
	offer, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job offer not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "job offer id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch job offer", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(offer))
}

func (h *Handler) list(c *gin.Context) {
	activeOnly := c.Query("all") == ""
	offers, err := h.Svc.List(c.Request.Context(), activeOnly)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list job offers", nil)
		return
	}
	resp := make([]gin.H, 0, len(offers))
	for _, offer := range offers {
		resp = append(resp, toResponse(offer))
	}
	respond.JSON(c, http.StatusOK, resp)
}

type updateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Skills      *[]string `json:"skills"`
	Deadline    *string   `json:"deadline"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	in := UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Skills:      req.Skills,
	}
	if req.Deadline != nil {
		parsed, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "deadline must be RFC3339", nil)
			return
		}
		in.Deadline = &parsed
	}

	offer, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job offer not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "title and description must not be empty", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update job offer", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(offer))
}

func (h *Handler) close(c *gin.Context) {
	if err := h.Svc.Close(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job offer not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to close job offer", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"status": "closed"})
}

func toResponse(offer JobOffer) gin.H {
	resp := gin.H{
		"id":          offer.ID,
		"companyId":   offer.CompanyID,
		"recruiterId": offer.RecruiterID,
		"title":       offer.Title,
		"description": offer.Description,
		"skills":      offer.Skills,
		"isActive":    offer.IsActive,
		"createdAt":   offer.CreatedAt,
	}
	if offer.Deadline != nil {
		resp["deadline"] = offer.Deadline
	}
	return resp
}
