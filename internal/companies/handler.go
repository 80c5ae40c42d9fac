package companies

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
	rg.POST("/companies", middleware.RequireRole(middleware.RoleCEO), h.create)
	rg.GET("/companies", h.list)
	rg.GET("/companies/:id", h.get)
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ownerID := middleware.UserIDFromContext(c)
	company, err := h.Svc.Create(c.Request.Context(), ownerID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create company", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(company))
}

func (h *Handler) get(c *gin.Context) {
	company, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "company not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "company id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch company", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(company))
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list companies", nil)
		return
	}
	resp := make([]gin.H, 0, len(all))
	for _, company := range all {
		resp = append(resp, toResponse(company))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func toResponse(company Company) gin.H {
	return gin.H{
		"id":          company.ID,
		"name":        company.Name,
		"description": company.Description,
		"ownerId":     company.OwnerID,
		"createdAt":   company.CreatedAt,
	}
}
