package candidates

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/candidate/cv", h.upload)
	rg.GET("/candidate/cv", h.current)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	cv, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "file name is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store cv", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(cv))
}

func (h *Handler) current(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	cv, err := h.Svc.Current(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no cv uploaded", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch cv", nil)
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(cv))
}

func toResponse(cv CV) gin.H {
	return gin.H{
		"id":         cv.ID,
		"fileName":   cv.FileName,
		"mimeType":   cv.MimeType,
		"sizeBytes":  cv.SizeBytes,
		"hasText":    cv.ExtractedText != "",
		"uploadedAt": cv.UpdatedAt,
	}
}
