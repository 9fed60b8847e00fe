package photo

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type rotateRequest struct {
	FileID string `json:"fileId"`
}

// Handler handles HTTP requests for photo operations
type Handler struct {
	service *Service
}

// NewHandler creates a new photo handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers photo routes with the authenticated API group
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/rotate-photo", h.RotatePhoto)
}

// RotatePhoto handles POST /api/rotate-photo
func (h *Handler) RotatePhoto(c echo.Context) error {
	var req rotateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	if req.FileID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "File ID is required",
		})
	}

	if err := h.service.Rotate(c.Request().Context(), req.FileID); err != nil {
		c.Logger().Errorf("Failed to rotate photo %s: %v", req.FileID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to rotate photo",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Photo rotated successfully",
	})
}
