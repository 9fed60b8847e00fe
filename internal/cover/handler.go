package cover

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for cover assignment
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers cover routes on the authenticated API group
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/set-cover", h.handleSetCover)
}

type setCoverRequest struct {
	FileID   string `json:"fileId"`
	FolderID string `json:"folderId"`
}

// handleSetCover handles POST /api/set-cover
func (h *Handler) handleSetCover(c echo.Context) error {
	var req setCoverRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if req.FileID == "" || req.FolderID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "File ID and Folder ID are required",
		})
	}

	newName, err := h.service.SetCover(c.Request().Context(), req.FolderID, req.FileID)
	if err != nil {
		h.service.logger.Error("failed to set cover", "album", req.FolderID, "file", req.FileID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to set cover",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"newName": newName,
	})
}
