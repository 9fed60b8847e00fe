package compress

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/programista-nautil/galeria-app/internal/auth"
)

// Handler handles HTTP requests for the compression endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers compression routes on the authenticated API group
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/compress-photo", h.handleCompressPhoto)
	g.GET("/uncompressed-photos", h.handleUncompressedPhotos)
	g.POST("/admin/bulk-compress", h.handleBulkCompress)
	g.GET("/compress-status/:jobId", h.handleJobStatus)
}

type compressPhotoRequest struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
}

// handleCompressPhoto handles POST /api/compress-photo
func (h *Handler) handleCompressPhoto(c echo.Context) error {
	var req compressPhotoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if req.FileID == "" || req.FileName == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "File ID and File Name are required",
		})
	}

	newName, err := h.service.CompressFile(c.Request().Context(), req.FileID, req.FileName)
	if err != nil {
		h.service.logger.Error("failed to compress photo", "file", req.FileID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("Failed to compress photo %s", req.FileID),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"fileId":  req.FileID,
		"newName": newName,
	})
}

// handleUncompressedPhotos handles GET /api/uncompressed-photos?folderId=
func (h *Handler) handleUncompressedPhotos(c echo.Context) error {
	folderID := c.QueryParam("folderId")
	if folderID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Folder ID is required",
		})
	}

	photos, err := h.service.ListUncompressed(c.Request().Context(), folderID)
	if err != nil {
		h.service.logger.Error("failed to list uncompressed photos", "album", folderID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get photo list",
		})
	}

	type photoItem struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	items := make([]photoItem, 0, len(photos))
	for _, p := range photos {
		items = append(items, photoItem{ID: p.ID, Name: p.Name})
	}

	return c.JSON(http.StatusOK, items)
}

// handleBulkCompress handles POST /api/admin/bulk-compress. The response
// means "queued", not "done"; progress is polled per job.
func (h *Handler) handleBulkCompress(c echo.Context) error {
	email := auth.SessionEmail(c)

	jobIDs, err := h.service.BulkCompress(c.Request().Context(), email)
	if err != nil {
		h.service.logger.Error("failed to start bulk compression", "email", email, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}

	if len(jobIDs) == 0 {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "No albums to process for this client.",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Queued background compression for %d albums.", len(jobIDs)),
		"jobIds":  jobIDs,
	})
}

// handleJobStatus handles GET /api/compress-status/:jobId
func (h *Handler) handleJobStatus(c echo.Context) error {
	jobID := c.Param("jobId")

	status, exists := h.service.JobStatus(jobID)
	if !exists {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "job not found",
		})
	}

	return c.JSON(http.StatusOK, status)
}
