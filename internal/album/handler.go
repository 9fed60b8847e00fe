package album

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/programista-nautil/galeria-app/internal/auth"
)

// Handler handles HTTP requests for album operations
type Handler struct {
	service *Service
}

// NewHandler creates a new album handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers album routes with the authenticated API group
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/albums", h.GetAlbums)
	g.GET("/photos", h.GetPhotos)
	g.POST("/create-album", h.CreateAlbum)
	g.GET("/stream/:fileId", h.StreamFile)
}

// GetAlbums handles GET /api/albums
func (h *Handler) GetAlbums(c echo.Context) error {
	email := auth.SessionEmail(c)

	albums, err := h.service.Albums(c.Request().Context(), email)
	if err != nil {
		c.Logger().Errorf("Failed to fetch albums for %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch albums",
		})
	}

	return c.JSON(http.StatusOK, albums)
}

// GetPhotos handles GET /api/photos
func (h *Handler) GetPhotos(c echo.Context) error {
	folderID := c.QueryParam("folderId")
	if folderID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "folderId query parameter is required",
		})
	}

	photos, err := h.service.Photos(c.Request().Context(), folderID)
	if err != nil {
		c.Logger().Errorf("Failed to fetch photos for folder %s: %v", folderID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch photos",
		})
	}

	return c.JSON(http.StatusOK, photos)
}

// CreateAlbum handles POST /api/create-album (multipart form: title, photos[])
func (h *Handler) CreateAlbum(c echo.Context) error {
	title := c.FormValue("title")

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid multipart form",
		})
	}
	files := form.File["photos"]

	if title == "" || len(files) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Title and photos are required",
		})
	}

	uploads := make([]Upload, 0, len(files))
	for _, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Could not read uploaded file " + fileHeader.Filename,
			})
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Could not read uploaded file " + fileHeader.Filename,
			})
		}

		uploads = append(uploads, Upload{
			Name:     fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Content:  content,
		})
	}

	albumID, err := h.service.CreateAlbum(c.Request().Context(), auth.SessionEmail(c), title, uploads)
	if err != nil {
		c.Logger().Errorf("Failed to create album '%s': %v", title, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create album",
		})
	}

	return c.JSON(http.StatusOK, CreateAlbumResponse{
		Success:            true,
		AlbumID:            albumID,
		UploadedFilesCount: len(uploads),
	})
}

// StreamFile handles GET /api/stream/:fileId
// It pipes the file's bytes straight through with the upstream content type.
func (h *Handler) StreamFile(c echo.Context) error {
	fileID := c.Param("fileId")
	if fileID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "File ID is required",
		})
	}

	body, contentType, err := h.service.Stream(c.Request().Context(), fileID)
	if err != nil {
		c.Logger().Errorf("Failed to stream file %s: %v", fileID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Error streaming file",
		})
	}
	defer body.Close()

	return c.Stream(http.StatusOK, contentType, body)
}
