package mail

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the public contact form
type Handler struct {
	service *Service
}

// NewHandler creates a new mail handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the contact form route. The form sits on the
// public pricing page, so it is not behind the session middleware.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/sendmail", h.SendMail)
}

// SendMail handles POST /api/sendmail
func (h *Handler) SendMail(c echo.Context) error {
	var form ContactForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if !form.Consent {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Brak zgody na przetwarzanie danych.",
		})
	}
	if form.Name == "" || form.Email == "" || form.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Name, email and message are required",
		})
	}

	if err := h.service.Send(c.Request().Context(), form); err != nil {
		c.Logger().Errorf("Failed to send contact mail: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Nie udało się wysłać wiadomości.",
		})
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
