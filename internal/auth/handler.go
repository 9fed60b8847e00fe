package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler handles authentication-related HTTP requests
type Handler struct {
	authService *Service
	frontendURL string
}

// NewHandler creates a new Handler instance
func NewHandler(authService *Service, frontendURL string) *Handler {
	return &Handler{
		authService: authService,
		frontendURL: frontendURL,
	}
}

// RegisterRoutes registers authentication routes with the Echo instance
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/auth/google/login", h.handleLogin)
	e.GET("/auth/google/callback", h.handleCallback)
	e.GET("/auth/session", h.handleValidateSession)
	e.DELETE("/auth/signout", h.handleSignOut)
	e.GET("/health", h.handleHealth)
}

// handleLogin redirects the browser to the Google consent screen.
func (h *Handler) handleLogin(c echo.Context) error {
	authURL, err := h.authService.InitiateOAuth()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "could not start sign-in flow",
		})
	}

	return c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// handleCallback processes the OAuth callback from Google.
func (h *Handler) handleCallback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")
	errorParam := c.QueryParam("error")

	// OAuth errors go back to the frontend, not to the API caller
	if errorParam != "" {
		return c.Redirect(http.StatusTemporaryRedirect,
			h.frontendURL+"/?error="+errorParam)
	}

	if code == "" || state == "" {
		return c.Redirect(http.StatusTemporaryRedirect,
			h.frontendURL+"/?error=missing_code")
	}

	_, cookieToken, err := h.authService.HandleCallback(c.Request().Context(), code, state)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return c.Redirect(http.StatusTemporaryRedirect,
				h.frontendURL+"/?error=access_denied")
		}
		return c.Redirect(http.StatusTemporaryRedirect,
			h.frontendURL+"/?error=auth_failed")
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    cookieToken,
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/dashboard")
}

// handleValidateSession checks if the caller holds a live session.
func (h *Handler) handleValidateSession(c echo.Context) error {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"valid":         false,
			"requires_auth": true,
		})
	}

	session, err := h.authService.ValidateSessionToken(cookie.Value)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"valid":         false,
			"requires_auth": true,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid": true,
		"email": session.Email,
	})
}

// handleSignOut drops the session and clears the cookie.
func (h *Handler) handleSignOut(c echo.Context) error {
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		h.authService.SignOut(cookie.Value)
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Successfully signed out",
	})
}

// handleHealth returns the health status of the backend service
func (h *Handler) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"sessions":  h.authService.SessionCount(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
