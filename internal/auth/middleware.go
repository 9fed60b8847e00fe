package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie the signed session token travels in.
const SessionCookieName = "galeria_session"

// emailContextKey is where the middleware stashes the signed-in user's email.
const emailContextKey = "user_email"

// RequireSession gates a route group behind a valid session cookie.
// Unauthenticated calls get a 401 and never reach the handler.
func RequireSession(service *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Unauthorized",
				})
			}

			session, err := service.ValidateSessionToken(cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Unauthorized",
				})
			}

			c.Set(emailContextKey, session.Email)
			return next(c)
		}
	}
}

// SessionEmail returns the signed-in user's email placed by RequireSession.
func SessionEmail(c echo.Context) string {
	email, _ := c.Get(emailContextKey).(string)
	return email
}
