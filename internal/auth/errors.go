package auth

import "errors"

var (
	// ErrAccessDenied means the Google account signed in fine but has no
	// client folder mapped, so it is not a customer of the gallery.
	ErrAccessDenied = errors.New("access denied for unauthorized user")

	ErrInvalidState        = errors.New("invalid state")
	ErrStateExpired        = errors.New("state expired")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionExpired      = errors.New("session expired")
	ErrInvalidSessionToken = errors.New("invalid session token")
)
