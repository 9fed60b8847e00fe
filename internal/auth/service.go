package auth

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/programista-nautil/galeria-app/pkg/models"
)

// Service handles the Google sign-in flow and the session lifecycle. Signing
// in only establishes who the user is; all Drive traffic runs through the
// shared service-account client.
type Service struct {
	store      *MemoryStore
	oauth      *oauth2.Config
	authorizer Authorizer
	secret     []byte
	logger     *log.Logger

	// userinfoEndpoint overrides the Google userinfo endpoint in tests.
	userinfoEndpoint string
}

func NewService(oauthCfg *oauth2.Config, authorizer Authorizer, sessionSecret string) *Service {
	return &Service{
		store:      NewMemoryStore(),
		oauth:      oauthCfg,
		authorizer: authorizer,
		secret:     []byte(sessionSecret),
		logger:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "auth"}),
	}
}

// InitiateOAuth starts the sign-in flow, returning the Google consent URL.
func (s *Service) InitiateOAuth() (string, error) {
	oauthState, err := s.store.GenerateState()
	if err != nil {
		return "", err
	}

	return s.oauth.AuthCodeURL(oauthState.State), nil
}

// HandleCallback processes the OAuth callback: it validates the CSRF state,
// exchanges the code, resolves the account's email and, when the email maps
// to a client folder, opens a session. The returned string is the signed
// session cookie value.
func (s *Service) HandleCallback(ctx context.Context, code, state string) (*models.UserSession, string, error) {
	if _, err := s.store.ValidateState(state); err != nil {
		return nil, "", err
	}
	defer s.store.DeleteState(state)

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("token exchange failed: %w", err)
	}

	email, err := s.fetchEmail(ctx, token)
	if err != nil {
		return nil, "", fmt.Errorf("could not resolve user identity: %w", err)
	}

	if !s.authorizer.Authorized(email) {
		s.logger.Warn("access denied for unauthorized user", "email", email)
		return nil, "", ErrAccessDenied
	}

	session := &models.UserSession{
		SessionID: uuid.NewString(),
		Email:     email,
	}
	s.store.StoreSession(session)

	cookieToken, err := signSessionToken(s.secret, session.SessionID, email)
	if err != nil {
		return nil, "", fmt.Errorf("could not sign session token: %w", err)
	}

	s.logger.Info("user signed in", "email", email)
	return session, cookieToken, nil
}

// fetchEmail asks the Google userinfo endpoint who the token belongs to.
func (s *Service) fetchEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	opts := []option.ClientOption{option.WithHTTPClient(s.oauth.Client(ctx, token))}
	if s.userinfoEndpoint != "" {
		opts = append(opts, option.WithEndpoint(s.userinfoEndpoint))
	}

	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return "", err
	}

	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		return "", err
	}
	if info.Email == "" {
		return "", fmt.Errorf("userinfo response carried no email")
	}
	return info.Email, nil
}

// ValidateSessionToken resolves the cookie value to a live session.
func (s *Service) ValidateSessionToken(tokenString string) (*models.UserSession, error) {
	sessionID, err := parseSessionToken(s.secret, tokenString)
	if err != nil {
		return nil, err
	}
	return s.store.GetSession(sessionID)
}

// SignOut drops the session named by the cookie value. A stale or invalid
// cookie is not an error; there is just nothing to do.
func (s *Service) SignOut(tokenString string) {
	sessionID, err := parseSessionToken(s.secret, tokenString)
	if err != nil {
		return
	}
	s.store.DeleteSession(sessionID)
}

// SessionCount reports the number of live sessions, for the health endpoint.
func (s *Service) SessionCount() int {
	return s.store.SessionCount()
}
