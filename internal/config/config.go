package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Google GoogleConfig
	Auth   AuthConfig
	Mail   MailConfig
}

type ServerConfig struct {
	Port        string
	FrontendURL string
}

type GoogleConfig struct {
	// CredentialsFile points at the service-account key used for the shared
	// gallery drive. The account needs domain-wide delegation so it can act
	// as the gallery owner given by ImpersonateSubject.
	CredentialsFile    string
	ImpersonateSubject string
	RootFolderName     string

	// OAuth client used for the end-user sign-in flow.
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type AuthConfig struct {
	SessionSecret string
	// ClientFolders maps an authenticated user's email to the name of their
	// namespace folder under the gallery root.
	ClientFolders map[string]string
}

type MailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPEmail    string
	SMTPPassword string
}

// Load reads configuration from the environment, with a .env file picked up
// for local development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		Google: GoogleConfig{
			CredentialsFile:    getEnv("GOOGLE_CREDENTIALS_FILE", "google-credentials.json"),
			ImpersonateSubject: os.Getenv("GOOGLE_IMPERSONATE_SUBJECT"),
			RootFolderName:     getEnv("GALLERY_ROOT_FOLDER", "Galeria Klientów"),
			ClientID:           os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret:       os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:        getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback"),
		},
		Auth: AuthConfig{
			SessionSecret: os.Getenv("SESSION_SECRET"),
		},
		Mail: MailConfig{
			SMTPHost:     os.Getenv("SMTP_HOST"),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
			SMTPEmail:    os.Getenv("SMTP_EMAIL"),
			SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		},
	}

	if cfg.Google.ClientID == "" || cfg.Google.ClientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	}
	if cfg.Auth.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	mapping, err := parseClientFolders(os.Getenv("CLIENT_FOLDER_MAPPING"))
	if err != nil {
		return nil, err
	}
	cfg.Auth.ClientFolders = mapping

	return cfg, nil
}

// parseClientFolders decodes the CLIENT_FOLDER_MAPPING env var, a JSON object
// of the form {"client@example.com": "Client Folder Name"}.
func parseClientFolders(raw string) (map[string]string, error) {
	if raw == "" {
		return map[string]string{}, nil
	}
	mapping := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
		return nil, fmt.Errorf("invalid CLIENT_FOLDER_MAPPING: %v", err)
	}
	return mapping, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
