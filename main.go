package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/programista-nautil/galeria-app/internal/album"
	"github.com/programista-nautil/galeria-app/internal/auth"
	"github.com/programista-nautil/galeria-app/internal/compress"
	"github.com/programista-nautil/galeria-app/internal/config"
	"github.com/programista-nautil/galeria-app/internal/cover"
	"github.com/programista-nautil/galeria-app/internal/drive"
	"github.com/programista-nautil/galeria-app/internal/mail"
	"github.com/programista-nautil/galeria-app/internal/middleware"
	"github.com/programista-nautil/galeria-app/internal/photo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	e := echo.New()
	if err := initialize(e, cfg); err != nil {
		log.Fatalf("Initialization error: %v", err)
	}

	log.Printf("Starting gallery server on :%s", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, e))
}

func initialize(e *echo.Echo, cfg *config.Config) error {
	driveClient, err := drive.NewClient(context.Background(),
		cfg.Google.CredentialsFile, cfg.Google.ImpersonateSubject)
	if err != nil {
		return err
	}
	resolver := drive.NewResolver(driveClient, cfg.Google.RootFolderName, cfg.Auth.ClientFolders)

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
	authService := auth.NewService(oauthCfg, resolver, cfg.Auth.SessionSecret)
	authHandler := auth.NewHandler(authService, cfg.Server.FrontendURL)
	authHandler.RegisterRoutes(e)

	dialer, err := mail.NewDialer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort,
		cfg.Mail.SMTPEmail, cfg.Mail.SMTPPassword)
	if err != nil {
		return err
	}
	mailHandler := mail.NewHandler(mail.NewService(dialer, cfg.Mail.SMTPEmail))
	mailHandler.RegisterRoutes(e)

	// Everything else sits behind the session cookie.
	api := e.Group("/api", auth.RequireSession(authService))

	coverService := cover.NewService(driveClient)
	cover.NewHandler(coverService).RegisterRoutes(api)

	compressService := compress.NewService(driveClient, resolver)
	compress.NewHandler(compressService).RegisterRoutes(api)

	albumService := album.NewService(driveClient, resolver, coverService, compressService)
	album.NewHandler(albumService).RegisterRoutes(api)

	photoService := photo.NewService(driveClient)
	photo.NewHandler(photoService).RegisterRoutes(api)

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.SecurityHeaders(cfg.Server.FrontendURL))
	e.Use(middleware.CORSConfig(cfg.Server.FrontendURL))

	return nil
}
