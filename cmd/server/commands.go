package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-user-api/internal/config"
	"github.com/yukikurage/org-user-api/internal/database"
	"github.com/yukikurage/org-user-api/internal/handlers"
	"github.com/yukikurage/org-user-api/internal/idp"
	"github.com/yukikurage/org-user-api/internal/logger"
	"github.com/yukikurage/org-user-api/internal/middleware"
	"github.com/yukikurage/org-user-api/internal/repository"
	"github.com/yukikurage/org-user-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Globals struct {
	Version string
}

// bootstrap loads configuration and opens the migrated database.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg := config.Load()

	log, err := logger.New(cfg.ServiceEnv)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := database.Migrate(db); err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func newGateway(ctx context.Context, cfg *config.Config, log *zap.Logger) (idp.Gateway, error) {
	if cfg.IsLocal() {
		log.Info("using in-memory identity provider")
		return idp.NewLocalGateway(log), nil
	}

	client, err := idp.NewCognitoClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return idp.NewCognitoGateway(client, cfg.CognitoUserPoolID, cfg.CognitoClientID, cfg.IdPTimeout, log), nil
}

type ServeCmd struct {
	ShutdownTimeout time.Duration `help:"Time allowed for in-flight requests on shutdown." default:"15s"`
}

func (s *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	gin.SetMode(cfg.GinMode)

	gateway, err := newGateway(ctx, cfg, log)
	if err != nil {
		return err
	}

	uow := database.NewUnitOfWork(db)
	orgRepo := repository.NewOrganizationRepository(uow, log)
	userOrgRepo := repository.NewUserOrganizationRepository(uow, log)
	userRepo := repository.NewUserRepository(uow, userOrgRepo, gateway, log)

	orgService := services.NewOrganizationService(orgRepo)
	userService := services.NewUserService(userRepo, orgRepo)
	userOrgService := services.NewUserOrganizationService(userOrgRepo, userRepo)
	keys := services.NewJWKSCache(cfg.CognitoIssuer()+"/.well-known/jwks.json", nil, log)
	authService := services.NewAuthService(keys, cfg.CognitoIssuer(), cfg.CognitoClientID)

	router := handlers.NewRouter(handlers.RouterConfig{
		Health:           handlers.NewHealthHandler(db, log),
		Auth:             handlers.NewAuthHandler(userService, log),
		Organization:     handlers.NewOrganizationHandler(orgService, log),
		User:             handlers.NewUserHandler(userService, log),
		UserOrganization: handlers.NewUserOrganizationHandler(userOrgService, log),
		RequireAuth:      middleware.RequireAuth(authService, log),
		AuthRequired:     cfg.AuthRequired,
		CORSOrigins:      cfg.CORSOrigins,
		Logger:           log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       5 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("version", globals.Version),
			zap.String("env", cfg.ServiceEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type SeedCmd struct {
	CognitoUserID    string `help:"Identity provider id of the seeded user." default:"admin"`
	DisplayName      string `help:"Display name of the seeded user." default:"admin"`
	Email            string `help:"Email of the seeded user." default:"admin@example.com"`
	OrganizationName string `help:"Name of the seeded organization." default:"test"`
}

func (s *SeedCmd) Run(ctx context.Context, globals *Globals) error {
	_, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	return database.Seed(ctx, database.NewUnitOfWork(db), database.SeedInput{
		CognitoUserID:    s.CognitoUserID,
		DisplayName:      s.DisplayName,
		Email:            s.Email,
		OrganizationName: s.OrganizationName,
	}, log)
}
