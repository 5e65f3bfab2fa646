package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-user-api/internal/middleware"
	"go.uber.org/zap"
)

// RouterConfig collects the handlers and options wired into the HTTP router.
type RouterConfig struct {
	Health           *HealthHandler
	Auth             *AuthHandler
	Organization     *OrganizationHandler
	User             *UserHandler
	UserOrganization *UserOrganizationHandler

	// RequireAuth guards routes that need a verified token.
	RequireAuth gin.HandlerFunc
	// AuthRequired applies RequireAuth to every /api route.
	AuthRequired bool
	CORSOrigins  []string
	Logger       *zap.Logger
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(cfg.Logger))

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", cfg.Health.Check)

	api := r.Group("/api")
	if cfg.AuthRequired {
		api.Use(cfg.RequireAuth)
	}

	// These routes need a caller identity whatever AuthRequired says.
	authenticated := api.Group("")
	if !cfg.AuthRequired {
		authenticated.Use(cfg.RequireAuth)
	}
	{
		authenticated.GET("/auth/me", cfg.Auth.GetCurrentUser)
		authenticated.PUT("/auth/me", cfg.Auth.UpdateCurrentUser)
		authenticated.GET("/user_organization", cfg.UserOrganization.ListMine)
	}

	orgs := api.Group("/organization")
	{
		orgs.POST("", cfg.Organization.CreateOrganization)
		orgs.GET("", cfg.Organization.ListOrganizations)
		orgs.GET("/:id", cfg.Organization.GetOrganization)
		orgs.PUT("/:id", cfg.Organization.UpdateOrganization)
		orgs.DELETE("/:id", cfg.Organization.DeleteOrganization)
	}

	users := api.Group("/user")
	{
		users.POST("", cfg.User.CreateUser)
		users.GET("", cfg.User.ListUsers)
		users.DELETE("/:cognito_user_id", cfg.User.DeleteUser)
	}

	return r
}
