package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/org-user-api/internal/errors"
	"github.com/yukikurage/org-user-api/internal/services"
	"go.uber.org/zap"
)

const (
	ContextKeyEmail     = "email"
	ContextKeyRequestID = "request_id"
)

// RequireAuth checks the bearer token and stores its email in the context
func RequireAuth(authService *services.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := authService.VerifyToken(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			logger.Info("authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))

			message := "Could not validate credentials"
			if errors.Is(err, services.ErrMissingToken) {
				message = "Authentication required"
			}
			apierrors.Unauthorized(c, message)
			c.Abort()
			return
		}

		c.Set(ContextKeyEmail, email)
		c.Next()
	}
}

// GetEmail retrieves the authenticated email from context
func GetEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(ContextKeyEmail)
	if !exists {
		return "", false
	}

	s, ok := email.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
