package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-user-api/internal/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewHealthHandler(db *gorm.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Check reports whether the database answers
func (h *HealthHandler) Check(c *gin.Context) {
	if err := database.Ping(h.db.WithContext(c.Request.Context())); err != nil {
		h.logger.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"status": "unhealthy",
			"detail": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
