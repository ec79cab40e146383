package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omnia28/task-manager-api/internal/config"
	"github.com/omnia28/task-manager-api/internal/http/handlers"
	"github.com/omnia28/task-manager-api/internal/http/middleware"
	"github.com/omnia28/task-manager-api/internal/logger"
	"github.com/omnia28/task-manager-api/internal/schemas"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, version string, cfg *config.Config) {
	if err := schemas.RegisterValidators(); err != nil {
		logger.Fatal("failed to register validators", "error", err)
	}

	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db, version)

	// API info and health checks (no rate limiting)
	r.GET("/", h.Root)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	rateWindow := time.Duration(cfg.APIRateWindow) * time.Second

	// Task CRUD
	tasks := r.Group("/tasks")
	tasks.Use(middleware.RateLimit(cfg.APIRateLimit, rateWindow))
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/status/:status", h.ListTasksByStatus)
		tasks.GET("/priority/:priority", h.ListTasksByPriority)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
	}
}
