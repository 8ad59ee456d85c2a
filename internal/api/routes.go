package api

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/haikalvidya/lmnr/internal/api/handlers"
	"github.com/haikalvidya/lmnr/internal/api/middleware"
	"github.com/haikalvidya/lmnr/internal/config"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Health     *handlers.HealthHandler
	Evaluation *handlers.EvaluationHandler
	Score      *handlers.ScoreHandler
}

// SetupRouter configures the Gin router with all routes and middleware
func SetupRouter(h *Handlers, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.ErrorHandler())

	corsOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if cfg.IsProduction() {
		corsOrigins = []string{os.Getenv("CORS_ALLOWED_ORIGINS")}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:  corsOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Project-ID", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	// Health check endpoints
	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)

	// API v1 - every route is scoped to a project
	v1 := r.Group("/v1")
	v1.Use(middleware.ProjectContext())
	{
		evaluations := v1.Group("/evaluations")
		{
			evaluations.POST("", h.Evaluation.Create)
			evaluations.GET("", h.Evaluation.List)
			evaluations.GET("/:id", h.Evaluation.Get)

			// Score ingestion and per-evaluation aggregates
			evaluations.POST("/:id/scores", h.Score.Ingest)
			evaluations.GET("/:id/scores/average", h.Score.Average)
			evaluations.GET("/:id/scores/buckets", h.Score.Buckets)
		}

		// Cross-evaluation aggregates
		scores := v1.Group("/scores")
		{
			scores.GET("/bounds", h.Score.Bounds)
			scores.GET("/compare", h.Score.Compare)
		}
	}

	return r
}
