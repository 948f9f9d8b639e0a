package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/okulpusula/pusula-backend/internal/http/handlers"
	httpMW "github.com/okulpusula/pusula-backend/internal/http/middleware"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	StudentHandler     *httpH.StudentHandler
	ObservationHandler *httpH.ObservationHandler
	ScoresHandler      *httpH.ScoresHandler
	QualityHandler     *httpH.QualityHandler
	IdentityHandler    *httpH.IdentityHandler
	SuggestionHandler  *httpH.SuggestionHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware("pusula-backend"))
	r.Use(httpMW.CORS())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.Healthcheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Students
		if cfg.StudentHandler != nil {
			protected.POST("/students", cfg.StudentHandler.Create)
			protected.GET("/students/:id", cfg.StudentHandler.Get)
			protected.DELETE("/students/:id", cfg.StudentHandler.Delete)
			protected.POST("/students/:id/incidents", cfg.StudentHandler.AddIncident)
			protected.GET("/students/:id/incidents", cfg.StudentHandler.ListIncidents)
		}

		// Observations (profile fusion)
		if cfg.ObservationHandler != nil {
			protected.POST("/students/:id/observations", cfg.ObservationHandler.Process)
			protected.GET("/students/:id/sync-logs", cfg.ObservationHandler.ListSyncLogs)
		}

		// Scores
		if cfg.ScoresHandler != nil {
			protected.GET("/students/:id/scores", cfg.ScoresHandler.Get)
			protected.POST("/students/:id/scores", cfg.ScoresHandler.Save)
			protected.GET("/students/:id/completeness", cfg.ScoresHandler.Completeness)
			protected.POST("/students/compare", cfg.ScoresHandler.Compare)
		}

		// Quality reports
		if cfg.QualityHandler != nil {
			protected.GET("/students/:id/quality", cfg.QualityHandler.Report)
		}

		// Unified identity
		if cfg.IdentityHandler != nil {
			protected.GET("/students/:id/identity", cfg.IdentityHandler.Get)
			protected.POST("/students/:id/identity/refresh", cfg.IdentityHandler.Refresh)
		}

		// Suggestions
		if cfg.SuggestionHandler != nil {
			protected.GET("/students/:id/suggestions", cfg.SuggestionHandler.ListPending)
			protected.POST("/suggestions/:suggestionID/review", cfg.SuggestionHandler.Review)
		}
	}

	return r
}
