package app

import (
	"github.com/gin-gonic/gin"

	"github.com/okulpusula/pusula-backend/internal/http"
	httpH "github.com/okulpusula/pusula-backend/internal/http/handlers"
	httpMW "github.com/okulpusula/pusula-backend/internal/http/middleware"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health      *httpH.HealthHandler
	Auth        *httpH.AuthHandler
	Student     *httpH.StudentHandler
	Observation *httpH.ObservationHandler
	Scores      *httpH.ScoresHandler
	Quality     *httpH.QualityHandler
	Identity    *httpH.IdentityHandler
	Suggestion  *httpH.SuggestionHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Auth:        httpH.NewAuthHandler(services.Auth),
		Student:     httpH.NewStudentHandler(services.Student),
		Observation: httpH.NewObservationHandler(services.Fusion),
		Scores:      httpH.NewScoresHandler(services.Scoring),
		Quality:     httpH.NewQualityHandler(services.Quality),
		Identity:    httpH.NewIdentityHandler(services.Identity),
		Suggestion:  httpH.NewSuggestionHandler(services.Suggestion),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(services.Auth),
	}
}

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:                log,
		HealthHandler:      handlers.Health,
		AuthHandler:        handlers.Auth,
		AuthMiddleware:     middleware.Auth,
		StudentHandler:     handlers.Student,
		ObservationHandler: handlers.Observation,
		ScoresHandler:      handlers.Scores,
		QualityHandler:     handlers.Quality,
		IdentityHandler:    handlers.Identity,
		SuggestionHandler:  handlers.Suggestion,
	})
}
