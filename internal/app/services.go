package app

import (
	"fmt"

	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
	"github.com/okulpusula/pusula-backend/internal/services"
)

type Services struct {
	Auth    services.AuthService
	Student services.StudentService

	Extraction services.ExtractionService
	Resolver   services.ConflictResolver
	Suggestion services.SuggestionService
	Notifier   services.NotifierService
	Identity   services.IdentityService
	Fusion     services.FusionService

	Scoring services.ScoringService
	Quality services.QualityService
}

func wireServices(log *logger.Logger, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	authService, err := services.NewAuthService(log, repos.Counselors)
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}

	studentService := services.NewStudentService(log, services.StudentDeps{
		Students:  repos.Students,
		Incidents: repos.Incidents,
		Health:    repos.Health,
		Academic:  repos.Academic,
		Social:    repos.Social,
		Talents:   repos.Talents,
		Cache:     clients.Cache,
	})

	extractionService := services.NewExtractionService(log, clients.AI)
	resolver := services.NewConflictResolver(log)
	suggestionService := services.NewSuggestionService(log, repos.Suggestions)
	notifierService := services.NewNotifierService(log, clients.Mail)

	identityService := services.NewIdentityService(log, services.IdentityDeps{
		AI:         clients.AI,
		Students:   repos.Students,
		Health:     repos.Health,
		Academic:   repos.Academic,
		Social:     repos.Social,
		Talents:    repos.Talents,
		Incidents:  repos.Incidents,
		Identities: repos.Identities,
	})

	fusionService := services.NewFusionService(log, services.FusionDeps{
		Extractor: extractionService,
		Resolver:  resolver,
		Suggest:   suggestionService,
		Identity:  identityService,
		Notifier:  notifierService,
		Cache:     clients.Cache,
		Students:  repos.Students,
		Health:    repos.Health,
		Academic:  repos.Academic,
		Social:    repos.Social,
		Talents:   repos.Talents,
		SyncLogs:  repos.SyncLogs,
	})

	scoringService := services.NewScoringService(log, services.ScoringDeps{
		Cache:     clients.Cache,
		Students:  repos.Students,
		Health:    repos.Health,
		Academic:  repos.Academic,
		Social:    repos.Social,
		Talents:   repos.Talents,
		Incidents: repos.Incidents,
		Scores:    repos.Scores,
	})

	qualityService := services.NewQualityService(log, services.QualityDeps{
		Students:  repos.Students,
		Health:    repos.Health,
		Academic:  repos.Academic,
		Social:    repos.Social,
		Talents:   repos.Talents,
		Incidents: repos.Incidents,
	})

	return Services{
		Auth:       authService,
		Student:    studentService,
		Extraction: extractionService,
		Resolver:   resolver,
		Suggestion: suggestionService,
		Notifier:   notifierService,
		Identity:   identityService,
		Fusion:     fusionService,
		Scoring:    scoringService,
		Quality:    qualityService,
	}, nil
}
