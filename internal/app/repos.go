package app

import (
	"gorm.io/gorm"

	"github.com/okulpusula/pusula-backend/internal/data/repos"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

type Repos struct {
	Students   repos.StudentRepo
	Incidents  repos.BehaviorIncidentRepo
	Counselors repos.CounselorRepo

	Health   repos.HealthProfileRepo
	Academic repos.AcademicProfileRepo
	Social   repos.SocialEmotionalProfileRepo
	Talents  repos.TalentsInterestsProfileRepo

	SyncLogs    repos.SyncLogRepo
	Suggestions repos.SuggestionRepo
	Scores      repos.UnifiedScoreRepo
	Identities  repos.IdentityRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Students:    repos.NewStudentRepo(db, log),
		Incidents:   repos.NewBehaviorIncidentRepo(db, log),
		Counselors:  repos.NewCounselorRepo(db, log),
		Health:      repos.NewHealthProfileRepo(db, log),
		Academic:    repos.NewAcademicProfileRepo(db, log),
		Social:      repos.NewSocialEmotionalProfileRepo(db, log),
		Talents:     repos.NewTalentsInterestsProfileRepo(db, log),
		SyncLogs:    repos.NewSyncLogRepo(db, log),
		Suggestions: repos.NewSuggestionRepo(db, log),
		Scores:      repos.NewUnifiedScoreRepo(db, log),
		Identities:  repos.NewIdentityRepo(db, log),
	}
}
