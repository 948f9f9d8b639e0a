package repos

import (
	"gorm.io/gorm"

	"github.com/okulpusula/pusula-backend/internal/data/repos/auth"
	"github.com/okulpusula/pusula-backend/internal/data/repos/insights"
	"github.com/okulpusula/pusula-backend/internal/data/repos/profiles"
	"github.com/okulpusula/pusula-backend/internal/data/repos/scores"
	"github.com/okulpusula/pusula-backend/internal/data/repos/students"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

type StudentRepo = students.StudentRepo
type BehaviorIncidentRepo = students.BehaviorIncidentRepo
type CounselorRepo = auth.CounselorRepo

type HealthProfileRepo = profiles.HealthProfileRepo
type AcademicProfileRepo = profiles.AcademicProfileRepo
type SocialEmotionalProfileRepo = profiles.SocialEmotionalProfileRepo
type TalentsInterestsProfileRepo = profiles.TalentsInterestsProfileRepo

type SyncLogRepo = insights.SyncLogRepo
type SuggestionRepo = insights.SuggestionRepo

type UnifiedScoreRepo = scores.UnifiedScoreRepo
type IdentityRepo = scores.IdentityRepo

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return students.NewStudentRepo(db, baseLog)
}
func NewBehaviorIncidentRepo(db *gorm.DB, baseLog *logger.Logger) BehaviorIncidentRepo {
	return students.NewBehaviorIncidentRepo(db, baseLog)
}
func NewCounselorRepo(db *gorm.DB, baseLog *logger.Logger) CounselorRepo {
	return auth.NewCounselorRepo(db, baseLog)
}
func NewHealthProfileRepo(db *gorm.DB, baseLog *logger.Logger) HealthProfileRepo {
	return profiles.NewHealthProfileRepo(db, baseLog)
}
func NewAcademicProfileRepo(db *gorm.DB, baseLog *logger.Logger) AcademicProfileRepo {
	return profiles.NewAcademicProfileRepo(db, baseLog)
}
func NewSocialEmotionalProfileRepo(db *gorm.DB, baseLog *logger.Logger) SocialEmotionalProfileRepo {
	return profiles.NewSocialEmotionalProfileRepo(db, baseLog)
}
func NewTalentsInterestsProfileRepo(db *gorm.DB, baseLog *logger.Logger) TalentsInterestsProfileRepo {
	return profiles.NewTalentsInterestsProfileRepo(db, baseLog)
}
func NewSyncLogRepo(db *gorm.DB, baseLog *logger.Logger) SyncLogRepo {
	return insights.NewSyncLogRepo(db, baseLog)
}
func NewSuggestionRepo(db *gorm.DB, baseLog *logger.Logger) SuggestionRepo {
	return insights.NewSuggestionRepo(db, baseLog)
}
func NewUnifiedScoreRepo(db *gorm.DB, baseLog *logger.Logger) UnifiedScoreRepo {
	return scores.NewUnifiedScoreRepo(db, baseLog)
}
func NewIdentityRepo(db *gorm.DB, baseLog *logger.Logger) IdentityRepo {
	return scores.NewIdentityRepo(db, baseLog)
}
