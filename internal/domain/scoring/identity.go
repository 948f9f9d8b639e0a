package scoring

import (
	"time"

	"github.com/google/uuid"
)

const (
	RiskPriorityLow    = "low"
	RiskPriorityMedium = "medium"
	RiskPriorityHigh   = "high"
)

// UnifiedStudentIdentity caches the synthesized "who is this student" summary.
// Its five sub-scores come from the identity synthesizer and are allowed to
// diverge from UnifiedScore, which is produced by the deterministic formulas.
type UnifiedStudentIdentity struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"student_id"`

	Summary string `gorm:"type:text;column:summary" json:"summary"`

	AcademicIdentity   int `gorm:"column:academic_identity" json:"academic_identity"`
	SocialIdentity     int `gorm:"column:social_identity" json:"social_identity"`
	EmotionalIdentity  int `gorm:"column:emotional_identity" json:"emotional_identity"`
	InterestIdentity   int `gorm:"column:interest_identity" json:"interest_identity"`
	MotivationIdentity int `gorm:"column:motivation_identity" json:"motivation_identity"`

	RiskPriority string `gorm:"column:risk_priority;default:'low'" json:"risk_priority"`

	LastSynthesizedAt time.Time `gorm:"column:last_synthesized_at;not null" json:"last_synthesized_at"`
}

func (UnifiedStudentIdentity) TableName() string { return "unified_student_identity" }
