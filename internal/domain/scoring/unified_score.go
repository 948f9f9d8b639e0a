package scoring

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UnifiedScore is the cached result of one aggregate scoring run. Derived, not
// authoritative: recomputed on demand and upserted by student id, no history.
type UnifiedScore struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"student_id"`

	AcademicScore        int `gorm:"column:academic_score" json:"academic_score"`
	SocialEmotionalScore int `gorm:"column:social_emotional_score" json:"social_emotional_score"`
	BehaviorScore        int `gorm:"column:behavior_score" json:"behavior_score"`
	MotivationScore      int `gorm:"column:motivation_score" json:"motivation_score"`
	RiskScore            int `gorm:"column:risk_score" json:"risk_score"`

	// Details holds the per-signal breakdown each score was built from.
	Details datatypes.JSON `gorm:"type:jsonb;column:details" json:"details"`

	LastUpdated time.Time `gorm:"column:last_updated;not null" json:"last_updated"`
}

func (UnifiedScore) TableName() string { return "unified_score" }
