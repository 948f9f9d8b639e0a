package insight

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProfileSyncLog is the append-only record of one profile merge. One row per
// (observation, domain) pair touched; rows are never updated or deleted.
type ProfileSyncLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`

	Source   string `gorm:"not null;column:source" json:"source"`
	SourceID string `gorm:"column:source_id" json:"source_id"`
	Domain   string `gorm:"not null;column:domain" json:"domain"`
	Action   string `gorm:"column:action;default:'updated'" json:"action"`

	ValidationScore   *float64       `gorm:"column:validation_score" json:"validation_score,omitempty"`
	AIReasoning       string         `gorm:"column:ai_reasoning" json:"ai_reasoning"`
	ExtractedInsights datatypes.JSON `gorm:"type:jsonb;column:extracted_insights" json:"extracted_insights"`

	ProcessedBy string    `gorm:"column:processed_by" json:"processed_by"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ProfileSyncLog) TableName() string { return "profile_sync_log" }
