package insight

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SuggestionStatusPending  = "pending"
	SuggestionStatusApproved = "approved"
	SuggestionStatusRejected = "rejected"

	SuggestionPriorityLow    = "low"
	SuggestionPriorityMedium = "medium"
	SuggestionPriorityHigh   = "high"
)

// Suggestion is one approval-gated proposal. Writes the system is not
// confident about land here for a human reviewer instead of touching
// authoritative student data.
type Suggestion struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`

	Source   string `gorm:"not null;column:source" json:"source"`
	SourceID string `gorm:"column:source_id" json:"source_id"`
	Priority string `gorm:"column:priority;default:'medium'" json:"priority"`

	Title       string  `gorm:"column:title" json:"title"`
	Description string  `gorm:"column:description" json:"description"`
	Reasoning   string  `gorm:"column:reasoning" json:"reasoning"`
	Confidence  float64 `gorm:"column:confidence" json:"confidence"`

	// ProposedChanges is a serialized []ProposedChange.
	ProposedChanges datatypes.JSON `gorm:"type:jsonb;column:proposed_changes" json:"proposed_changes"`

	Status    string    `gorm:"column:status;default:'pending';index" json:"status"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Suggestion) TableName() string { return "suggestion" }

// ProposedChange is one field-level proposal inside a Suggestion.
type ProposedChange struct {
	Field         string      `json:"field"`
	CurrentValue  interface{} `json:"current_value"`
	ProposedValue interface{} `json:"proposed_value"`
	Reason        string      `json:"reason"`
}
