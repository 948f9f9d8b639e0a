package student

import (
	"time"

	"github.com/google/uuid"
)

const (
	IncidentSeverityLow    = "low"
	IncidentSeverityMedium = "medium"
	IncidentSeverityHigh   = "high"
)

// BehaviorIncident is one recorded behavior event. Behavioral signals are kept
// as raw incident rows rather than a merged profile; scoring and completeness
// read them directly.
type BehaviorIncident struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`

	IncidentDate *time.Time `gorm:"column:incident_date" json:"incident_date,omitempty"`
	IncidentType string     `gorm:"column:incident_type" json:"incident_type"`
	Description  string     `gorm:"column:description" json:"description"`
	Severity     string     `gorm:"column:severity" json:"severity"`
	Location     string     `gorm:"column:location" json:"location"`
	ActionTaken  string     `gorm:"column:action_taken" json:"action_taken"`

	ParentNotified bool   `gorm:"column:parent_notified" json:"parent_notified"`
	Status         string `gorm:"column:status;default:'open'" json:"status"`
	ReportedBy     string `gorm:"column:reported_by" json:"reported_by"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (BehaviorIncident) TableName() string { return "behavior_incident" }
