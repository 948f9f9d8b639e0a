package profiles

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// HealthProfile holds the medical snapshot for one student. List fields are
// stored as serialized JSON arrays, never bare scalars.
type HealthProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"student_id"`

	BloodType           string         `gorm:"column:blood_type" json:"blood_type"`
	ChronicDiseases     datatypes.JSON `gorm:"type:jsonb;column:chronic_diseases" json:"chronic_diseases"`
	Allergies           datatypes.JSON `gorm:"type:jsonb;column:allergies" json:"allergies"`
	CurrentMedications  datatypes.JSON `gorm:"type:jsonb;column:current_medications" json:"current_medications"`
	DisabilityStatus    string         `gorm:"column:disability_status" json:"disability_status"`
	VisionHearingIssues string         `gorm:"column:vision_hearing_issues" json:"vision_hearing_issues"`

	EmergencyContact1Name  string `gorm:"column:emergency_contact1_name" json:"emergency_contact1_name"`
	EmergencyContact1Phone string `gorm:"column:emergency_contact1_phone" json:"emergency_contact1_phone"`
	EmergencyContact2Name  string `gorm:"column:emergency_contact2_name" json:"emergency_contact2_name"`
	EmergencyContact2Phone string `gorm:"column:emergency_contact2_phone" json:"emergency_contact2_phone"`

	AdditionalNotes string     `gorm:"column:additional_notes" json:"additional_notes"`
	AssessmentDate  *time.Time `gorm:"column:assessment_date" json:"assessment_date,omitempty"`
	AssessedBy      string     `gorm:"column:assessed_by" json:"assessed_by"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (HealthProfile) TableName() string { return "health_profile" }
