package profiles

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Enumerated values for SocialEmotionalProfile string fields.
const (
	FriendCircleNone   = "none"
	FriendCircleSmall  = "small"
	FriendCircleMedium = "medium"
	FriendCircleLarge  = "large"

	BullyingNone        = "none"
	BullyingVictim      = "victim"
	BullyingPerpetrator = "perpetrator"
	BullyingWitness     = "witness"
)

// SocialEmotionalProfile holds the social and emotional snapshot for one
// student. Level fields are 1-10 competency scales.
type SocialEmotionalProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"student_id"`

	FriendCircleSize    string `gorm:"column:friend_circle_size" json:"friend_circle_size"`
	FriendCircleQuality string `gorm:"column:friend_circle_quality" json:"friend_circle_quality"`

	SocialSkillsLevel        *int `gorm:"column:social_skills_level" json:"social_skills_level,omitempty"`
	EmpathyLevel             *int `gorm:"column:empathy_level" json:"empathy_level,omitempty"`
	SelfConfidenceLevel      *int `gorm:"column:self_confidence_level" json:"self_confidence_level,omitempty"`
	EmotionalRegulationLevel *int `gorm:"column:emotional_regulation_level" json:"emotional_regulation_level,omitempty"`
	StressCopingLevel        *int `gorm:"column:stress_coping_level" json:"stress_coping_level,omitempty"`
	FamilySupportLevel       *int `gorm:"column:family_support_level" json:"family_support_level,omitempty"`

	BullyingStatus             string `gorm:"column:bullying_status" json:"bullying_status"`
	TeacherRelationshipQuality string `gorm:"column:teacher_relationship_quality" json:"teacher_relationship_quality"`
	PeerRelationshipQuality    string `gorm:"column:peer_relationship_quality" json:"peer_relationship_quality"`
	ConflictResolutionSkills   string `gorm:"column:conflict_resolution_skills" json:"conflict_resolution_skills"`

	SocialActivities datatypes.JSON `gorm:"type:jsonb;column:social_activities" json:"social_activities"`

	AdditionalNotes string     `gorm:"column:additional_notes" json:"additional_notes"`
	AssessmentDate  *time.Time `gorm:"column:assessment_date" json:"assessment_date,omitempty"`
	AssessedBy      string     `gorm:"column:assessed_by" json:"assessed_by"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SocialEmotionalProfile) TableName() string { return "social_emotional_profile" }
