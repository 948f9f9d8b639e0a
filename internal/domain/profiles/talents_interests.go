package profiles

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TalentsInterestsProfile holds interests, talents and activity engagement for
// one student.
type TalentsInterestsProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"student_id"`

	PrimaryInterests   datatypes.JSON `gorm:"type:jsonb;column:primary_interests" json:"primary_interests"`
	TalentAreas        datatypes.JSON `gorm:"type:jsonb;column:talent_areas" json:"talent_areas"`
	ClubMemberships    datatypes.JSON `gorm:"type:jsonb;column:club_memberships" json:"club_memberships"`
	SportsActivities   datatypes.JSON `gorm:"type:jsonb;column:sports_activities" json:"sports_activities"`
	ArtisticActivities datatypes.JSON `gorm:"type:jsonb;column:artistic_activities" json:"artistic_activities"`

	WeeklyActivityHours *float64 `gorm:"column:weekly_activity_hours" json:"weekly_activity_hours,omitempty"`

	AdditionalNotes string     `gorm:"column:additional_notes" json:"additional_notes"`
	AssessmentDate  *time.Time `gorm:"column:assessment_date" json:"assessment_date,omitempty"`
	AssessedBy      string     `gorm:"column:assessed_by" json:"assessed_by"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (TalentsInterestsProfile) TableName() string { return "talents_interests_profile" }
