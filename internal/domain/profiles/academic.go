package profiles

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AcademicProfile holds the academic snapshot for one student.
type AcademicProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"student_id"`

	StrongSubjects datatypes.JSON `gorm:"type:jsonb;column:strong_subjects" json:"strong_subjects"`
	WeakSubjects   datatypes.JSON `gorm:"type:jsonb;column:weak_subjects" json:"weak_subjects"`
	StudyHabits    datatypes.JSON `gorm:"type:jsonb;column:study_habits" json:"study_habits"`

	// GradeAverage and HomeworkCompletionRate are 0-100, OverallMotivation is 1-10.
	GradeAverage           *float64 `gorm:"column:grade_average" json:"grade_average,omitempty"`
	OverallMotivation      *int     `gorm:"column:overall_motivation" json:"overall_motivation,omitempty"`
	HomeworkCompletionRate *float64 `gorm:"column:homework_completion_rate" json:"homework_completion_rate,omitempty"`

	LearningStyle string `gorm:"column:learning_style" json:"learning_style"`
	AcademicGoals string `gorm:"column:academic_goals" json:"academic_goals"`
	TutoringNeeds string `gorm:"column:tutoring_needs" json:"tutoring_needs"`

	AdditionalNotes string     `gorm:"column:additional_notes" json:"additional_notes"`
	AssessmentDate  *time.Time `gorm:"column:assessment_date" json:"assessment_date,omitempty"`
	AssessedBy      string     `gorm:"column:assessed_by" json:"assessed_by"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (AcademicProfile) TableName() string { return "academic_profile" }
