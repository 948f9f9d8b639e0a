package student

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student is the authoritative student record. The fusion core never writes
// these fields directly; proposed changes go through the suggestion queue.
type Student struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FirstName string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string    `gorm:"not null;column:last_name" json:"last_name"`
	Gender    string    `gorm:"column:gender" json:"gender"`

	BirthDate      *time.Time `gorm:"column:birth_date" json:"birth_date,omitempty"`
	EnrollmentDate *time.Time `gorm:"column:enrollment_date" json:"enrollment_date,omitempty"`

	Email      string `gorm:"column:email" json:"email"`
	Phone      string `gorm:"column:phone" json:"phone"`
	Address    string `gorm:"column:address" json:"address"`
	GradeLevel string `gorm:"column:grade_level" json:"grade_level"`
	ClassName  string `gorm:"column:class_name" json:"class_name"`

	MotherName    string `gorm:"column:mother_name" json:"mother_name"`
	MotherPhone   string `gorm:"column:mother_phone" json:"mother_phone"`
	FatherName    string `gorm:"column:father_name" json:"father_name"`
	FatherPhone   string `gorm:"column:father_phone" json:"father_phone"`
	GuardianNotes string `gorm:"column:guardian_notes" json:"guardian_notes"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Student) TableName() string { return "student" }
