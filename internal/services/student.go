package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	rediscache "github.com/okulpusula/pusula-backend/internal/clients/redis"
	"github.com/okulpusula/pusula-backend/internal/data/repos"
	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/normalization"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	pkgerr "github.com/okulpusula/pusula-backend/internal/pkg/errors"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

type CreateStudentInput struct {
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Gender         string      `json:"gender"`
	BirthDate      interface{} `json:"birth_date"`
	EnrollmentDate interface{} `json:"enrollment_date"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	Address        string      `json:"address"`
	GradeLevel     string      `json:"grade_level"`
	ClassName      string      `json:"class_name"`
	MotherName     string      `json:"mother_name"`
	MotherPhone    string      `json:"mother_phone"`
	FatherName     string      `json:"father_name"`
	FatherPhone    string      `json:"father_phone"`
	GuardianNotes  string      `json:"guardian_notes"`
}

type CreateIncidentInput struct {
	IncidentDate   interface{} `json:"incident_date"`
	IncidentType   string      `json:"incident_type"`
	Description    string      `json:"description"`
	Severity       string      `json:"severity"`
	Location       string      `json:"location"`
	ActionTaken    string      `json:"action_taken"`
	ParentNotified bool        `json:"parent_notified"`
}

// StudentService owns the student record lifecycle. Creating a student also
// seeds the four profile tables with empty rows so every downstream reader
// can rely on the rows existing.
type StudentService interface {
	Create(ctx context.Context, in CreateStudentInput) (*types.Student, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Student, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddIncident(ctx context.Context, studentID uuid.UUID, in CreateIncidentInput, reportedBy string) (*types.BehaviorIncident, error)
	ListIncidents(ctx context.Context, studentID uuid.UUID) ([]*types.BehaviorIncident, error)
}

type studentService struct {
	log *logger.Logger

	students  repos.StudentRepo
	incidents repos.BehaviorIncidentRepo
	health    repos.HealthProfileRepo
	academic  repos.AcademicProfileRepo
	social    repos.SocialEmotionalProfileRepo
	talents   repos.TalentsInterestsProfileRepo

	cache rediscache.ScoreCache
}

type StudentDeps struct {
	Students  repos.StudentRepo
	Incidents repos.BehaviorIncidentRepo
	Health    repos.HealthProfileRepo
	Academic  repos.AcademicProfileRepo
	Social    repos.SocialEmotionalProfileRepo
	Talents   repos.TalentsInterestsProfileRepo

	Cache rediscache.ScoreCache
}

func NewStudentService(log *logger.Logger, deps StudentDeps) StudentService {
	return &studentService{
		log:       log.With("service", "StudentService"),
		students:  deps.Students,
		incidents: deps.Incidents,
		health:    deps.Health,
		academic:  deps.Academic,
		social:    deps.Social,
		talents:   deps.Talents,
		cache:     deps.Cache,
	}
}

func (s *studentService) Create(ctx context.Context, in CreateStudentInput) (*types.Student, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.FirstName == "" || in.LastName == "" {
		return nil, fmt.Errorf("first and last name required: %w", pkgerr.ErrInvalidArgument)
	}

	row := &types.Student{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Gender:         strings.TrimSpace(in.Gender),
		BirthDate:      normalization.NormalizeDate(in.BirthDate),
		EnrollmentDate: normalization.NormalizeDate(in.EnrollmentDate),
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Address:        strings.TrimSpace(in.Address),
		GradeLevel:     strings.TrimSpace(in.GradeLevel),
		ClassName:      strings.TrimSpace(in.ClassName),
		MotherName:     strings.TrimSpace(in.MotherName),
		MotherPhone:    strings.TrimSpace(in.MotherPhone),
		FatherName:     strings.TrimSpace(in.FatherName),
		FatherPhone:    strings.TrimSpace(in.FatherPhone),
		GuardianNotes:  strings.TrimSpace(in.GuardianNotes),
	}

	dbc := dbctx.Context{Ctx: ctx}
	if err := s.students.Create(dbc, row); err != nil {
		return nil, err
	}
	if err := s.seedProfiles(dbc, row.ID); err != nil {
		return nil, err
	}

	s.log.Info("Student created", "student_id", row.ID.String(), "grade_level", row.GradeLevel)
	return row, nil
}

// seedProfiles writes empty defaults stamped as SYSTEM so provenance shows
// the rows were initialized, not assessed.
func (s *studentService) seedProfiles(dbc dbctx.Context, studentID uuid.UUID) error {
	now := time.Now().UTC()
	emptyList := datatypes.JSON("[]")

	if err := s.health.Upsert(dbc, &types.HealthProfile{
		StudentID:          studentID,
		ChronicDiseases:    emptyList,
		Allergies:          emptyList,
		CurrentMedications: emptyList,
		AssessmentDate:     &now,
		AssessedBy:         types.AssessedBySystem,
	}); err != nil {
		return err
	}
	if err := s.academic.Upsert(dbc, &types.AcademicProfile{
		StudentID:      studentID,
		StrongSubjects: emptyList,
		WeakSubjects:   emptyList,
		StudyHabits:    emptyList,
		AssessmentDate: &now,
		AssessedBy:     types.AssessedBySystem,
	}); err != nil {
		return err
	}
	if err := s.social.Upsert(dbc, &types.SocialEmotionalProfile{
		StudentID:        studentID,
		SocialActivities: emptyList,
		AssessmentDate:   &now,
		AssessedBy:       types.AssessedBySystem,
	}); err != nil {
		return err
	}
	return s.talents.Upsert(dbc, &types.TalentsInterestsProfile{
		StudentID:          studentID,
		PrimaryInterests:   emptyList,
		TalentAreas:        emptyList,
		ClubMemberships:    emptyList,
		SportsActivities:   emptyList,
		ArtisticActivities: emptyList,
		AssessmentDate:     &now,
		AssessedBy:         types.AssessedBySystem,
	})
}

func (s *studentService) Get(ctx context.Context, id uuid.UUID) (*types.Student, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}
	row, err := s.students.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("student %s: %w", id, pkgerr.ErrNotFound)
	}
	return row, nil
}

func (s *studentService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}
	if err := s.students.SoftDeleteByID(dbctx.Context{Ctx: ctx}, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}

func (s *studentService) AddIncident(ctx context.Context, studentID uuid.UUID, in CreateIncidentInput, reportedBy string) (*types.BehaviorIncident, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("description required: %w", pkgerr.ErrInvalidArgument)
	}

	dbc := dbctx.Context{Ctx: ctx}
	st, err := s.students.GetByID(dbc, studentID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("student %s: %w", studentID, pkgerr.ErrNotFound)
	}

	row := &types.BehaviorIncident{
		StudentID:      studentID,
		IncidentDate:   normalization.NormalizeDate(in.IncidentDate),
		IncidentType:   strings.TrimSpace(in.IncidentType),
		Description:    strings.TrimSpace(in.Description),
		Severity:       strings.TrimSpace(in.Severity),
		Location:       strings.TrimSpace(in.Location),
		ActionTaken:    strings.TrimSpace(in.ActionTaken),
		ParentNotified: in.ParentNotified,
		ReportedBy:     reportedBy,
	}
	if err := s.incidents.Create(dbc, row); err != nil {
		return nil, err
	}
	// Incidents feed the behavior and risk scores, so cached score sets for
	// this student are stale from here on.
	if s.cache != nil {
		s.cache.Invalidate(ctx, studentID)
	}
	return row, nil
}

func (s *studentService) ListIncidents(ctx context.Context, studentID uuid.UUID) ([]*types.BehaviorIncident, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}
	return s.incidents.ListByStudentID(dbctx.Context{Ctx: ctx}, studentID)
}
