package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/okulpusula/pusula-backend/internal/domain"
)

func SeedStudent(tb testing.TB, ctx context.Context, tx *gorm.DB, firstName, lastName string) *types.Student {
	tb.Helper()
	s := &types.Student{
		ID:         uuid.New(),
		FirstName:  firstName,
		LastName:   lastName,
		GradeLevel: "9",
		ClassName:  "9-A",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed student: %v", err)
	}
	return s
}

func SeedCounselor(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.Counselor {
	tb.Helper()
	c := &types.Counselor{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "Test",
		LastName:  "Counselor",
		Role:      "counselor",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed counselor: %v", err)
	}
	return c
}

func SeedHealthProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, studentID uuid.UUID) *types.HealthProfile {
	tb.Helper()
	p := &types.HealthProfile{
		ID:                 uuid.New(),
		StudentID:          studentID,
		ChronicDiseases:    datatypes.JSON([]byte("[]")),
		Allergies:          datatypes.JSON([]byte("[]")),
		CurrentMedications: datatypes.JSON([]byte("[]")),
		AssessedBy:         "SYSTEM",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed health profile: %v", err)
	}
	return p
}

func SeedBehaviorIncident(tb testing.TB, ctx context.Context, tx *gorm.DB, studentID uuid.UUID, severity string) *types.BehaviorIncident {
	tb.Helper()
	when := time.Now().UTC().AddDate(0, 0, -7)
	b := &types.BehaviorIncident{
		ID:           uuid.New(),
		StudentID:    studentID,
		IncidentDate: &when,
		IncidentType: "disruption",
		Description:  "test incident",
		Severity:     severity,
		Status:       "open",
		ReportedBy:   "teacher",
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed behavior incident: %v", err)
	}
	return b
}
