package profiles

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/okulpusula/pusula-backend/internal/data/repos/testutil"
	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
)

func TestHealthProfileRepoUpsertKeepsPrimaryKey(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewHealthProfileRepo(db, testutil.Logger(t))

	s := testutil.SeedStudent(t, ctx, tx, "Ayşe", "Yılmaz")

	first := &types.HealthProfile{
		StudentID:          s.ID,
		BloodType:          "A+",
		ChronicDiseases:    datatypes.JSON([]byte(`["asthma"]`)),
		Allergies:          datatypes.JSON([]byte("[]")),
		CurrentMedications: datatypes.JSON([]byte("[]")),
		AssessedBy:         "SYSTEM",
	}
	if err := repo.Upsert(dbc, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	got, err := repo.GetByStudentID(dbc, s.ID)
	if err != nil || got == nil {
		t.Fatalf("get after insert: row=%v err=%v", got, err)
	}
	originalID := got.ID

	second := &types.HealthProfile{
		StudentID:          s.ID,
		BloodType:          "A+",
		ChronicDiseases:    datatypes.JSON([]byte(`["asthma"]`)),
		Allergies:          datatypes.JSON([]byte(`["pollen"]`)),
		CurrentMedications: datatypes.JSON([]byte("[]")),
		AssessedBy:         "AI Auto-Sync",
	}
	if err := repo.Upsert(dbc, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err = repo.GetByStudentID(dbc, s.ID)
	if err != nil || got == nil {
		t.Fatalf("get after merge: row=%v err=%v", got, err)
	}
	if got.ID != originalID {
		t.Fatalf("primary key changed across merge: was %s, now %s", originalID, got.ID)
	}
	if string(got.Allergies) != `["pollen"]` {
		t.Fatalf("allergies not updated: %s", got.Allergies)
	}
	if got.AssessedBy != "AI Auto-Sync" {
		t.Fatalf("assessed_by not updated: %s", got.AssessedBy)
	}
}

func TestHealthProfileRepoAbsentIsNilNotError(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewHealthProfileRepo(db, testutil.Logger(t))

	s := testutil.SeedStudent(t, context.Background(), tx, "Mehmet", "Kaya")

	got, err := repo.GetByStudentID(dbc, s.ID)
	if err != nil {
		t.Fatalf("absent profile should not error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent profile, got %+v", got)
	}
}
