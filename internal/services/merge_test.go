package services

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/pointers"
)

func decodeList(t *testing.T, raw datatypes.JSON) []interface{} {
	t.Helper()
	var out []interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode list %s: %v", raw, err)
	}
	return out
}

func TestMergeHealthProfileNewValueWins(t *testing.T) {
	sid := uuid.New()
	existing := &types.HealthProfile{
		ID:        uuid.New(),
		StudentID: sid,
		BloodType: "0+",
		Allergies: datatypes.JSON(`["polen"]`),
	}

	merged := mergeHealthProfile(existing, sid, map[string]interface{}{
		"bloodType": "A+",
		"allergies": []interface{}{"polen", "fıstık"},
	}, types.AssessedByAutoSync)

	if merged.BloodType != "A+" {
		t.Errorf("BloodType = %q, want A+", merged.BloodType)
	}
	if got := decodeList(t, merged.Allergies); len(got) != 2 {
		t.Errorf("Allergies = %v, want 2 entries", got)
	}
	if merged.ID != existing.ID {
		t.Errorf("ID changed across merge: %s -> %s", existing.ID, merged.ID)
	}
	if merged.AssessedBy != types.AssessedByAutoSync {
		t.Errorf("AssessedBy = %q, want %q", merged.AssessedBy, types.AssessedByAutoSync)
	}
}

func TestMergeHealthProfileAbsentFieldKeepsExisting(t *testing.T) {
	sid := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	existing := &types.HealthProfile{
		StudentID:              sid,
		BloodType:              "B+",
		DisabilityStatus:       "yok",
		EmergencyContact1Name:  "Ayşe Yılmaz",
		EmergencyContact1Phone: "05321234567",
		AssessmentDate:         &date,
	}

	merged := mergeHealthProfile(existing, sid, map[string]interface{}{
		"visionHearingIssues": "gözlük kullanıyor",
	}, types.AssessedByAutoSync)

	if merged.BloodType != "B+" || merged.DisabilityStatus != "yok" ||
		merged.EmergencyContact1Name != "Ayşe Yılmaz" || merged.EmergencyContact1Phone != "05321234567" {
		t.Errorf("untouched fields changed: %+v", merged)
	}
	if merged.AssessmentDate == nil || !merged.AssessmentDate.Equal(date) {
		t.Errorf("AssessmentDate changed: %v", merged.AssessmentDate)
	}
	if merged.VisionHearingIssues != "gözlük kullanıyor" {
		t.Errorf("VisionHearingIssues = %q", merged.VisionHearingIssues)
	}
}

func TestMergeAcademicProfileInvalidNumberKeepsExisting(t *testing.T) {
	sid := uuid.New()
	existing := &types.AcademicProfile{
		StudentID:    sid,
		GradeAverage: pointers.Float64(81.5),
	}

	merged := mergeAcademicProfile(existing, sid, map[string]interface{}{
		"gradeAverage": "bilinmiyor",
	}, types.AssessedByAutoSync)

	if merged.GradeAverage == nil || *merged.GradeAverage != 81.5 {
		t.Errorf("GradeAverage = %v, want 81.5 preserved", merged.GradeAverage)
	}
}

func TestMergeAcademicProfileClampsLevels(t *testing.T) {
	sid := uuid.New()
	merged := mergeAcademicProfile(nil, sid, map[string]interface{}{
		"overallMotivation":      14,
		"homeworkCompletionRate": 130,
	}, types.AssessedByAutoSync)

	if merged.OverallMotivation == nil || *merged.OverallMotivation != 10 {
		t.Errorf("OverallMotivation = %v, want 10", merged.OverallMotivation)
	}
	if merged.HomeworkCompletionRate == nil || *merged.HomeworkCompletionRate != 100 {
		t.Errorf("HomeworkCompletionRate = %v, want 100", merged.HomeworkCompletionRate)
	}
	if merged.StudentID != sid {
		t.Errorf("StudentID = %s, want %s", merged.StudentID, sid)
	}
}

func TestMergeTalentsProfileScalarBecomesList(t *testing.T) {
	sid := uuid.New()
	merged := mergeTalentsProfile(nil, sid, map[string]interface{}{
		"primaryInterests": []interface{}{"satranç"},
	}, types.AssessedByAutoSync)

	got := decodeList(t, merged.PrimaryInterests)
	if !reflect.DeepEqual(got, []interface{}{"satranç"}) {
		t.Errorf("PrimaryInterests = %v, want [satranç]", got)
	}
	// fields never supplied stay as empty lists, not null
	if string(merged.TalentAreas) != "[]" {
		t.Errorf("TalentAreas = %s, want []", merged.TalentAreas)
	}
}

func TestMergeSocialEmotionalIdempotent(t *testing.T) {
	sid := uuid.New()
	fields := map[string]interface{}{
		"friendCircleSize":    "small",
		"selfConfidenceLevel": 4,
		"bullyingStatus":      "victim",
	}

	once := mergeSocialEmotionalProfile(nil, sid, fields, types.AssessedByAutoSync)
	twice := mergeSocialEmotionalProfile(once, sid, fields, types.AssessedByAutoSync)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent:\nonce  %+v\ntwice %+v", once, twice)
	}
}
