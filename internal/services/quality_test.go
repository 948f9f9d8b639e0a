package services

import (
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/domain/profiles"
	"github.com/okulpusula/pusula-backend/internal/pkg/pointers"
)

func TestQualityStatusThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, QualityStatusExcellent},
		{90, QualityStatusExcellent},
		{89, QualityStatusGood},
		{70, QualityStatusGood},
		{69, QualityStatusFair},
		{50, QualityStatusFair},
		{49, QualityStatusPoor},
		{1, QualityStatusPoor},
		{0, QualityStatusIncomplete},
	}
	for _, tt := range tests {
		if got := qualityStatus(tt.score); got != tt.want {
			t.Errorf("qualityStatus(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestValidateHealthProfileAbsent(t *testing.T) {
	report := validateHealthProfile(nil)

	if report.QualityScore != 0 {
		t.Errorf("QualityScore = %d, want 0", report.QualityScore)
	}
	if report.Status != QualityStatusIncomplete {
		t.Errorf("Status = %q, want incomplete", report.Status)
	}
	if len(report.Recommendations) == 0 {
		t.Errorf("absent profile should carry a creation recommendation")
	}
}

func TestValidateHealthProfileChronicDiseaseRecommendation(t *testing.T) {
	report := validateHealthProfile(&types.HealthProfile{
		BloodType:              "A+",
		ChronicDiseases:        datatypes.JSON(`["astım"]`),
		EmergencyContact1Name:  "Ali Kaya",
		EmergencyContact1Phone: "05001112233",
	})

	found := false
	for _, rec := range report.Recommendations {
		if strings.Contains(rec, "follow-up") {
			found = true
		}
	}
	if !found {
		t.Errorf("chronic disease did not produce a follow-up recommendation: %v", report.Recommendations)
	}
	if report.QualityScore <= 0 || report.QualityScore > 100 {
		t.Errorf("QualityScore = %d, outside (0,100]", report.QualityScore)
	}
}

func TestValidateSocialEmotionalBullyingIsUrgent(t *testing.T) {
	report := validateSocialEmotionalProfile(&types.SocialEmotionalProfile{
		FriendCircleSize:    profiles.FriendCircleSmall,
		SocialSkillsLevel:   pointers.Int(5),
		SelfConfidenceLevel: pointers.Int(2),
		BullyingStatus:      profiles.BullyingVictim,
	})

	var urgent, social, confidence bool
	for _, rec := range report.Recommendations {
		if strings.Contains(rec, "urgent") {
			urgent = true
		}
		if strings.Contains(rec, "social support") {
			social = true
		}
		if strings.Contains(rec, "confidence") {
			confidence = true
		}
	}
	if !urgent || !social || !confidence {
		t.Errorf("expected urgent/social/confidence recommendations, got %v", report.Recommendations)
	}
}

func TestValidateAcademicProfileRangeIssues(t *testing.T) {
	report := validateAcademicProfile(&types.AcademicProfile{
		GradeAverage:           pointers.Float64(120),
		OverallMotivation:      pointers.Int(11),
		HomeworkCompletionRate: pointers.Float64(-4),
		StrongSubjects:         datatypes.JSON(`["matematik"]`),
		WeakSubjects:           datatypes.JSON(`["tarih"]`),
	})

	if len(report.DataQualityIssues) != 3 {
		t.Fatalf("issues = %v, want 3 range violations", report.DataQualityIssues)
	}

	clean := validateAcademicProfile(&types.AcademicProfile{
		GradeAverage:           pointers.Float64(80),
		OverallMotivation:      pointers.Int(7),
		HomeworkCompletionRate: pointers.Float64(90),
		StrongSubjects:         datatypes.JSON(`["matematik"]`),
		WeakSubjects:           datatypes.JSON(`["tarih"]`),
	})
	if clean.QualityScore <= report.QualityScore {
		t.Errorf("issues did not lower score: clean %d, dirty %d", clean.QualityScore, report.QualityScore)
	}
}

func TestValidateBasicInfoFormats(t *testing.T) {
	future := time.Now().Add(48 * time.Hour)
	report := validateBasicInfo(&types.Student{
		FirstName:  "Can",
		LastName:   "Öz",
		GradeLevel: "7",
		ClassName:  "7-B",
		Email:      "not-an-email",
		Phone:      "abc",
		BirthDate:  &future,
	})

	if len(report.DataQualityIssues) != 3 {
		t.Fatalf("issues = %v, want email+phone+birthDate", report.DataQualityIssues)
	}
}

func TestValidateBehavioralRecordsNoIncidents(t *testing.T) {
	report := validateBehavioralRecords(nil)
	if report.QualityScore != 100 || report.Status != QualityStatusExcellent {
		t.Fatalf("no incidents = %d/%s, want 100/excellent", report.QualityScore, report.Status)
	}
}

func TestEvaluateProfileScoreFloor(t *testing.T) {
	critical := []fieldCheck{{"a", false}, {"b", false}}
	issues := []string{"i1", "i2", "i3", "i4", "i5"}
	report := evaluateProfile("health", critical, nil, issues, nil)
	if report.QualityScore != 5 {
		// 0*0.7 + 100*0.3 = 30, minus 25 for issues
		t.Errorf("QualityScore = %d, want 5", report.QualityScore)
	}
	report2 := evaluateProfile("health", critical, nil, append(issues, "i6", "i7"), nil)
	if report2.QualityScore != 0 {
		t.Errorf("QualityScore = %d, want floored 0", report2.QualityScore)
	}
}
