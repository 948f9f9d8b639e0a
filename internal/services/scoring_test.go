package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/domain/profiles"
	"github.com/okulpusula/pusula-backend/internal/domain/student"
	"github.com/okulpusula/pusula-backend/internal/pkg/pointers"
)

func fullBundle() *profileBundle {
	sid := uuid.New()
	return &profileBundle{
		student: &types.Student{ID: sid, FirstName: "Elif", LastName: "Demir"},
		academic: &types.AcademicProfile{
			StudentID:              sid,
			GradeAverage:           pointers.Float64(85),
			HomeworkCompletionRate: pointers.Float64(90),
			OverallMotivation:      pointers.Int(8),
			StrongSubjects:         datatypes.JSON(`["matematik","fizik"]`),
			WeakSubjects:           datatypes.JSON(`["tarih"]`),
		},
		social: &types.SocialEmotionalProfile{
			StudentID:           sid,
			SocialSkillsLevel:   pointers.Int(7),
			EmpathyLevel:        pointers.Int(8),
			SelfConfidenceLevel: pointers.Int(6),
			FriendCircleSize:    profiles.FriendCircleMedium,
			BullyingStatus:      profiles.BullyingNone,
		},
		talents: &types.TalentsInterestsProfile{
			StudentID:           sid,
			PrimaryInterests:    datatypes.JSON(`["satranç","resim"]`),
			ClubMemberships:     datatypes.JSON(`["satranç kulübü"]`),
			WeeklyActivityHours: pointers.Float64(6),
		},
	}
}

func TestComputeScoresBounds(t *testing.T) {
	set := computeScores(fullBundle())

	for name, score := range map[string]int{
		"academic":         set.AcademicScore,
		"social_emotional": set.SocialEmotionalScore,
		"behavior":         set.BehaviorScore,
		"motivation":       set.MotivationScore,
		"risk":             set.RiskScore,
	} {
		if score < 0 || score > 100 {
			t.Errorf("%s score = %d, outside [0,100]", name, score)
		}
	}
	if len(set.Details) != 5 {
		t.Errorf("details has %d sections, want 5", len(set.Details))
	}
}

func TestComputeScoresDeterministic(t *testing.T) {
	b := fullBundle()
	a := computeScores(b)
	c := computeScores(b)

	if a.AcademicScore != c.AcademicScore || a.SocialEmotionalScore != c.SocialEmotionalScore ||
		a.BehaviorScore != c.BehaviorScore || a.MotivationScore != c.MotivationScore ||
		a.RiskScore != c.RiskScore {
		t.Fatalf("same bundle produced different scores:\n%+v\n%+v", a, c)
	}
}

func TestBehaviorScoreNoIncidentsIsClean(t *testing.T) {
	details := map[string]map[string]float64{}
	if got := behaviorScore(nil, details); got != 100 {
		t.Fatalf("behaviorScore(no incidents) = %d, want 100", got)
	}
}

func TestBehaviorScorePenalties(t *testing.T) {
	tests := []struct {
		name      string
		incidents []*types.BehaviorIncident
		want      int
	}{
		{"one low", []*types.BehaviorIncident{{Severity: student.IncidentSeverityLow}}, 95},
		{"one high", []*types.BehaviorIncident{{Severity: student.IncidentSeverityHigh}}, 75},
		{"mixed", []*types.BehaviorIncident{
			{Severity: student.IncidentSeverityLow},
			{Severity: student.IncidentSeverityMedium},
			{Severity: student.IncidentSeverityHigh},
		}, 58},
		{"floor at zero", []*types.BehaviorIncident{
			{Severity: student.IncidentSeverityHigh},
			{Severity: student.IncidentSeverityHigh},
			{Severity: student.IncidentSeverityHigh},
			{Severity: student.IncidentSeverityHigh},
			{Severity: student.IncidentSeverityHigh},
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := behaviorScore(tt.incidents, map[string]map[string]float64{}); got != tt.want {
				t.Errorf("behaviorScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRiskScoreAccumulatesSignals(t *testing.T) {
	b := fullBundle()
	base := computeScores(b).RiskScore

	b.social.BullyingStatus = profiles.BullyingVictim
	b.social.FamilySupportLevel = pointers.Int(2)
	b.academic.GradeAverage = pointers.Float64(40)
	b.incidents = []*types.BehaviorIncident{{Severity: student.IncidentSeverityHigh}}

	elevated := computeScores(b).RiskScore
	if elevated <= base {
		t.Fatalf("risk did not rise with risk signals: base %d, elevated %d", base, elevated)
	}
	if elevated > 100 {
		t.Fatalf("risk = %d, above cap", elevated)
	}
}

func TestAcademicScoreMissingProfileIsZero(t *testing.T) {
	if got := academicScore(nil, map[string]map[string]float64{}); got != 0 {
		t.Fatalf("academicScore(nil) = %d, want 0", got)
	}
}

func TestCompletenessChecklists(t *testing.T) {
	t.Run("empty academic profile", func(t *testing.T) {
		score, missing := completenessOf(academicChecklist(nil))
		if score != 0 {
			t.Errorf("score = %d, want 0", score)
		}
		if len(missing) != 9 {
			t.Errorf("missing = %d fields, want 9", len(missing))
		}
		if missing[0] != "strongSubjects" {
			t.Errorf("missing[0] = %q, want checklist order", missing[0])
		}
	})

	t.Run("filling a field never lowers the score", func(t *testing.T) {
		empty, _ := completenessOf(healthChecklist(nil))
		partial, missing := completenessOf(healthChecklist(&types.HealthProfile{BloodType: "A+"}))
		if partial <= empty {
			t.Errorf("score did not rise: empty %d, partial %d", empty, partial)
		}
		for _, m := range missing {
			if m == "bloodType" {
				t.Errorf("bloodType reported missing after being set")
			}
		}
	})

	t.Run("full social profile is 100", func(t *testing.T) {
		p := &types.SocialEmotionalProfile{
			FriendCircleSize:           "medium",
			FriendCircleQuality:        "iyi",
			SocialSkillsLevel:          pointers.Int(7),
			EmpathyLevel:               pointers.Int(7),
			SelfConfidenceLevel:        pointers.Int(7),
			EmotionalRegulationLevel:   pointers.Int(7),
			StressCopingLevel:          pointers.Int(7),
			FamilySupportLevel:         pointers.Int(7),
			BullyingStatus:             "none",
			TeacherRelationshipQuality: "iyi",
			PeerRelationshipQuality:    "iyi",
			ConflictResolutionSkills:   "orta",
			SocialActivities:           datatypes.JSON(`["tiyatro"]`),
		}
		score, missing := completenessOf(socialChecklist(p))
		if score != 100 || len(missing) != 0 {
			t.Errorf("score = %d missing = %v, want 100 and none", score, missing)
		}
	})
}

func TestBehavioralCompleteness(t *testing.T) {
	t.Run("documented incident", func(t *testing.T) {
		now := time.Now().UTC()
		dc := behavioralCompleteness([]*types.BehaviorIncident{{
			IncidentDate: &now,
			IncidentType: "kavga",
			Description:  "teneffüste tartışma",
			Severity:     student.IncidentSeverityMedium,
			ActionTaken:  "veli görüşmesi",
		}})
		if dc.Score != 100 {
			t.Errorf("score = %d, want 100", dc.Score)
		}
	})

	t.Run("half documented", func(t *testing.T) {
		dc := behavioralCompleteness([]*types.BehaviorIncident{{
			IncidentType: "kavga",
			Description:  "tartışma",
		}})
		if dc.Score != 40 {
			t.Errorf("score = %d, want 40", dc.Score)
		}
		if len(dc.MissingFields) != 3 {
			t.Errorf("missing = %v, want 3 fields", dc.MissingFields)
		}
	})
}
