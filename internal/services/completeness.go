package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	pkgerr "github.com/okulpusula/pusula-backend/internal/pkg/errors"
)

// fieldCheck ties one checklist field name to its filled predicate. Checklist
// order is the order missing fields are reported in.
type fieldCheck struct {
	name   string
	filled bool
}

func completenessOf(checks []fieldCheck) (int, []string) {
	if len(checks) == 0 {
		return 100, nil
	}
	filled := 0
	var missing []string
	for _, c := range checks {
		if c.filled {
			filled++
		} else {
			missing = append(missing, c.name)
		}
	}
	score := int(math.Round(float64(filled) / float64(len(checks)) * 100))
	return score, missing
}

func (s *scoringService) CalculateProfileCompleteness(ctx context.Context, studentID uuid.UUID) (*CompletenessReport, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}
	b, err := s.loadBundle(ctx, studentID)
	if err != nil {
		return nil, err
	}

	report := &CompletenessReport{StudentID: studentID}
	add := func(domain string, checks []fieldCheck) {
		score, missing := completenessOf(checks)
		report.Domains = append(report.Domains, DomainCompleteness{
			Domain:        domain,
			Score:         score,
			MissingFields: missing,
		})
	}

	add(string(types.DomainAcademic), academicChecklist(b.academic))
	add(string(types.DomainSocialEmotional), socialChecklist(b.social))
	add(string(types.DomainTalentsInterest), talentsChecklist(b.talents))
	add(string(types.DomainHealth), healthChecklist(b.health))
	add(string(types.DomainBehavioral), nil)
	if len(b.incidents) > 0 {
		// Behavioral completeness is the mean over incidents; a student with
		// no incidents has nothing left to document and counts as complete.
		report.Domains[len(report.Domains)-1] = behavioralCompleteness(b.incidents)
	}

	sum := 0
	for _, d := range report.Domains {
		sum += d.Score
	}
	report.Overall = int(math.Round(float64(sum) / float64(len(report.Domains))))
	return report, nil
}

func academicChecklist(p *types.AcademicProfile) []fieldCheck {
	if p == nil {
		p = &types.AcademicProfile{}
	}
	return []fieldCheck{
		{"strongSubjects", jsonListLen(p.StrongSubjects) > 0},
		{"weakSubjects", jsonListLen(p.WeakSubjects) > 0},
		{"studyHabits", jsonListLen(p.StudyHabits) > 0},
		{"gradeAverage", p.GradeAverage != nil},
		{"overallMotivation", p.OverallMotivation != nil},
		{"homeworkCompletionRate", p.HomeworkCompletionRate != nil},
		{"learningStyle", p.LearningStyle != ""},
		{"academicGoals", p.AcademicGoals != ""},
		{"tutoringNeeds", p.TutoringNeeds != ""},
	}
}

func socialChecklist(p *types.SocialEmotionalProfile) []fieldCheck {
	if p == nil {
		p = &types.SocialEmotionalProfile{}
	}
	return []fieldCheck{
		{"friendCircleSize", p.FriendCircleSize != ""},
		{"friendCircleQuality", p.FriendCircleQuality != ""},
		{"socialSkillsLevel", p.SocialSkillsLevel != nil},
		{"empathyLevel", p.EmpathyLevel != nil},
		{"selfConfidenceLevel", p.SelfConfidenceLevel != nil},
		{"emotionalRegulationLevel", p.EmotionalRegulationLevel != nil},
		{"stressCopingLevel", p.StressCopingLevel != nil},
		{"familySupportLevel", p.FamilySupportLevel != nil},
		{"bullyingStatus", p.BullyingStatus != ""},
		{"teacherRelationshipQuality", p.TeacherRelationshipQuality != ""},
		{"peerRelationshipQuality", p.PeerRelationshipQuality != ""},
		{"conflictResolutionSkills", p.ConflictResolutionSkills != ""},
		{"socialActivities", jsonListLen(p.SocialActivities) > 0},
	}
}

func talentsChecklist(p *types.TalentsInterestsProfile) []fieldCheck {
	if p == nil {
		p = &types.TalentsInterestsProfile{}
	}
	return []fieldCheck{
		{"primaryInterests", jsonListLen(p.PrimaryInterests) > 0},
		{"talentAreas", jsonListLen(p.TalentAreas) > 0},
		{"clubMemberships", jsonListLen(p.ClubMemberships) > 0},
		{"sportsActivities", jsonListLen(p.SportsActivities) > 0},
		{"artisticActivities", jsonListLen(p.ArtisticActivities) > 0},
		{"weeklyActivityHours", p.WeeklyActivityHours != nil},
	}
}

func healthChecklist(p *types.HealthProfile) []fieldCheck {
	if p == nil {
		p = &types.HealthProfile{}
	}
	return []fieldCheck{
		{"bloodType", p.BloodType != ""},
		{"chronicDiseases", jsonListLen(p.ChronicDiseases) > 0},
		{"allergies", jsonListLen(p.Allergies) > 0},
		{"disabilityStatus", p.DisabilityStatus != ""},
		{"visionHearingIssues", p.VisionHearingIssues != ""},
		{"emergencyContact1Name", p.EmergencyContact1Name != ""},
		{"emergencyContact1Phone", p.EmergencyContact1Phone != ""},
	}
}

func behavioralCompleteness(incidents []*types.BehaviorIncident) DomainCompleteness {
	sum := 0
	missingSet := map[string]bool{}
	var missing []string
	for _, inc := range incidents {
		checks := []fieldCheck{
			{"incidentDate", inc.IncidentDate != nil},
			{"incidentType", inc.IncidentType != ""},
			{"description", inc.Description != ""},
			{"severity", inc.Severity != ""},
			{"actionTaken", inc.ActionTaken != ""},
		}
		score, miss := completenessOf(checks)
		sum += score
		for _, m := range miss {
			if !missingSet[m] {
				missingSet[m] = true
				missing = append(missing, m)
			}
		}
	}
	return DomainCompleteness{
		Domain:        string(types.DomainBehavioral),
		Score:         int(math.Round(float64(sum) / float64(len(incidents)))),
		MissingFields: missing,
	}
}
