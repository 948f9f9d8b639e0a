package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/normalization"
)

// Merge semantics: a canonical field present in the mapped insights replaces
// the stored value, an absent field keeps it. Values that fail normalization
// also keep the stored value, so a merge can never erase data.

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func mergeString(fields map[string]interface{}, key, existing string) string {
	v, ok := fields[key]
	if !ok {
		return existing
	}
	if s := stringValue(v); s != "" {
		return s
	}
	return existing
}

func mergeList(fields map[string]interface{}, key string, existing datatypes.JSON) datatypes.JSON {
	if v, ok := fields[key]; ok {
		if lst := normalization.AsList(v); len(lst) > 0 {
			raw, err := json.Marshal(lst)
			if err == nil {
				return datatypes.JSON(raw)
			}
		}
	}
	if len(existing) == 0 {
		return datatypes.JSON("[]")
	}
	return existing
}

func mergeScore(fields map[string]interface{}, key string, existing *float64) *float64 {
	if v, ok := fields[key]; ok {
		if p := normalization.NormalizeScore(v); p != nil {
			return p
		}
	}
	return existing
}

func mergeLevel(fields map[string]interface{}, key string, existing *int) *int {
	if v, ok := fields[key]; ok {
		if p := normalization.NormalizeLevel(v); p != nil {
			return p
		}
	}
	return existing
}

func mergeDate(fields map[string]interface{}, key string, existing *time.Time) *time.Time {
	if v, ok := fields[key]; ok {
		if p := normalization.NormalizeDate(v); p != nil {
			return p
		}
	}
	return existing
}

func mergeHealthProfile(existing *types.HealthProfile, studentID uuid.UUID, f map[string]interface{}, assessedBy string) *types.HealthProfile {
	base := existing
	if base == nil {
		base = &types.HealthProfile{StudentID: studentID}
	}
	out := *base

	out.BloodType = mergeString(f, "bloodType", base.BloodType)
	out.ChronicDiseases = mergeList(f, "chronicDiseases", base.ChronicDiseases)
	out.Allergies = mergeList(f, "allergies", base.Allergies)
	out.CurrentMedications = mergeList(f, "currentMedications", base.CurrentMedications)
	out.DisabilityStatus = mergeString(f, "disabilityStatus", base.DisabilityStatus)
	out.VisionHearingIssues = mergeString(f, "visionHearingIssues", base.VisionHearingIssues)
	out.EmergencyContact1Name = mergeString(f, "emergencyContact1Name", base.EmergencyContact1Name)
	out.EmergencyContact1Phone = mergeString(f, "emergencyContact1Phone", base.EmergencyContact1Phone)
	out.EmergencyContact2Name = mergeString(f, "emergencyContact2Name", base.EmergencyContact2Name)
	out.EmergencyContact2Phone = mergeString(f, "emergencyContact2Phone", base.EmergencyContact2Phone)
	out.AdditionalNotes = mergeString(f, "additionalNotes", base.AdditionalNotes)
	out.AssessmentDate = mergeDate(f, "assessmentDate", base.AssessmentDate)
	out.AssessedBy = assessedBy

	return &out
}

func mergeAcademicProfile(existing *types.AcademicProfile, studentID uuid.UUID, f map[string]interface{}, assessedBy string) *types.AcademicProfile {
	base := existing
	if base == nil {
		base = &types.AcademicProfile{StudentID: studentID}
	}
	out := *base

	out.StrongSubjects = mergeList(f, "strongSubjects", base.StrongSubjects)
	out.WeakSubjects = mergeList(f, "weakSubjects", base.WeakSubjects)
	out.StudyHabits = mergeList(f, "studyHabits", base.StudyHabits)
	out.GradeAverage = mergeScore(f, "gradeAverage", base.GradeAverage)
	out.OverallMotivation = mergeLevel(f, "overallMotivation", base.OverallMotivation)
	out.HomeworkCompletionRate = mergeScore(f, "homeworkCompletionRate", base.HomeworkCompletionRate)
	out.LearningStyle = mergeString(f, "learningStyle", base.LearningStyle)
	out.AcademicGoals = mergeString(f, "academicGoals", base.AcademicGoals)
	out.TutoringNeeds = mergeString(f, "tutoringNeeds", base.TutoringNeeds)
	out.AdditionalNotes = mergeString(f, "additionalNotes", base.AdditionalNotes)
	out.AssessmentDate = mergeDate(f, "assessmentDate", base.AssessmentDate)
	out.AssessedBy = assessedBy

	return &out
}

func mergeSocialEmotionalProfile(existing *types.SocialEmotionalProfile, studentID uuid.UUID, f map[string]interface{}, assessedBy string) *types.SocialEmotionalProfile {
	base := existing
	if base == nil {
		base = &types.SocialEmotionalProfile{StudentID: studentID}
	}
	out := *base

	out.FriendCircleSize = mergeString(f, "friendCircleSize", base.FriendCircleSize)
	out.FriendCircleQuality = mergeString(f, "friendCircleQuality", base.FriendCircleQuality)
	out.SocialSkillsLevel = mergeLevel(f, "socialSkillsLevel", base.SocialSkillsLevel)
	out.EmpathyLevel = mergeLevel(f, "empathyLevel", base.EmpathyLevel)
	out.SelfConfidenceLevel = mergeLevel(f, "selfConfidenceLevel", base.SelfConfidenceLevel)
	out.EmotionalRegulationLevel = mergeLevel(f, "emotionalRegulationLevel", base.EmotionalRegulationLevel)
	out.StressCopingLevel = mergeLevel(f, "stressCopingLevel", base.StressCopingLevel)
	out.FamilySupportLevel = mergeLevel(f, "familySupportLevel", base.FamilySupportLevel)
	out.BullyingStatus = mergeString(f, "bullyingStatus", base.BullyingStatus)
	out.TeacherRelationshipQuality = mergeString(f, "teacherRelationshipQuality", base.TeacherRelationshipQuality)
	out.PeerRelationshipQuality = mergeString(f, "peerRelationshipQuality", base.PeerRelationshipQuality)
	out.ConflictResolutionSkills = mergeString(f, "conflictResolutionSkills", base.ConflictResolutionSkills)
	out.SocialActivities = mergeList(f, "socialActivities", base.SocialActivities)
	out.AdditionalNotes = mergeString(f, "additionalNotes", base.AdditionalNotes)
	out.AssessmentDate = mergeDate(f, "assessmentDate", base.AssessmentDate)
	out.AssessedBy = assessedBy

	return &out
}

func mergeTalentsProfile(existing *types.TalentsInterestsProfile, studentID uuid.UUID, f map[string]interface{}, assessedBy string) *types.TalentsInterestsProfile {
	base := existing
	if base == nil {
		base = &types.TalentsInterestsProfile{StudentID: studentID}
	}
	out := *base

	out.PrimaryInterests = mergeList(f, "primaryInterests", base.PrimaryInterests)
	out.TalentAreas = mergeList(f, "talentAreas", base.TalentAreas)
	out.ClubMemberships = mergeList(f, "clubMemberships", base.ClubMemberships)
	out.SportsActivities = mergeList(f, "sportsActivities", base.SportsActivities)
	out.ArtisticActivities = mergeList(f, "artisticActivities", base.ArtisticActivities)
	out.WeeklyActivityHours = mergeScore(f, "weeklyActivityHours", base.WeeklyActivityHours)
	out.AdditionalNotes = mergeString(f, "additionalNotes", base.AdditionalNotes)
	out.AssessmentDate = mergeDate(f, "assessmentDate", base.AssessmentDate)
	out.AssessedBy = assessedBy

	return &out
}
