package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/okulpusula/pusula-backend/internal/data/repos"
	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/domain/profiles"
	"github.com/okulpusula/pusula-backend/internal/domain/student"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	pkgerr "github.com/okulpusula/pusula-backend/internal/pkg/errors"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

const (
	QualityStatusExcellent  = "excellent"
	QualityStatusGood       = "good"
	QualityStatusFair       = "fair"
	QualityStatusPoor       = "poor"
	QualityStatusIncomplete = "incomplete"
)

// ProfileQualityReport grades one profile area. QualityScore is 70% critical
// field coverage, 30% optional coverage, minus 5 points per data issue,
// floored at 0.
type ProfileQualityReport struct {
	ProfileType           string   `json:"profile_type"`
	QualityScore          int      `json:"quality_score"`
	Status                string   `json:"status"`
	MissingCriticalFields []string `json:"missing_critical_fields"`
	MissingOptionalFields []string `json:"missing_optional_fields"`
	DataQualityIssues     []string `json:"data_quality_issues"`
	Recommendations       []string `json:"recommendations"`
}

type StudentQualityReport struct {
	StudentID        uuid.UUID              `json:"student_id"`
	OverallQuality   int                    `json:"overall_quality"`
	Profiles         []ProfileQualityReport `json:"profiles"`
	CriticalWarnings []string               `json:"critical_warnings"`
	ActionItems      []string               `json:"action_items"`
}

type QualityService interface {
	GenerateStudentQualityReport(ctx context.Context, studentID uuid.UUID) (*StudentQualityReport, error)
}

type qualityService struct {
	log *logger.Logger

	students  repos.StudentRepo
	health    repos.HealthProfileRepo
	academic  repos.AcademicProfileRepo
	social    repos.SocialEmotionalProfileRepo
	talents   repos.TalentsInterestsProfileRepo
	incidents repos.BehaviorIncidentRepo
}

type QualityDeps struct {
	Students  repos.StudentRepo
	Health    repos.HealthProfileRepo
	Academic  repos.AcademicProfileRepo
	Social    repos.SocialEmotionalProfileRepo
	Talents   repos.TalentsInterestsProfileRepo
	Incidents repos.BehaviorIncidentRepo
}

func NewQualityService(log *logger.Logger, deps QualityDeps) QualityService {
	return &qualityService{
		log:       log.With("service", "QualityService"),
		students:  deps.Students,
		health:    deps.Health,
		academic:  deps.Academic,
		social:    deps.Social,
		talents:   deps.Talents,
		incidents: deps.Incidents,
	}
}

func qualityStatus(score int) string {
	switch {
	case score >= 90:
		return QualityStatusExcellent
	case score >= 70:
		return QualityStatusGood
	case score >= 50:
		return QualityStatusFair
	case score > 0:
		return QualityStatusPoor
	default:
		return QualityStatusIncomplete
	}
}

func coverage(checks []fieldCheck) (float64, []string) {
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
	return float64(filled) / float64(len(checks)) * 100, missing
}

func evaluateProfile(profileType string, critical, optional []fieldCheck, issues, recs []string) ProfileQualityReport {
	criticalScore, missingCritical := coverage(critical)
	optionalScore, missingOptional := coverage(optional)

	score := int(math.Round(criticalScore*0.7+optionalScore*0.3)) - 5*len(issues)
	if score < 0 {
		score = 0
	}

	return ProfileQualityReport{
		ProfileType:           profileType,
		QualityScore:          score,
		Status:                qualityStatus(score),
		MissingCriticalFields: missingCritical,
		MissingOptionalFields: missingOptional,
		DataQualityIssues:     issues,
		Recommendations:       recs,
	}
}

func absentProfile(profileType string) ProfileQualityReport {
	return ProfileQualityReport{
		ProfileType:           profileType,
		QualityScore:          0,
		Status:                QualityStatusIncomplete,
		MissingCriticalFields: []string{profileType + " profile has never been created"},
		Recommendations:       []string{"Create the " + profileType + " profile to start tracking this area"},
	}
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)
)

func validateBasicInfo(s *types.Student) ProfileQualityReport {
	critical := []fieldCheck{
		{"firstName", s.FirstName != ""},
		{"lastName", s.LastName != ""},
		{"birthDate", s.BirthDate != nil},
		{"gradeLevel", s.GradeLevel != ""},
		{"className", s.ClassName != ""},
	}
	optional := []fieldCheck{
		{"gender", s.Gender != ""},
		{"email", s.Email != ""},
		{"phone", s.Phone != ""},
		{"address", s.Address != ""},
		{"enrollmentDate", s.EnrollmentDate != nil},
	}

	var issues []string
	if s.Email != "" && !emailPattern.MatchString(s.Email) {
		issues = append(issues, "email is not a valid address")
	}
	if s.Phone != "" && !phonePattern.MatchString(s.Phone) {
		issues = append(issues, "phone is not a valid number")
	}
	if s.BirthDate != nil && s.BirthDate.After(time.Now()) {
		issues = append(issues, "birthDate is in the future")
	}

	return evaluateProfile("basic_info", critical, optional, issues, nil)
}

func validateFamilyInfo(s *types.Student) ProfileQualityReport {
	critical := []fieldCheck{
		{"motherName", s.MotherName != ""},
		{"fatherName", s.FatherName != ""},
	}
	optional := []fieldCheck{
		{"motherPhone", s.MotherPhone != ""},
		{"fatherPhone", s.FatherPhone != ""},
		{"guardianNotes", s.GuardianNotes != ""},
	}

	var issues []string
	if s.MotherPhone != "" && !phonePattern.MatchString(s.MotherPhone) {
		issues = append(issues, "motherPhone is not a valid number")
	}
	if s.FatherPhone != "" && !phonePattern.MatchString(s.FatherPhone) {
		issues = append(issues, "fatherPhone is not a valid number")
	}

	var recs []string
	if s.MotherPhone == "" && s.FatherPhone == "" {
		recs = append(recs, "No parent contact number on file; collect at least one")
	}

	return evaluateProfile("family_info", critical, optional, issues, recs)
}

func validateHealthProfile(p *types.HealthProfile) ProfileQualityReport {
	if p == nil {
		return absentProfile("health")
	}
	critical := []fieldCheck{
		{"bloodType", p.BloodType != ""},
		{"emergencyContact1Name", p.EmergencyContact1Name != ""},
		{"emergencyContact1Phone", p.EmergencyContact1Phone != ""},
	}
	optional := []fieldCheck{
		{"chronicDiseases", jsonListLen(p.ChronicDiseases) > 0},
		{"allergies", jsonListLen(p.Allergies) > 0},
		{"currentMedications", jsonListLen(p.CurrentMedications) > 0},
		{"disabilityStatus", p.DisabilityStatus != ""},
		{"visionHearingIssues", p.VisionHearingIssues != ""},
		{"emergencyContact2Name", p.EmergencyContact2Name != ""},
	}

	var issues []string
	if p.EmergencyContact1Phone != "" && !phonePattern.MatchString(p.EmergencyContact1Phone) {
		issues = append(issues, "emergencyContact1Phone is not a valid number")
	}
	if p.EmergencyContact2Phone != "" && !phonePattern.MatchString(p.EmergencyContact2Phone) {
		issues = append(issues, "emergencyContact2Phone is not a valid number")
	}

	var recs []string
	if jsonListLen(p.ChronicDiseases) > 0 {
		recs = append(recs, "Chronic condition on file; schedule periodic health follow-up")
	}
	if p.EmergencyContact1Phone == "" {
		recs = append(recs, "Collect an emergency contact phone number")
	}

	return evaluateProfile("health", critical, optional, issues, recs)
}

func validateAcademicProfile(p *types.AcademicProfile) ProfileQualityReport {
	if p == nil {
		return absentProfile("academic")
	}
	critical := []fieldCheck{
		{"gradeAverage", p.GradeAverage != nil},
		{"strongSubjects", jsonListLen(p.StrongSubjects) > 0},
		{"weakSubjects", jsonListLen(p.WeakSubjects) > 0},
		{"overallMotivation", p.OverallMotivation != nil},
	}
	optional := []fieldCheck{
		{"studyHabits", jsonListLen(p.StudyHabits) > 0},
		{"homeworkCompletionRate", p.HomeworkCompletionRate != nil},
		{"learningStyle", p.LearningStyle != ""},
		{"academicGoals", p.AcademicGoals != ""},
		{"tutoringNeeds", p.TutoringNeeds != ""},
	}

	var issues []string
	if p.GradeAverage != nil && (*p.GradeAverage < 0 || *p.GradeAverage > 100) {
		issues = append(issues, "gradeAverage outside 0-100")
	}
	if p.HomeworkCompletionRate != nil && (*p.HomeworkCompletionRate < 0 || *p.HomeworkCompletionRate > 100) {
		issues = append(issues, "homeworkCompletionRate outside 0-100")
	}
	if p.OverallMotivation != nil && (*p.OverallMotivation < 1 || *p.OverallMotivation > 10) {
		issues = append(issues, "overallMotivation outside 1-10")
	}

	var recs []string
	if p.OverallMotivation != nil && *p.OverallMotivation <= 3 {
		recs = append(recs, "Motivation is very low; plan a motivation interview")
	}
	if p.HomeworkCompletionRate != nil && *p.HomeworkCompletionRate < 50 {
		recs = append(recs, "Homework completion under 50%; consider homework support")
	}
	if jsonListLen(p.WeakSubjects) >= 3 {
		recs = append(recs, "Three or more weak subjects; evaluate tutoring options")
	}

	return evaluateProfile("academic", critical, optional, issues, recs)
}

func validateSocialEmotionalProfile(p *types.SocialEmotionalProfile) ProfileQualityReport {
	if p == nil {
		return absentProfile("social_emotional")
	}
	critical := []fieldCheck{
		{"friendCircleSize", p.FriendCircleSize != ""},
		{"socialSkillsLevel", p.SocialSkillsLevel != nil},
		{"selfConfidenceLevel", p.SelfConfidenceLevel != nil},
		{"bullyingStatus", p.BullyingStatus != ""},
	}
	optional := []fieldCheck{
		{"friendCircleQuality", p.FriendCircleQuality != ""},
		{"empathyLevel", p.EmpathyLevel != nil},
		{"emotionalRegulationLevel", p.EmotionalRegulationLevel != nil},
		{"stressCopingLevel", p.StressCopingLevel != nil},
		{"familySupportLevel", p.FamilySupportLevel != nil},
		{"teacherRelationshipQuality", p.TeacherRelationshipQuality != ""},
		{"peerRelationshipQuality", p.PeerRelationshipQuality != ""},
		{"conflictResolutionSkills", p.ConflictResolutionSkills != ""},
		{"socialActivities", jsonListLen(p.SocialActivities) > 0},
	}

	var issues []string
	for _, lv := range []struct {
		name string
		val  *int
	}{
		{"socialSkillsLevel", p.SocialSkillsLevel},
		{"empathyLevel", p.EmpathyLevel},
		{"selfConfidenceLevel", p.SelfConfidenceLevel},
		{"emotionalRegulationLevel", p.EmotionalRegulationLevel},
		{"stressCopingLevel", p.StressCopingLevel},
		{"familySupportLevel", p.FamilySupportLevel},
	} {
		if lv.val != nil && (*lv.val < 1 || *lv.val > 10) {
			issues = append(issues, lv.name+" outside 1-10")
		}
	}

	var recs []string
	if p.BullyingStatus != "" && p.BullyingStatus != profiles.BullyingNone {
		recs = append(recs, "Bullying involvement on record; urgent counselor intervention needed")
	}
	if p.FriendCircleSize == profiles.FriendCircleNone || p.FriendCircleSize == profiles.FriendCircleSmall {
		recs = append(recs, "Friend circle is small or absent; consider a social support program")
	}
	if p.SelfConfidenceLevel != nil && *p.SelfConfidenceLevel <= 3 {
		recs = append(recs, "Self confidence is very low; plan confidence building activities")
	}

	return evaluateProfile("social_emotional", critical, optional, issues, recs)
}

func validateTalentsProfile(p *types.TalentsInterestsProfile) ProfileQualityReport {
	if p == nil {
		return absentProfile("talents_interests")
	}
	critical := []fieldCheck{
		{"primaryInterests", jsonListLen(p.PrimaryInterests) > 0},
	}
	optional := []fieldCheck{
		{"talentAreas", jsonListLen(p.TalentAreas) > 0},
		{"clubMemberships", jsonListLen(p.ClubMemberships) > 0},
		{"sportsActivities", jsonListLen(p.SportsActivities) > 0},
		{"artisticActivities", jsonListLen(p.ArtisticActivities) > 0},
		{"weeklyActivityHours", p.WeeklyActivityHours != nil},
	}

	var issues []string
	if p.WeeklyActivityHours != nil && (*p.WeeklyActivityHours < 0 || *p.WeeklyActivityHours > 100) {
		issues = append(issues, "weeklyActivityHours outside 0-100")
	}

	var recs []string
	if jsonListLen(p.PrimaryInterests) == 0 {
		recs = append(recs, "No interests recorded; run interest discovery activities")
	}

	return evaluateProfile("talents_interests", critical, optional, issues, recs)
}

// validateBehavioralRecords grades documentation quality of incident records.
// A student with no incidents has nothing to document and scores clean.
func validateBehavioralRecords(incidents []*types.BehaviorIncident) ProfileQualityReport {
	if len(incidents) == 0 {
		return ProfileQualityReport{
			ProfileType:  "behavioral",
			QualityScore: 100,
			Status:       QualityStatusExcellent,
		}
	}

	var critical, optional []fieldCheck
	var issues []string
	for i, inc := range incidents {
		prefix := fmt.Sprintf("incident %d: ", i+1)
		critical = append(critical,
			fieldCheck{prefix + "incidentDate", inc.IncidentDate != nil},
			fieldCheck{prefix + "incidentType", inc.IncidentType != ""},
			fieldCheck{prefix + "description", inc.Description != ""},
		)
		optional = append(optional,
			fieldCheck{prefix + "actionTaken", inc.ActionTaken != ""},
			fieldCheck{prefix + "location", inc.Location != ""},
		)
		switch inc.Severity {
		case "", student.IncidentSeverityLow, student.IncidentSeverityMedium, student.IncidentSeverityHigh:
		default:
			issues = append(issues, prefix+"unknown severity "+inc.Severity)
		}
	}

	var recs []string
	for _, inc := range incidents {
		if inc.Severity == student.IncidentSeverityHigh && inc.ActionTaken == "" {
			recs = append(recs, "High severity incident without a recorded action; document the follow-up")
			break
		}
	}

	return evaluateProfile("behavioral", critical, optional, issues, recs)
}

func (s *qualityService) GenerateStudentQualityReport(ctx context.Context, studentID uuid.UUID) (*StudentQualityReport, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}

	dbc := dbctx.Context{Ctx: ctx}
	st, err := s.students.GetByID(dbc, studentID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("student %s: %w", studentID, pkgerr.ErrNotFound)
	}

	hp, err := s.health.GetByStudentID(dbc, studentID)
	if err != nil {
		return nil, err
	}
	ap, err := s.academic.GetByStudentID(dbc, studentID)
	if err != nil {
		return nil, err
	}
	sp, err := s.social.GetByStudentID(dbc, studentID)
	if err != nil {
		return nil, err
	}
	tp, err := s.talents.GetByStudentID(dbc, studentID)
	if err != nil {
		return nil, err
	}
	incidents, err := s.incidents.ListByStudentID(dbc, studentID)
	if err != nil {
		return nil, err
	}

	report := &StudentQualityReport{
		StudentID: studentID,
		Profiles: []ProfileQualityReport{
			validateBasicInfo(st),
			validateFamilyInfo(st),
			validateHealthProfile(hp),
			validateAcademicProfile(ap),
			validateSocialEmotionalProfile(sp),
			validateTalentsProfile(tp),
			validateBehavioralRecords(incidents),
		},
	}

	sum := 0
	for _, p := range report.Profiles {
		sum += p.QualityScore
		for _, f := range p.MissingCriticalFields {
			report.CriticalWarnings = append(report.CriticalWarnings, "["+p.ProfileType+"] missing critical field: "+f)
		}
		for _, issue := range p.DataQualityIssues {
			report.CriticalWarnings = append(report.CriticalWarnings, "["+p.ProfileType+"] "+issue)
		}
		for _, rec := range p.Recommendations {
			report.ActionItems = append(report.ActionItems, "["+p.ProfileType+"] "+rec)
		}
	}
	report.OverallQuality = int(math.Round(float64(sum) / float64(len(report.Profiles))))

	s.log.Info("Quality report generated",
		"student_id", studentID.String(),
		"overall", report.OverallQuality,
		"warnings", len(report.CriticalWarnings),
	)
	return report, nil
}
