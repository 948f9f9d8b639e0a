package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	rediscache "github.com/okulpusula/pusula-backend/internal/clients/redis"
	"github.com/okulpusula/pusula-backend/internal/data/repos"
	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/domain/profiles"
	"github.com/okulpusula/pusula-backend/internal/domain/student"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	pkgerr "github.com/okulpusula/pusula-backend/internal/pkg/errors"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

// UnifiedScoreSet is one full scoring run. All five scores are integers in
// [0, 100]; Details carries the per-signal breakdown behind each one.
type UnifiedScoreSet struct {
	StudentID            uuid.UUID                     `json:"student_id"`
	AcademicScore        int                           `json:"academic_score"`
	SocialEmotionalScore int                           `json:"social_emotional_score"`
	BehaviorScore        int                           `json:"behavior_score"`
	MotivationScore      int                           `json:"motivation_score"`
	RiskScore            int                           `json:"risk_score"`
	Details              map[string]map[string]float64 `json:"details"`
	LastUpdated          time.Time                     `json:"last_updated"`
}

type DomainCompleteness struct {
	Domain        string   `json:"domain"`
	Score         int      `json:"score"`
	MissingFields []string `json:"missing_fields"`
}

type CompletenessReport struct {
	StudentID uuid.UUID            `json:"student_id"`
	Overall   int                  `json:"overall"`
	Domains   []DomainCompleteness `json:"domains"`
}

type StudentComparison struct {
	StudentID uuid.UUID        `json:"student_id"`
	Name      string           `json:"name"`
	Scores    *UnifiedScoreSet `json:"scores"`
}

// ScoringService computes the unified score set, profile completeness and
// multi-student comparisons. Formulas are pure functions of stored profile
// data: same input, same output, no model calls.
type ScoringService interface {
	CalculateUnifiedScores(ctx context.Context, studentID uuid.UUID) (*UnifiedScoreSet, error)
	SaveAggregateScores(ctx context.Context, studentID uuid.UUID) (*UnifiedScoreSet, error)
	CalculateProfileCompleteness(ctx context.Context, studentID uuid.UUID) (*CompletenessReport, error)
	CompareStudents(ctx context.Context, studentIDs []uuid.UUID) ([]StudentComparison, error)
}

type scoringService struct {
	log   *logger.Logger
	cache rediscache.ScoreCache
	sf    singleflight.Group

	students  repos.StudentRepo
	health    repos.HealthProfileRepo
	academic  repos.AcademicProfileRepo
	social    repos.SocialEmotionalProfileRepo
	talents   repos.TalentsInterestsProfileRepo
	incidents repos.BehaviorIncidentRepo
	scores    repos.UnifiedScoreRepo
}

type ScoringDeps struct {
	Cache rediscache.ScoreCache

	Students  repos.StudentRepo
	Health    repos.HealthProfileRepo
	Academic  repos.AcademicProfileRepo
	Social    repos.SocialEmotionalProfileRepo
	Talents   repos.TalentsInterestsProfileRepo
	Incidents repos.BehaviorIncidentRepo
	Scores    repos.UnifiedScoreRepo
}

func NewScoringService(log *logger.Logger, deps ScoringDeps) ScoringService {
	return &scoringService{
		log:       log.With("service", "ScoringService"),
		cache:     deps.Cache,
		students:  deps.Students,
		health:    deps.Health,
		academic:  deps.Academic,
		social:    deps.Social,
		talents:   deps.Talents,
		incidents: deps.Incidents,
		scores:    deps.Scores,
	}
}

// profileBundle is everything a scoring run reads.
type profileBundle struct {
	student   *types.Student
	health    *types.HealthProfile
	academic  *types.AcademicProfile
	social    *types.SocialEmotionalProfile
	talents   *types.TalentsInterestsProfile
	incidents []*types.BehaviorIncident
}

func (s *scoringService) loadBundle(ctx context.Context, studentID uuid.UUID) (*profileBundle, error) {
	dbc := dbctx.Context{Ctx: ctx}

	st, err := s.students.GetByID(dbc, studentID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("student %s: %w", studentID, pkgerr.ErrNotFound)
	}

	b := &profileBundle{student: st}
	if b.health, err = s.health.GetByStudentID(dbc, studentID); err != nil {
		return nil, err
	}
	if b.academic, err = s.academic.GetByStudentID(dbc, studentID); err != nil {
		return nil, err
	}
	if b.social, err = s.social.GetByStudentID(dbc, studentID); err != nil {
		return nil, err
	}
	if b.talents, err = s.talents.GetByStudentID(dbc, studentID); err != nil {
		return nil, err
	}
	if b.incidents, err = s.incidents.ListByStudentID(dbc, studentID); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *scoringService) CalculateUnifiedScores(ctx context.Context, studentID uuid.UUID) (*UnifiedScoreSet, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, studentID); ok {
			var set UnifiedScoreSet
			if err := json.Unmarshal(raw, &set); err == nil {
				return &set, nil
			}
		}
	}

	v, err, _ := s.sf.Do(studentID.String(), func() (interface{}, error) {
		bundle, err := s.loadBundle(ctx, studentID)
		if err != nil {
			return nil, err
		}
		set := computeScores(bundle)
		if s.cache != nil {
			if raw, mErr := json.Marshal(set); mErr == nil {
				s.cache.Set(ctx, studentID, raw)
			}
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*UnifiedScoreSet), nil
}

func (s *scoringService) SaveAggregateScores(ctx context.Context, studentID uuid.UUID) (*UnifiedScoreSet, error) {
	bundle, err := s.loadBundle(ctx, studentID)
	if err != nil {
		return nil, err
	}
	set := computeScores(bundle)

	details, err := json.Marshal(set.Details)
	if err != nil {
		return nil, err
	}
	row := &types.UnifiedScore{
		StudentID:            studentID,
		AcademicScore:        set.AcademicScore,
		SocialEmotionalScore: set.SocialEmotionalScore,
		BehaviorScore:        set.BehaviorScore,
		MotivationScore:      set.MotivationScore,
		RiskScore:            set.RiskScore,
		Details:              details,
		LastUpdated:          set.LastUpdated,
	}
	if err := s.scores.Upsert(dbctx.Context{Ctx: ctx}, row); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, mErr := json.Marshal(set); mErr == nil {
			s.cache.Set(ctx, studentID, raw)
		}
	}

	s.log.Info("Aggregate scores saved",
		"student_id", studentID.String(),
		"academic", set.AcademicScore,
		"social_emotional", set.SocialEmotionalScore,
		"behavior", set.BehaviorScore,
		"motivation", set.MotivationScore,
		"risk", set.RiskScore,
	)
	return set, nil
}

func (s *scoringService) CompareStudents(ctx context.Context, studentIDs []uuid.UUID) ([]StudentComparison, error) {
	if len(studentIDs) < 2 {
		return nil, fmt.Errorf("at least two students required: %w", pkgerr.ErrInvalidArgument)
	}

	out := make([]StudentComparison, len(studentIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range studentIDs {
		i, id := i, id
		g.Go(func() error {
			st, err := s.students.GetByID(dbctx.Context{Ctx: gctx}, id)
			if err != nil {
				return err
			}
			if st == nil {
				return fmt.Errorf("student %s: %w", id, pkgerr.ErrNotFound)
			}
			set, err := s.CalculateUnifiedScores(gctx, id)
			if err != nil {
				return err
			}
			out[i] = StudentComparison{
				StudentID: id,
				Name:      st.FirstName + " " + st.LastName,
				Scores:    set,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- score formulas ----

func roundScore(v float64) int {
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}

func computeScores(b *profileBundle) *UnifiedScoreSet {
	set := &UnifiedScoreSet{
		StudentID:   b.student.ID,
		Details:     map[string]map[string]float64{},
		LastUpdated: time.Now().UTC(),
	}

	set.AcademicScore = academicScore(b.academic, set.Details)
	set.SocialEmotionalScore = socialEmotionalScore(b.social, set.Details)
	set.BehaviorScore = behaviorScore(b.incidents, set.Details)
	set.MotivationScore = motivationScore(b.academic, b.talents, set.Details)
	set.RiskScore = riskScore(b, set.Details)

	return set
}

// academicScore weighs grade average highest, then homework completion,
// self-reported motivation and the strong/weak subject balance.
func academicScore(p *types.AcademicProfile, details map[string]map[string]float64) int {
	d := map[string]float64{}
	details["academic"] = d
	if p == nil {
		return 0
	}

	grade := floatOrZero(p.GradeAverage)
	homework := floatOrZero(p.HomeworkCompletionRate)
	motivation := float64(intOrZero(p.OverallMotivation)) * 10

	balance := 50 + 5*float64(jsonListLen(p.StrongSubjects)-jsonListLen(p.WeakSubjects))
	balance = clampFloat(balance, 0, 100)

	d["grade_average"] = grade
	d["homework_completion"] = homework
	d["motivation"] = motivation
	d["subject_balance"] = balance

	return roundScore(grade*0.40 + homework*0.25 + motivation*0.20 + balance*0.15)
}

// socialEmotionalScore starts from the mean of the reported 1-10 levels and
// adjusts for friend circle size and bullying involvement.
func socialEmotionalScore(p *types.SocialEmotionalProfile, details map[string]map[string]float64) int {
	d := map[string]float64{}
	details["social_emotional"] = d
	if p == nil {
		return 0
	}

	levels := []*int{
		p.SocialSkillsLevel,
		p.EmpathyLevel,
		p.SelfConfidenceLevel,
		p.EmotionalRegulationLevel,
		p.StressCopingLevel,
		p.FamilySupportLevel,
	}
	sum, n := 0, 0
	for _, lv := range levels {
		if lv != nil {
			sum += *lv
			n++
		}
	}
	base := 0.0
	if n > 0 {
		base = float64(sum) / float64(n) * 10
	}
	d["level_mean"] = base

	adj := 0.0
	switch p.FriendCircleSize {
	case profiles.FriendCircleNone:
		adj -= 10
	case profiles.FriendCircleSmall:
		adj -= 5
	case profiles.FriendCircleMedium:
		adj += 5
	case profiles.FriendCircleLarge:
		adj += 10
	}
	switch p.BullyingStatus {
	case profiles.BullyingVictim:
		adj -= 15
	case profiles.BullyingPerpetrator:
		adj -= 20
	case profiles.BullyingWitness:
		adj -= 5
	}
	d["adjustments"] = adj

	return roundScore(base + adj)
}

var incidentPenalty = map[string]float64{
	student.IncidentSeverityLow:    5,
	student.IncidentSeverityMedium: 12,
	student.IncidentSeverityHigh:   25,
}

// behaviorScore starts at 100 and subtracts a penalty per incident. No
// incidents means a clean 100.
func behaviorScore(incidents []*types.BehaviorIncident, details map[string]map[string]float64) int {
	d := map[string]float64{}
	details["behavior"] = d

	penalty := 0.0
	for _, inc := range incidents {
		p, ok := incidentPenalty[inc.Severity]
		if !ok {
			p = incidentPenalty[student.IncidentSeverityLow]
		}
		penalty += p
	}
	d["incident_count"] = float64(len(incidents))
	d["penalty"] = penalty

	return roundScore(100 - penalty)
}

// motivationScore blends self-reported motivation, homework follow-through
// and activity engagement from the talents profile.
func motivationScore(ap *types.AcademicProfile, tp *types.TalentsInterestsProfile, details map[string]map[string]float64) int {
	d := map[string]float64{}
	details["motivation"] = d
	if ap == nil && tp == nil {
		return 0
	}

	motivation := 0.0
	homework := 0.0
	if ap != nil {
		motivation = float64(intOrZero(ap.OverallMotivation)) * 10
		homework = floatOrZero(ap.HomeworkCompletionRate)
	}

	engagement := 0.0
	if tp != nil {
		engagement = 15*float64(jsonListLen(tp.PrimaryInterests)+jsonListLen(tp.ClubMemberships)) +
			2.5*floatOrZero(tp.WeeklyActivityHours)
		engagement = clampFloat(engagement, 0, 100)
	}

	d["self_reported"] = motivation
	d["homework_completion"] = homework
	d["activity_engagement"] = engagement

	return roundScore(motivation*0.5 + homework*0.3 + engagement*0.2)
}

// riskScore is additive: each risk signal contributes a fixed amount, capped
// at 100. Higher means more at risk.
func riskScore(b *profileBundle, details map[string]map[string]float64) int {
	d := map[string]float64{}
	details["risk"] = d

	total := 0.0
	for _, inc := range b.incidents {
		p, ok := incidentPenalty[inc.Severity]
		if !ok {
			p = incidentPenalty[student.IncidentSeverityLow]
		}
		total += p
	}
	d["incidents"] = total

	if b.social != nil {
		social := 0.0
		switch b.social.BullyingStatus {
		case profiles.BullyingVictim:
			social += 15
		case profiles.BullyingPerpetrator:
			social += 20
		}
		if lv := b.social.FamilySupportLevel; lv != nil && *lv <= 3 {
			social += 15
		}
		if lv := b.social.SelfConfidenceLevel; lv != nil && *lv <= 3 {
			social += 10
		}
		d["social_emotional"] = social
		total += social
	}

	if b.academic != nil {
		academic := 0.0
		if g := b.academic.GradeAverage; g != nil && *g < 50 {
			academic += 15
		}
		if h := b.academic.HomeworkCompletionRate; h != nil && *h < 50 {
			academic += 10
		}
		d["academic"] = academic
		total += academic
	}

	if b.health != nil && jsonListLen(b.health.ChronicDiseases) > 0 {
		d["health"] = 5
		total += 5
	}

	return roundScore(total)
}

func floatOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func jsonListLen(raw []byte) int {
	if len(raw) == 0 {
		return 0
	}
	var lst []interface{}
	if err := json.Unmarshal(raw, &lst); err != nil {
		return 0
	}
	return len(lst)
}
