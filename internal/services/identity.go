package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okulpusula/pusula-backend/internal/data/repos"
	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/domain/scoring"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	pkgerr "github.com/okulpusula/pusula-backend/internal/pkg/errors"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

// IdentityService synthesizes the "who is this student" summary from the
// merged profiles. Sub-scores come from the language model and may diverge
// from the deterministic unified scores; that is expected, the two answer
// different questions.
type IdentityService interface {
	Refresh(ctx context.Context, studentID uuid.UUID) (*types.UnifiedStudentIdentity, error)
	Get(ctx context.Context, studentID uuid.UUID) (*types.UnifiedStudentIdentity, error)
}

type identityService struct {
	log *logger.Logger
	ai  AIClient

	students   repos.StudentRepo
	health     repos.HealthProfileRepo
	academic   repos.AcademicProfileRepo
	social     repos.SocialEmotionalProfileRepo
	talents    repos.TalentsInterestsProfileRepo
	incidents  repos.BehaviorIncidentRepo
	identities repos.IdentityRepo
}

type IdentityDeps struct {
	AI AIClient

	Students   repos.StudentRepo
	Health     repos.HealthProfileRepo
	Academic   repos.AcademicProfileRepo
	Social     repos.SocialEmotionalProfileRepo
	Talents    repos.TalentsInterestsProfileRepo
	Incidents  repos.BehaviorIncidentRepo
	Identities repos.IdentityRepo
}

func NewIdentityService(log *logger.Logger, deps IdentityDeps) IdentityService {
	return &identityService{
		log:        log.With("service", "IdentityService"),
		ai:         deps.AI,
		students:   deps.Students,
		health:     deps.Health,
		academic:   deps.Academic,
		social:     deps.Social,
		talents:    deps.Talents,
		incidents:  deps.Incidents,
		identities: deps.Identities,
	}
}

const identitySystemPrompt = `You are a school guidance counselor synthesizing
one student's merged profile data into a short identity summary. Write the
summary in Turkish, 3-5 sentences, concrete and free of speculation. Score the
five identity dimensions 0-100 based only on the data given, and set the risk
priority to low, medium or high.`

var identitySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"summary":             map[string]any{"type": "string"},
		"academic_identity":   map[string]any{"type": "integer"},
		"social_identity":     map[string]any{"type": "integer"},
		"emotional_identity":  map[string]any{"type": "integer"},
		"interest_identity":   map[string]any{"type": "integer"},
		"motivation_identity": map[string]any{"type": "integer"},
		"risk_priority":       map[string]any{"type": "string"},
	},
	"required": []string{
		"summary", "academic_identity", "social_identity", "emotional_identity",
		"interest_identity", "motivation_identity", "risk_priority",
	},
	"additionalProperties": false,
}

func (s *identityService) Get(ctx context.Context, studentID uuid.UUID) (*types.UnifiedStudentIdentity, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}
	return s.identities.GetByStudentID(dbctx.Context{Ctx: ctx}, studentID)
}

func (s *identityService) Refresh(ctx context.Context, studentID uuid.UUID) (*types.UnifiedStudentIdentity, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}
	if s.ai == nil {
		return nil, fmt.Errorf("identity synthesis unavailable: no AI client configured")
	}

	dbc := dbctx.Context{Ctx: ctx}
	st, err := s.students.GetByID(dbc, studentID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("student %s: %w", studentID, pkgerr.ErrNotFound)
	}

	input, err := s.buildInput(dbc, st)
	if err != nil {
		return nil, err
	}

	obj, err := s.ai.GenerateJSON(ctx, identitySystemPrompt, input, "student_identity", identitySchema)
	if err != nil {
		return nil, fmt.Errorf("identity synthesis: %w", err)
	}

	row := &types.UnifiedStudentIdentity{
		StudentID:         studentID,
		LastSynthesizedAt: time.Now().UTC(),
	}
	row.Summary, _ = obj["summary"].(string)
	row.AcademicIdentity = intFromJSON(obj["academic_identity"])
	row.SocialIdentity = intFromJSON(obj["social_identity"])
	row.EmotionalIdentity = intFromJSON(obj["emotional_identity"])
	row.InterestIdentity = intFromJSON(obj["interest_identity"])
	row.MotivationIdentity = intFromJSON(obj["motivation_identity"])
	row.RiskPriority = normalizeRiskPriority(obj["risk_priority"])

	if err := s.identities.Upsert(dbc, row); err != nil {
		return nil, err
	}

	s.log.Info("Identity refreshed",
		"student_id", studentID.String(),
		"risk_priority", row.RiskPriority,
	)
	return row, nil
}

func (s *identityService) buildInput(dbc dbctx.Context, st *types.Student) (string, error) {
	payload := map[string]any{
		"grade_level": st.GradeLevel,
		"class_name":  st.ClassName,
		"gender":      st.Gender,
	}

	if hp, err := s.health.GetByStudentID(dbc, st.ID); err != nil {
		return "", err
	} else if hp != nil {
		payload["health"] = hp
	}
	if ap, err := s.academic.GetByStudentID(dbc, st.ID); err != nil {
		return "", err
	} else if ap != nil {
		payload["academic"] = ap
	}
	if sp, err := s.social.GetByStudentID(dbc, st.ID); err != nil {
		return "", err
	} else if sp != nil {
		payload["social_emotional"] = sp
	}
	if tp, err := s.talents.GetByStudentID(dbc, st.ID); err != nil {
		return "", err
	} else if tp != nil {
		payload["talents_interests"] = tp
	}
	if incidents, err := s.incidents.ListByStudentID(dbc, st.ID); err != nil {
		return "", err
	} else if len(incidents) > 0 {
		payload["behavior_incidents"] = incidents
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func intFromJSON(v any) int {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	n := int(f)
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func normalizeRiskPriority(v any) string {
	s, _ := v.(string)
	switch s {
	case scoring.RiskPriorityLow, scoring.RiskPriorityMedium, scoring.RiskPriorityHigh:
		return s
	}
	return scoring.RiskPriorityLow
}
