package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/okulpusula/pusula-backend/internal/clients/redis"
	"github.com/okulpusula/pusula-backend/internal/data/repos"
	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/domain/profiles"
	"github.com/okulpusula/pusula-backend/internal/normalization"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	"github.com/okulpusula/pusula-backend/internal/pkg/envutil"
	pkgerr "github.com/okulpusula/pusula-backend/internal/pkg/errors"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

// AutoApplyConfidence is the minimum extraction confidence for writing
// directly to authoritative profiles. Anything below it is queued as a
// suggestion for counselor approval.
const AutoApplyConfidence = 0.70

type ObservationInput struct {
	StudentID   uuid.UUID
	Source      string
	SourceID    string
	RawData     string
	ProcessedBy string
}

const (
	DomainStatusUpdated = "updated"
	DomainStatusLogged  = "logged"
	DomainStatusSkipped = "skipped"
	DomainStatusFailed  = "failed"
)

type DomainOutcome struct {
	Domain profiles.Domain `json:"domain"`
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
}

type ObservationResult struct {
	Valid              bool             `json:"valid"`
	Message            string           `json:"message,omitempty"`
	Confidence         float64          `json:"confidence"`
	Suggested          bool             `json:"suggested"`
	Domains            []DomainOutcome  `json:"domains"`
	ResolvedConflicts  []types.Conflict `json:"resolved_conflicts"`
	EscalatedConflicts []types.Conflict `json:"escalated_conflicts"`
}

// FusionService runs the full observation pipeline: extraction, validation
// gate, per-domain mapping and merge, conflict resolution, identity refresh
// and the append-only sync log. Updates to the same student are serialized;
// different students proceed in parallel.
type FusionService interface {
	ProcessObservation(ctx context.Context, in ObservationInput) (*ObservationResult, error)
	UpdateDomain(ctx context.Context, studentID uuid.UUID, domain profiles.Domain, insights map[string]interface{}, processedBy string) error
	ListSyncLogs(ctx context.Context, studentID uuid.UUID, limit int) ([]*types.ProfileSyncLog, error)
}

type fusionService struct {
	log       *logger.Logger
	extractor ExtractionService
	resolver  ConflictResolver
	suggest   SuggestionService
	identity  IdentityService
	notifier  NotifierService
	cache     redis.ScoreCache

	students repos.StudentRepo
	health   repos.HealthProfileRepo
	academic repos.AcademicProfileRepo
	social   repos.SocialEmotionalProfileRepo
	talents  repos.TalentsInterestsProfileRepo
	syncLogs repos.SyncLogRepo

	confidenceGate float64
	locks          studentLocks
}

type FusionDeps struct {
	Extractor ExtractionService
	Resolver  ConflictResolver
	Suggest   SuggestionService
	Identity  IdentityService
	Notifier  NotifierService
	Cache     redis.ScoreCache

	Students repos.StudentRepo
	Health   repos.HealthProfileRepo
	Academic repos.AcademicProfileRepo
	Social   repos.SocialEmotionalProfileRepo
	Talents  repos.TalentsInterestsProfileRepo
	SyncLogs repos.SyncLogRepo
}

func NewFusionService(log *logger.Logger, deps FusionDeps) FusionService {
	gate := envutil.Float("AUTO_APPLY_CONFIDENCE", AutoApplyConfidence)
	if gate < 0 || gate > 1 {
		gate = AutoApplyConfidence
	}
	return &fusionService{
		log:            log.With("service", "FusionService"),
		extractor:      deps.Extractor,
		resolver:       deps.Resolver,
		suggest:        deps.Suggest,
		identity:       deps.Identity,
		notifier:       deps.Notifier,
		cache:          deps.Cache,
		students:       deps.Students,
		health:         deps.Health,
		academic:       deps.Academic,
		social:         deps.Social,
		talents:        deps.Talents,
		syncLogs:       deps.SyncLogs,
		confidenceGate: gate,
	}
}

// studentLocks hands out one mutex per student id. Entries are never evicted;
// the map is bounded by the school's student count.
type studentLocks struct {
	mu sync.Mutex
	m  map[uuid.UUID]*sync.Mutex
}

func (l *studentLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[uuid.UUID]*sync.Mutex)
	}
	sm, ok := l.m[id]
	if !ok {
		sm = &sync.Mutex{}
		l.m[id] = sm
	}
	l.mu.Unlock()

	sm.Lock()
	return sm.Unlock
}

func (s *fusionService) ProcessObservation(ctx context.Context, in ObservationInput) (*ObservationResult, error) {
	if in.StudentID == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}
	if in.Source == "" {
		in.Source = "observation"
	}
	if in.ProcessedBy == "" {
		in.ProcessedBy = types.AssessedByAutoSync
	}

	student, err := s.students.GetByID(dbctx.Context{Ctx: ctx}, in.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("student %s: %w", in.StudentID, pkgerr.ErrNotFound)
	}

	unlock := s.locks.lock(in.StudentID)
	defer unlock()

	current, err := s.currentSnapshot(ctx, student)
	if err != nil {
		return nil, err
	}

	ext, err := s.extractor.Extract(ctx, in.Source, in.RawData, current)
	if err != nil {
		return nil, fmt.Errorf("observation extraction: %w", err)
	}

	if !ext.IsValid {
		s.log.Info("Observation rejected",
			"student_id", in.StudentID.String(),
			"source", in.Source,
			"reasoning", ext.Reasoning,
		)
		return &ObservationResult{
			Valid:   false,
			Message: "Veri doğrulama başarısız: " + ext.Reasoning,
		}, nil
	}

	result := &ObservationResult{
		Valid:              true,
		Confidence:         ext.Confidence,
		ResolvedConflicts:  []types.Conflict{},
		EscalatedConflicts: []types.Conflict{},
	}

	// Conflicts are partitioned up front: fields under a high severity
	// conflict are withheld from the merge and routed to review instead.
	result.ResolvedConflicts = s.resolver.Resolve(ext.Conflicts)
	result.EscalatedConflicts = s.resolver.Escalated(ext.Conflicts)
	withheld := make(map[string]bool, len(result.EscalatedConflicts))
	for _, c := range result.EscalatedConflicts {
		withheld[c.Field] = true
	}

	if ext.Confidence < s.confidenceGate {
		if _, sErr := s.suggest.EnqueueFromInsights(ctx, in.StudentID, in.Source, in.SourceID, ext.Reasoning, ext.Confidence, ext.ExtractedInsights); sErr != nil {
			return nil, fmt.Errorf("suggestion enqueue: %w", sErr)
		}
		result.Suggested = true
		result.Message = "Güven skoru düşük; değişiklikler onay kuyruğuna alındı"
	} else {
		meta := syncMeta{
			source:      in.Source,
			sourceID:    in.SourceID,
			confidence:  ext.Confidence,
			reasoning:   ext.Reasoning,
			processedBy: in.ProcessedBy,
			withheld:    withheld,
		}
		updated := false
		for _, domain := range dedupeDomains(ext.SuggestedDomains) {
			status, dErr := s.updateDomain(ctx, in.StudentID, domain, ext.ExtractedInsights, meta)
			outcome := DomainOutcome{Domain: domain, Status: status}
			if dErr != nil {
				outcome.Status = DomainStatusFailed
				outcome.Error = dErr.Error()
				s.log.Error("Domain merge failed",
					"student_id", in.StudentID.String(),
					"domain", string(domain),
					"error", dErr.Error(),
				)
			}
			if outcome.Status == DomainStatusUpdated {
				updated = true
			}
			result.Domains = append(result.Domains, outcome)
		}

		if updated {
			if s.cache != nil {
				s.cache.Invalidate(ctx, in.StudentID)
			}
			if s.identity != nil {
				if _, iErr := s.identity.Refresh(ctx, in.StudentID); iErr != nil {
					s.log.Warn("Identity refresh failed", "student_id", in.StudentID.String(), "error", iErr.Error())
				}
			}
		}
	}

	if len(result.EscalatedConflicts) > 0 {
		if _, sErr := s.suggest.EnqueueFromConflicts(ctx, in.StudentID, in.Source, in.SourceID, result.EscalatedConflicts); sErr != nil {
			s.log.Error("Conflict suggestion enqueue failed", "student_id", in.StudentID.String(), "error", sErr.Error())
		}
		if s.notifier != nil {
			if nErr := s.notifier.NotifyConflictEscalation(ctx, student, result.EscalatedConflicts); nErr != nil {
				s.log.Warn("Conflict escalation notify failed", "student_id", in.StudentID.String(), "error", nErr.Error())
			}
		}
	}

	return result, nil
}

func (s *fusionService) UpdateDomain(ctx context.Context, studentID uuid.UUID, domain profiles.Domain, insights map[string]interface{}, processedBy string) error {
	if studentID == uuid.Nil {
		return fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}
	if processedBy == "" {
		processedBy = types.AssessedByAutoSync
	}

	unlock := s.locks.lock(studentID)
	defer unlock()

	status, err := s.updateDomain(ctx, studentID, domain, insights, syncMeta{
		source:      "manual",
		processedBy: processedBy,
	})
	if err != nil {
		return err
	}
	if status == DomainStatusUpdated && s.cache != nil {
		s.cache.Invalidate(ctx, studentID)
	}
	return nil
}

func (s *fusionService) ListSyncLogs(ctx context.Context, studentID uuid.UUID, limit int) ([]*types.ProfileSyncLog, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}
	return s.syncLogs.ListByStudentID(dbctx.Context{Ctx: ctx}, studentID, limit)
}

type syncMeta struct {
	source      string
	sourceID    string
	confidence  float64
	reasoning   string
	processedBy string
	withheld    map[string]bool
}

// updateDomain maps one insight set onto one domain and merges the result.
// Empty mappings are a silent no-op: no profile write and no sync log row.
func (s *fusionService) updateDomain(ctx context.Context, studentID uuid.UUID, domain profiles.Domain, insights map[string]interface{}, meta syncMeta) (string, error) {
	if !domain.Valid() {
		return DomainStatusFailed, fmt.Errorf("unknown domain %q: %w", domain, pkgerr.ErrInvalidArgument)
	}

	mapped := normalization.MapInsightsToFields(domain, insights)
	for field := range meta.withheld {
		delete(mapped.Fields, field)
	}
	s.log.Info("Insights mapped",
		"student_id", studentID.String(),
		"domain", string(domain),
		"mapped", len(mapped.Fields),
		"unmapped", len(mapped.Unmapped),
	)

	if mapped.Empty() {
		return DomainStatusSkipped, nil
	}

	dbc := dbctx.Context{Ctx: ctx}

	if !domain.Materialized() {
		// Accepted but not yet backed by its own table. The insights stay
		// visible through the sync log until the table lands.
		if err := s.appendSyncLog(dbc, studentID, domain, DomainStatusLogged, insights, meta); err != nil {
			return DomainStatusFailed, err
		}
		return DomainStatusLogged, nil
	}

	switch domain {
	case types.DomainHealth:
		existing, err := s.health.GetByStudentID(dbc, studentID)
		if err != nil {
			return DomainStatusFailed, err
		}
		if err := s.health.Upsert(dbc, mergeHealthProfile(existing, studentID, mapped.Fields, meta.processedBy)); err != nil {
			return DomainStatusFailed, err
		}
	case types.DomainAcademic:
		existing, err := s.academic.GetByStudentID(dbc, studentID)
		if err != nil {
			return DomainStatusFailed, err
		}
		if err := s.academic.Upsert(dbc, mergeAcademicProfile(existing, studentID, mapped.Fields, meta.processedBy)); err != nil {
			return DomainStatusFailed, err
		}
	case types.DomainSocialEmotional:
		existing, err := s.social.GetByStudentID(dbc, studentID)
		if err != nil {
			return DomainStatusFailed, err
		}
		if err := s.social.Upsert(dbc, mergeSocialEmotionalProfile(existing, studentID, mapped.Fields, meta.processedBy)); err != nil {
			return DomainStatusFailed, err
		}
	case types.DomainTalentsInterest:
		existing, err := s.talents.GetByStudentID(dbc, studentID)
		if err != nil {
			return DomainStatusFailed, err
		}
		if err := s.talents.Upsert(dbc, mergeTalentsProfile(existing, studentID, mapped.Fields, meta.processedBy)); err != nil {
			return DomainStatusFailed, err
		}
	}

	if err := s.appendSyncLog(dbc, studentID, domain, DomainStatusUpdated, insights, meta); err != nil {
		return DomainStatusFailed, err
	}
	return DomainStatusUpdated, nil
}

func (s *fusionService) appendSyncLog(dbc dbctx.Context, studentID uuid.UUID, domain profiles.Domain, action string, insights map[string]interface{}, meta syncMeta) error {
	raw, err := json.Marshal(insights)
	if err != nil {
		return err
	}
	row := &types.ProfileSyncLog{
		StudentID:         studentID,
		Source:            meta.source,
		SourceID:          meta.sourceID,
		Domain:            string(domain),
		Action:            action,
		AIReasoning:       meta.reasoning,
		ExtractedInsights: raw,
		ProcessedBy:       meta.processedBy,
	}
	if meta.confidence > 0 {
		c := meta.confidence
		row.ValidationScore = &c
	}
	return s.syncLogs.Append(dbc, row)
}

// currentSnapshot gives the extractor the student's stored values so it can
// flag contradictions. Kept compact: profile structs serialized by domain.
func (s *fusionService) currentSnapshot(ctx context.Context, student *types.Student) (map[string]interface{}, error) {
	dbc := dbctx.Context{Ctx: ctx}
	snap := map[string]interface{}{
		"grade_level": student.GradeLevel,
		"class_name":  student.ClassName,
	}

	if hp, err := s.health.GetByStudentID(dbc, student.ID); err != nil {
		return nil, err
	} else if hp != nil {
		snap[string(types.DomainHealth)] = hp
	}
	if ap, err := s.academic.GetByStudentID(dbc, student.ID); err != nil {
		return nil, err
	} else if ap != nil {
		snap[string(types.DomainAcademic)] = ap
	}
	if sp, err := s.social.GetByStudentID(dbc, student.ID); err != nil {
		return nil, err
	} else if sp != nil {
		snap[string(types.DomainSocialEmotional)] = sp
	}
	if tp, err := s.talents.GetByStudentID(dbc, student.ID); err != nil {
		return nil, err
	} else if tp != nil {
		snap[string(types.DomainTalentsInterest)] = tp
	}
	return snap, nil
}

func dedupeDomains(in []profiles.Domain) []profiles.Domain {
	seen := make(map[profiles.Domain]bool, len(in))
	out := make([]profiles.Domain, 0, len(in))
	for _, d := range in {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
