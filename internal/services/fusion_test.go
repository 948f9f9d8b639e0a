package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/domain/profiles"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
)

// ---- fakes ----

type fakeStudentRepo struct {
	rows map[uuid.UUID]*types.Student
}

func (f *fakeStudentRepo) Create(dbc dbctx.Context, row *types.Student) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	f.rows[row.ID] = row
	return nil
}
func (f *fakeStudentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Student, error) {
	return f.rows[id], nil
}
func (f *fakeStudentRepo) Update(dbc dbctx.Context, row *types.Student) error {
	f.rows[row.ID] = row
	return nil
}
func (f *fakeStudentRepo) SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

type fakeHealthRepo struct {
	rows      map[uuid.UUID]*types.HealthProfile
	upsertErr error
}

func (f *fakeHealthRepo) GetByStudentID(dbc dbctx.Context, sid uuid.UUID) (*types.HealthProfile, error) {
	return f.rows[sid], nil
}
func (f *fakeHealthRepo) Upsert(dbc dbctx.Context, row *types.HealthProfile) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.rows[row.StudentID] = row
	return nil
}

type fakeAcademicRepo struct {
	rows map[uuid.UUID]*types.AcademicProfile
}

func (f *fakeAcademicRepo) GetByStudentID(dbc dbctx.Context, sid uuid.UUID) (*types.AcademicProfile, error) {
	return f.rows[sid], nil
}
func (f *fakeAcademicRepo) Upsert(dbc dbctx.Context, row *types.AcademicProfile) error {
	f.rows[row.StudentID] = row
	return nil
}

type fakeSocialRepo struct {
	rows map[uuid.UUID]*types.SocialEmotionalProfile
}

func (f *fakeSocialRepo) GetByStudentID(dbc dbctx.Context, sid uuid.UUID) (*types.SocialEmotionalProfile, error) {
	return f.rows[sid], nil
}
func (f *fakeSocialRepo) Upsert(dbc dbctx.Context, row *types.SocialEmotionalProfile) error {
	f.rows[row.StudentID] = row
	return nil
}

type fakeTalentsRepo struct {
	rows map[uuid.UUID]*types.TalentsInterestsProfile
}

func (f *fakeTalentsRepo) GetByStudentID(dbc dbctx.Context, sid uuid.UUID) (*types.TalentsInterestsProfile, error) {
	return f.rows[sid], nil
}
func (f *fakeTalentsRepo) Upsert(dbc dbctx.Context, row *types.TalentsInterestsProfile) error {
	f.rows[row.StudentID] = row
	return nil
}

type fakeSyncLogRepo struct {
	rows []*types.ProfileSyncLog
}

func (f *fakeSyncLogRepo) Append(dbc dbctx.Context, row *types.ProfileSyncLog) error {
	f.rows = append(f.rows, row)
	return nil
}
func (f *fakeSyncLogRepo) ListByStudentID(dbc dbctx.Context, sid uuid.UUID, limit int) ([]*types.ProfileSyncLog, error) {
	return f.rows, nil
}

type fakeSuggestionRepo struct {
	rows []*types.Suggestion
}

func (f *fakeSuggestionRepo) Create(dbc dbctx.Context, row *types.Suggestion) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.Status == "" {
		row.Status = "pending"
	}
	f.rows = append(f.rows, row)
	return nil
}
func (f *fakeSuggestionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Suggestion, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}
func (f *fakeSuggestionRepo) ListPendingByStudentID(dbc dbctx.Context, sid uuid.UUID) ([]*types.Suggestion, error) {
	return f.rows, nil
}
func (f *fakeSuggestionRepo) UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string) error {
	for _, r := range f.rows {
		if r.ID == id {
			r.Status = status
		}
	}
	return nil
}

type fakeExtractor struct {
	result *ExtractionResult
	err    error
}

func (f *fakeExtractor) Extract(ctx context.Context, source, rawData string, current map[string]any) (*ExtractionResult, error) {
	return f.result, f.err
}

type fakeIdentity struct {
	refreshed int
}

func (f *fakeIdentity) Refresh(ctx context.Context, sid uuid.UUID) (*types.UnifiedStudentIdentity, error) {
	f.refreshed++
	return &types.UnifiedStudentIdentity{StudentID: sid}, nil
}
func (f *fakeIdentity) Get(ctx context.Context, sid uuid.UUID) (*types.UnifiedStudentIdentity, error) {
	return nil, nil
}

type fusionFixture struct {
	svc      FusionService
	student  *types.Student
	health   *fakeHealthRepo
	academic *fakeAcademicRepo
	talents  *fakeTalentsRepo
	syncLogs *fakeSyncLogRepo
	suggest  *fakeSuggestionRepo
	identity *fakeIdentity
}

func newFusionFixture(t *testing.T, ext *fakeExtractor) *fusionFixture {
	t.Helper()
	log := testLogger(t)

	st := &types.Student{ID: uuid.New(), FirstName: "Elif", LastName: "Demir"}
	students := &fakeStudentRepo{rows: map[uuid.UUID]*types.Student{st.ID: st}}
	health := &fakeHealthRepo{rows: map[uuid.UUID]*types.HealthProfile{}}
	academic := &fakeAcademicRepo{rows: map[uuid.UUID]*types.AcademicProfile{}}
	social := &fakeSocialRepo{rows: map[uuid.UUID]*types.SocialEmotionalProfile{}}
	talents := &fakeTalentsRepo{rows: map[uuid.UUID]*types.TalentsInterestsProfile{}}
	syncLogs := &fakeSyncLogRepo{}
	suggestRepo := &fakeSuggestionRepo{}
	identity := &fakeIdentity{}

	svc := NewFusionService(log, FusionDeps{
		Extractor: ext,
		Resolver:  NewConflictResolver(log),
		Suggest:   NewSuggestionService(log, suggestRepo),
		Identity:  identity,
		Students:  students,
		Health:    health,
		Academic:  academic,
		Social:    social,
		Talents:   talents,
		SyncLogs:  syncLogs,
	})

	return &fusionFixture{
		svc:      svc,
		student:  st,
		health:   health,
		academic: academic,
		talents:  talents,
		syncLogs: syncLogs,
		suggest:  suggestRepo,
		identity: identity,
	}
}

// ---- tests ----

func TestProcessObservationMergesAndLogs(t *testing.T) {
	ext := &fakeExtractor{result: &ExtractionResult{
		IsValid:          true,
		Confidence:       0.92,
		SuggestedDomains: []profiles.Domain{types.DomainHealth, types.DomainTalentsInterest},
		ExtractedInsights: map[string]any{
			"kan grubu": "A+",
			"hobi":      "satranç",
		},
	}}
	fx := newFusionFixture(t, ext)

	res, err := fx.svc.ProcessObservation(context.Background(), ObservationInput{
		StudentID: fx.student.ID,
		Source:    "counseling_session",
		RawData:   "Elif'in kan grubu A+, satranç oynamayı seviyor",
	})
	if err != nil {
		t.Fatalf("ProcessObservation: %v", err)
	}
	if !res.Valid || res.Suggested {
		t.Fatalf("result = %+v, want valid direct write", res)
	}

	hp := fx.health.rows[fx.student.ID]
	if hp == nil || hp.BloodType != "A+" {
		t.Fatalf("health profile = %+v, want bloodType A+", hp)
	}
	if hp.AssessedBy != types.AssessedByAutoSync {
		t.Errorf("AssessedBy = %q, want %q", hp.AssessedBy, types.AssessedByAutoSync)
	}

	tp := fx.talents.rows[fx.student.ID]
	if tp == nil || !strings.Contains(string(tp.PrimaryInterests), "satranç") {
		t.Fatalf("talents profile = %+v, want satranç in interests", tp)
	}

	if len(fx.syncLogs.rows) != 2 {
		t.Fatalf("sync log rows = %d, want one per touched domain", len(fx.syncLogs.rows))
	}
	for _, row := range fx.syncLogs.rows {
		if row.Action != DomainStatusUpdated {
			t.Errorf("sync log action = %q, want updated", row.Action)
		}
		if row.ValidationScore == nil || *row.ValidationScore != 0.92 {
			t.Errorf("sync log validation score = %v, want 0.92", row.ValidationScore)
		}
	}
	if fx.identity.refreshed != 1 {
		t.Errorf("identity refreshed %d times, want 1", fx.identity.refreshed)
	}
}

func TestProcessObservationInvalidInputHardStop(t *testing.T) {
	ext := &fakeExtractor{result: &ExtractionResult{
		IsValid:   false,
		Reasoning: "Metin öğrenciyle ilgili anlamlı bilgi içermiyor",
	}}
	fx := newFusionFixture(t, ext)

	res, err := fx.svc.ProcessObservation(context.Background(), ObservationInput{
		StudentID: fx.student.ID,
		RawData:   "asdf qwerty test test",
	})
	if err != nil {
		t.Fatalf("ProcessObservation: %v", err)
	}
	if res.Valid {
		t.Fatalf("invalid observation reported valid")
	}
	if !strings.HasPrefix(res.Message, "Veri doğrulama başarısız: ") {
		t.Errorf("message = %q, want localized validation failure prefix", res.Message)
	}
	if len(fx.syncLogs.rows) != 0 || len(fx.health.rows) != 0 {
		t.Errorf("invalid observation produced writes")
	}
}

func TestProcessObservationLowConfidenceGoesToSuggestions(t *testing.T) {
	ext := &fakeExtractor{result: &ExtractionResult{
		IsValid:          true,
		Confidence:       0.45,
		SuggestedDomains: []profiles.Domain{types.DomainHealth},
		ExtractedInsights: map[string]any{
			"kan grubu": "B+",
		},
	}}
	fx := newFusionFixture(t, ext)

	res, err := fx.svc.ProcessObservation(context.Background(), ObservationInput{
		StudentID: fx.student.ID,
		RawData:   "Sanırım kan grubu B+ olabilir",
	})
	if err != nil {
		t.Fatalf("ProcessObservation: %v", err)
	}
	if !res.Suggested {
		t.Fatalf("low confidence result not suggested: %+v", res)
	}
	if len(fx.health.rows) != 0 {
		t.Errorf("low confidence observation wrote to profile")
	}
	if len(fx.suggest.rows) != 1 {
		t.Fatalf("suggestions = %d, want 1", len(fx.suggest.rows))
	}
	if fx.suggest.rows[0].Confidence != 0.45 {
		t.Errorf("suggestion confidence = %v, want 0.45", fx.suggest.rows[0].Confidence)
	}
}

func TestProcessObservationEscalatesHighSeverityConflicts(t *testing.T) {
	ext := &fakeExtractor{result: &ExtractionResult{
		IsValid:          true,
		Confidence:       0.9,
		SuggestedDomains: []profiles.Domain{types.DomainHealth},
		ExtractedInsights: map[string]any{
			"kan grubu": "A+",
		},
		Conflicts: []types.Conflict{
			{Field: "bloodType", NewValue: "A+", CurrentValue: "0+", Severity: types.SeverityHigh},
			{Field: "learningStyle", NewValue: "visual", CurrentValue: "auditory", Severity: types.SeverityLow},
		},
	}}
	fx := newFusionFixture(t, ext)

	res, err := fx.svc.ProcessObservation(context.Background(), ObservationInput{
		StudentID: fx.student.ID,
		RawData:   "Kan grubu A+ olarak güncellendi",
	})
	if err != nil {
		t.Fatalf("ProcessObservation: %v", err)
	}
	if len(res.EscalatedConflicts) != 1 || res.EscalatedConflicts[0].Field != "bloodType" {
		t.Fatalf("escalated = %+v, want bloodType only", res.EscalatedConflicts)
	}
	if len(res.ResolvedConflicts) != 1 || res.ResolvedConflicts[0].Severity != types.SeverityLow {
		t.Fatalf("resolved = %+v, want learningStyle at low", res.ResolvedConflicts)
	}
	if len(fx.suggest.rows) != 1 {
		t.Fatalf("escalation did not queue a review suggestion")
	}
	// the conflicting field is withheld from the merge until reviewed
	if hp := fx.health.rows[fx.student.ID]; hp != nil && hp.BloodType == "A+" {
		t.Errorf("high severity conflict value was auto-applied: %+v", hp)
	}
	statuses := map[profiles.Domain]string{}
	for _, d := range res.Domains {
		statuses[d.Domain] = d.Status
	}
	if statuses[types.DomainHealth] != DomainStatusSkipped {
		t.Errorf("health status = %q, want skipped with all fields withheld", statuses[types.DomainHealth])
	}
}

func TestProcessObservationPlaceholderDomainOnlyLogged(t *testing.T) {
	ext := &fakeExtractor{result: &ExtractionResult{
		IsValid:          true,
		Confidence:       0.85,
		SuggestedDomains: []profiles.Domain{types.DomainMotivation},
		ExtractedInsights: map[string]any{
			"motivasyon": 4,
		},
	}}
	fx := newFusionFixture(t, ext)

	res, err := fx.svc.ProcessObservation(context.Background(), ObservationInput{
		StudentID: fx.student.ID,
		RawData:   "Motivasyonu bu hafta düşük",
	})
	if err != nil {
		t.Fatalf("ProcessObservation: %v", err)
	}
	if len(res.Domains) != 1 || res.Domains[0].Status != DomainStatusLogged {
		t.Fatalf("domains = %+v, want single logged outcome", res.Domains)
	}
	if len(fx.syncLogs.rows) != 1 || fx.syncLogs.rows[0].Action != DomainStatusLogged {
		t.Fatalf("sync log = %+v, want logged action", fx.syncLogs.rows)
	}
	if fx.identity.refreshed != 0 {
		t.Errorf("identity refreshed after log-only domain")
	}
}

func TestProcessObservationDomainFailureIsIsolated(t *testing.T) {
	ext := &fakeExtractor{result: &ExtractionResult{
		IsValid:          true,
		Confidence:       0.9,
		SuggestedDomains: []profiles.Domain{types.DomainHealth, types.DomainTalentsInterest},
		ExtractedInsights: map[string]any{
			"kan grubu": "A+",
			"hobi":      "resim",
		},
	}}
	fx := newFusionFixture(t, ext)
	fx.health.upsertErr = errors.New("connection reset")

	res, err := fx.svc.ProcessObservation(context.Background(), ObservationInput{
		StudentID: fx.student.ID,
		RawData:   "Kan grubu A+, resim yapmayı seviyor",
	})
	if err != nil {
		t.Fatalf("ProcessObservation: %v", err)
	}

	statuses := map[profiles.Domain]string{}
	for _, d := range res.Domains {
		statuses[d.Domain] = d.Status
	}
	if statuses[types.DomainHealth] != DomainStatusFailed {
		t.Errorf("health status = %q, want failed", statuses[types.DomainHealth])
	}
	if statuses[types.DomainTalentsInterest] != DomainStatusUpdated {
		t.Errorf("talents status = %q, want updated despite health failure", statuses[types.DomainTalentsInterest])
	}
	if fx.talents.rows[fx.student.ID] == nil {
		t.Errorf("talents profile missing after isolated failure")
	}
}

func TestProcessObservationUnknownStudent(t *testing.T) {
	fx := newFusionFixture(t, &fakeExtractor{result: &ExtractionResult{IsValid: true}})
	_, err := fx.svc.ProcessObservation(context.Background(), ObservationInput{
		StudentID: uuid.New(),
		RawData:   "bir şeyler",
	})
	if err == nil {
		t.Fatalf("expected error for unknown student")
	}
}
