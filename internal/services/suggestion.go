package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/okulpusula/pusula-backend/internal/data/repos"
	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/domain/insight"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	pkgerr "github.com/okulpusula/pusula-backend/internal/pkg/errors"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

// SuggestionService queues low-confidence or escalated writes for counselor
// review instead of applying them to the authoritative profiles.
type SuggestionService interface {
	EnqueueFromInsights(ctx context.Context, studentID uuid.UUID, source, sourceID, reasoning string, confidence float64, insights map[string]any) (*types.Suggestion, error)
	EnqueueFromConflicts(ctx context.Context, studentID uuid.UUID, source, sourceID string, conflicts []types.Conflict) (*types.Suggestion, error)
	ListPending(ctx context.Context, studentID uuid.UUID) ([]*types.Suggestion, error)
	Review(ctx context.Context, id uuid.UUID, approve bool) (*types.Suggestion, error)
}

type suggestionService struct {
	log  *logger.Logger
	repo repos.SuggestionRepo
}

func NewSuggestionService(log *logger.Logger, repo repos.SuggestionRepo) SuggestionService {
	return &suggestionService{
		log:  log.With("service", "SuggestionService"),
		repo: repo,
	}
}

func (s *suggestionService) EnqueueFromInsights(ctx context.Context, studentID uuid.UUID, source, sourceID, reasoning string, confidence float64, insights map[string]any) (*types.Suggestion, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}

	changes := make([]types.ProposedChange, 0, len(insights))
	for _, key := range sortedInsightKeys(insights) {
		changes = append(changes, types.ProposedChange{
			Field:         key,
			ProposedValue: insights[key],
			Reason:        "Düşük güven skoru ile çıkarıldı",
		})
	}
	raw, err := json.Marshal(changes)
	if err != nil {
		return nil, err
	}

	row := &types.Suggestion{
		StudentID:       studentID,
		Source:          source,
		SourceID:        sourceID,
		Priority:        insight.SuggestionPriorityMedium,
		Title:           "Gözlemden çıkarılan profil güncellemesi onay bekliyor",
		Description:     fmt.Sprintf("%d alan için öneri üretildi", len(changes)),
		Reasoning:       reasoning,
		Confidence:      confidence,
		ProposedChanges: raw,
	}
	if err := s.repo.Create(dbctx.Context{Ctx: ctx}, row); err != nil {
		return nil, err
	}
	s.log.Info("Suggestion queued", "student_id", studentID.String(), "fields", len(changes), "confidence", confidence)
	return row, nil
}

func (s *suggestionService) EnqueueFromConflicts(ctx context.Context, studentID uuid.UUID, source, sourceID string, conflicts []types.Conflict) (*types.Suggestion, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("student id required: %w", pkgerr.ErrInvalidArgument)
	}
	if len(conflicts) == 0 {
		return nil, nil
	}

	changes := make([]types.ProposedChange, 0, len(conflicts))
	for _, c := range conflicts {
		changes = append(changes, types.ProposedChange{
			Field:         c.Field,
			CurrentValue:  c.CurrentValue,
			ProposedValue: c.NewValue,
			Reason:        "Mevcut veriyle yüksek önem dereceli çelişki",
		})
	}
	raw, err := json.Marshal(changes)
	if err != nil {
		return nil, err
	}

	row := &types.Suggestion{
		StudentID:       studentID,
		Source:          source,
		SourceID:        sourceID,
		Priority:        insight.SuggestionPriorityHigh,
		Title:           "Yüksek önem dereceli veri çelişkisi inceleme bekliyor",
		Description:     fmt.Sprintf("%d alan mevcut kayıtla çelişiyor", len(changes)),
		Reasoning:       "Yüksek önem dereceli çelişkiler otomatik çözülmez",
		Confidence:      0,
		ProposedChanges: raw,
	}
	if err := s.repo.Create(dbctx.Context{Ctx: ctx}, row); err != nil {
		return nil, err
	}
	s.log.Warn("Conflict suggestion queued", "student_id", studentID.String(), "conflicts", len(changes))
	return row, nil
}

func (s *suggestionService) ListPending(ctx context.Context, studentID uuid.UUID) ([]*types.Suggestion, error) {
	return s.repo.ListPendingByStudentID(dbctx.Context{Ctx: ctx}, studentID)
}

func (s *suggestionService) Review(ctx context.Context, id uuid.UUID, approve bool) (*types.Suggestion, error) {
	row, err := s.repo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("suggestion %s: %w", id, pkgerr.ErrNotFound)
	}
	if row.Status != insight.SuggestionStatusPending {
		return nil, fmt.Errorf("suggestion %s already %s: %w", id, row.Status, pkgerr.ErrConflict)
	}

	status := insight.SuggestionStatusRejected
	if approve {
		status = insight.SuggestionStatusApproved
	}
	if err := s.repo.UpdateStatus(dbctx.Context{Ctx: ctx}, id, status); err != nil {
		return nil, err
	}
	row.Status = status
	return row, nil
}

func sortedInsightKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
