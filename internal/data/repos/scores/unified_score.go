package scores

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

type UnifiedScoreRepo interface {
	Upsert(dbc dbctx.Context, row *types.UnifiedScore) error
	GetByStudentID(dbc dbctx.Context, studentID uuid.UUID) (*types.UnifiedScore, error)
}

type unifiedScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUnifiedScoreRepo(db *gorm.DB, baseLog *logger.Logger) UnifiedScoreRepo {
	return &unifiedScoreRepo{db: db, log: baseLog.With("repo", "UnifiedScoreRepo")}
}

func (r *unifiedScoreRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *unifiedScoreRepo) GetByStudentID(dbc dbctx.Context, studentID uuid.UUID) (*types.UnifiedScore, error) {
	if studentID == uuid.Nil {
		return nil, nil
	}
	var out types.UnifiedScore
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("student_id = ?", studentID).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Upsert is last-write-wins keyed by student_id; no score history is kept.
func (r *unifiedScoreRepo) Upsert(dbc dbctx.Context, row *types.UnifiedScore) error {
	if row == nil || row.StudentID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.LastUpdated.IsZero() {
		row.LastUpdated = time.Now().UTC()
	}
	return dbctx.MapDBError(r.dbx(dbc).WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"academic_score", "social_emotional_score", "behavior_score",
				"motivation_score", "risk_score", "details", "last_updated",
			}),
		}).
		Create(row).Error)
}
