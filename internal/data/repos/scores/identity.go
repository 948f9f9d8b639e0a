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

type IdentityRepo interface {
	Upsert(dbc dbctx.Context, row *types.UnifiedStudentIdentity) error
	GetByStudentID(dbc dbctx.Context, studentID uuid.UUID) (*types.UnifiedStudentIdentity, error)
}

type identityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIdentityRepo(db *gorm.DB, baseLog *logger.Logger) IdentityRepo {
	return &identityRepo{db: db, log: baseLog.With("repo", "IdentityRepo")}
}

func (r *identityRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *identityRepo) GetByStudentID(dbc dbctx.Context, studentID uuid.UUID) (*types.UnifiedStudentIdentity, error) {
	if studentID == uuid.Nil {
		return nil, nil
	}
	var out types.UnifiedStudentIdentity
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

func (r *identityRepo) Upsert(dbc dbctx.Context, row *types.UnifiedStudentIdentity) error {
	if row == nil || row.StudentID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.LastSynthesizedAt.IsZero() {
		row.LastSynthesizedAt = time.Now().UTC()
	}
	return dbctx.MapDBError(r.dbx(dbc).WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"summary", "academic_identity", "social_identity", "emotional_identity",
				"interest_identity", "motivation_identity", "risk_priority", "last_synthesized_at",
			}),
		}).
		Create(row).Error)
}
