package students

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

type BehaviorIncidentRepo interface {
	Create(dbc dbctx.Context, row *types.BehaviorIncident) error
	ListByStudentID(dbc dbctx.Context, studentID uuid.UUID) ([]*types.BehaviorIncident, error)
	CountByStudentID(dbc dbctx.Context, studentID uuid.UUID) (int64, error)
}

type behaviorIncidentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBehaviorIncidentRepo(db *gorm.DB, baseLog *logger.Logger) BehaviorIncidentRepo {
	return &behaviorIncidentRepo{db: db, log: baseLog.With("repo", "BehaviorIncidentRepo")}
}

func (r *behaviorIncidentRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *behaviorIncidentRepo) Create(dbc dbctx.Context, row *types.BehaviorIncident) error {
	if row == nil || row.StudentID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return dbctx.MapDBError(r.dbx(dbc).WithContext(dbc.Ctx).Create(row).Error)
}

func (r *behaviorIncidentRepo) ListByStudentID(dbc dbctx.Context, studentID uuid.UUID) ([]*types.BehaviorIncident, error) {
	if studentID == uuid.Nil {
		return nil, nil
	}
	var rows []*types.BehaviorIncident
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("student_id = ?", studentID).
		Order("incident_date ASC NULLS LAST, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *behaviorIncidentRepo) CountByStudentID(dbc dbctx.Context, studentID uuid.UUID) (int64, error) {
	if studentID == uuid.Nil {
		return 0, nil
	}
	var n int64
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Model(&types.BehaviorIncident{}).
		Where("student_id = ?", studentID).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}
