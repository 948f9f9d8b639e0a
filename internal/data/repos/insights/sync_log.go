package insights

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

// SyncLogRepo is append-only: entries are never updated or deleted by the
// fusion core.
type SyncLogRepo interface {
	Append(dbc dbctx.Context, row *types.ProfileSyncLog) error
	ListByStudentID(dbc dbctx.Context, studentID uuid.UUID, limit int) ([]*types.ProfileSyncLog, error)
}

type syncLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSyncLogRepo(db *gorm.DB, baseLog *logger.Logger) SyncLogRepo {
	return &syncLogRepo{db: db, log: baseLog.With("repo", "SyncLogRepo")}
}

func (r *syncLogRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *syncLogRepo) Append(dbc dbctx.Context, row *types.ProfileSyncLog) error {
	if row == nil || row.StudentID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.Action == "" {
		row.Action = "updated"
	}
	return dbctx.MapDBError(r.dbx(dbc).WithContext(dbc.Ctx).Create(row).Error)
}

func (r *syncLogRepo) ListByStudentID(dbc dbctx.Context, studentID uuid.UUID, limit int) ([]*types.ProfileSyncLog, error) {
	if studentID == uuid.Nil {
		return nil, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var rows []*types.ProfileSyncLog
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
