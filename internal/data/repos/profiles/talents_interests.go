package profiles

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

type TalentsInterestsProfileRepo interface {
	GetByStudentID(dbc dbctx.Context, studentID uuid.UUID) (*types.TalentsInterestsProfile, error)
	Upsert(dbc dbctx.Context, row *types.TalentsInterestsProfile) error
}

type talentsInterestsProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTalentsInterestsProfileRepo(db *gorm.DB, baseLog *logger.Logger) TalentsInterestsProfileRepo {
	return &talentsInterestsProfileRepo{db: db, log: baseLog.With("repo", "TalentsInterestsProfileRepo")}
}

func (r *talentsInterestsProfileRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *talentsInterestsProfileRepo) GetByStudentID(dbc dbctx.Context, studentID uuid.UUID) (*types.TalentsInterestsProfile, error) {
	if studentID == uuid.Nil {
		return nil, nil
	}
	var out types.TalentsInterestsProfile
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

func (r *talentsInterestsProfileRepo) Upsert(dbc dbctx.Context, row *types.TalentsInterestsProfile) error {
	if row == nil || row.StudentID == uuid.Nil {
		return nil
	}
	now := time.Now().UTC()
	row.UpdatedAt = now
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}

	t := r.dbx(dbc).WithContext(dbc.Ctx)

	existing, err := r.GetByStudentID(dbc, row.StudentID)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != uuid.Nil {
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
		return dbctx.MapDBError(t.Save(row).Error)
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return dbctx.MapDBError(t.Create(row).Error)
}
