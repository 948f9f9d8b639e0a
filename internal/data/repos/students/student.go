package students

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

type StudentRepo interface {
	Create(dbc dbctx.Context, row *types.Student) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Student, error)
	Update(dbc dbctx.Context, row *types.Student) error
	SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return &studentRepo{db: db, log: baseLog.With("repo", "StudentRepo")}
}

func (r *studentRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *studentRepo) Create(dbc dbctx.Context, row *types.Student) error {
	if row == nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return dbctx.MapDBError(r.dbx(dbc).WithContext(dbc.Ctx).Create(row).Error)
}

func (r *studentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Student, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Student
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("id = ?", id).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *studentRepo) Update(dbc dbctx.Context, row *types.Student) error {
	if row == nil || row.ID == uuid.Nil {
		return nil
	}
	row.UpdatedAt = time.Now().UTC()
	return dbctx.MapDBError(r.dbx(dbc).WithContext(dbc.Ctx).Save(row).Error)
}

func (r *studentRepo) SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.Student{}).Error
}
