package auth

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

type CounselorRepo interface {
	Create(dbc dbctx.Context, row *types.Counselor) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Counselor, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.Counselor, error)
}

type counselorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCounselorRepo(db *gorm.DB, baseLog *logger.Logger) CounselorRepo {
	return &counselorRepo{db: db, log: baseLog.With("repo", "CounselorRepo")}
}

func (r *counselorRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *counselorRepo) Create(dbc dbctx.Context, row *types.Counselor) error {
	if row == nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return dbctx.MapDBError(r.dbx(dbc).WithContext(dbc.Ctx).Create(row).Error)
}

func (r *counselorRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Counselor, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Counselor
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

func (r *counselorRepo) GetByEmail(dbc dbctx.Context, email string) (*types.Counselor, error) {
	if email == "" {
		return nil, nil
	}
	var out types.Counselor
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("email = ?", email).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
