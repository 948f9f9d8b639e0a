package insights

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

type SuggestionRepo interface {
	Create(dbc dbctx.Context, row *types.Suggestion) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Suggestion, error)
	ListPendingByStudentID(dbc dbctx.Context, studentID uuid.UUID) ([]*types.Suggestion, error)
	UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string) error
}

type suggestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSuggestionRepo(db *gorm.DB, baseLog *logger.Logger) SuggestionRepo {
	return &suggestionRepo{db: db, log: baseLog.With("repo", "SuggestionRepo")}
}

func (r *suggestionRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *suggestionRepo) Create(dbc dbctx.Context, row *types.Suggestion) error {
	if row == nil || row.StudentID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.Status == "" {
		row.Status = "pending"
	}
	return dbctx.MapDBError(r.dbx(dbc).WithContext(dbc.Ctx).Create(row).Error)
}

func (r *suggestionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Suggestion, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Suggestion
	err := r.dbx(dbc).WithContext(dbc.Ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *suggestionRepo) UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string) error {
	if id == uuid.Nil {
		return nil
	}
	return dbctx.MapDBError(r.dbx(dbc).WithContext(dbc.Ctx).
		Model(&types.Suggestion{}).
		Where("id = ?", id).
		Update("status", status).Error)
}

func (r *suggestionRepo) ListPendingByStudentID(dbc dbctx.Context, studentID uuid.UUID) ([]*types.Suggestion, error) {
	if studentID == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Suggestion
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("student_id = ? AND status = ?", studentID, "pending").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
