package dbctx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	pkgerrors "github.com/okulpusula/pusula-backend/internal/pkg/errors"
)

// Postgres error codes worth classifying for callers.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// MapDBError translates driver-level failures into the package sentinels so
// services can branch on errors.Is without importing pgconn.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Join(pkgerrors.ErrNotFound, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Join(pkgerrors.ErrConflict, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errors.Join(pkgerrors.ErrInvalidArgument, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.Join(pkgerrors.ErrConflict, err)
		case pgForeignKeyViolation:
			return errors.Join(pkgerrors.ErrInvalidArgument, err)
		}
	}
	return err
}
