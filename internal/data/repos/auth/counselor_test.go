package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/okulpusula/pusula-backend/internal/data/repos/testutil"
	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	pkgerrors "github.com/okulpusula/pusula-backend/internal/pkg/errors"
)

func TestCounselorRepoDuplicateEmailIsConflict(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewCounselorRepo(db, testutil.Logger(t))

	first := &types.Counselor{
		Email:     "zeynep.demir@okul.edu.tr",
		Password:  "hashed",
		FirstName: "Zeynep",
		LastName:  "Demir",
	}
	if err := repo.Create(dbc, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	dup := &types.Counselor{
		Email:     "zeynep.demir@okul.edu.tr",
		Password:  "hashed",
		FirstName: "Zeynep",
		LastName:  "Demir",
	}
	err := repo.Create(dbc, dup)
	if err == nil {
		t.Fatalf("duplicate email create should fail")
	}
	if !errors.Is(err, pkgerrors.ErrConflict) {
		t.Fatalf("duplicate email should map to ErrConflict, got %v", err)
	}
}

func TestCounselorRepoGetByEmailAbsentIsNil(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewCounselorRepo(db, testutil.Logger(t))

	got, err := repo.GetByEmail(dbc, "yok@okul.edu.tr")
	if err != nil {
		t.Fatalf("absent counselor should not error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent counselor, got %+v", got)
	}
}
