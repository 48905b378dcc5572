package deposittypes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moniclaundry/deposit-service/internal/infra/pgtestutil"
	"github.com/moniclaundry/deposit-service/internal/repos/deposittypes"
)

func TestDepositTypes_CreateAndList(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	created, err := repo.Create(ctx, deposittypes.NewDepositType{
		BranchID:      1,
		Name:          "Paket Hemat",
		PurchasePrice: 100_000,
		DepositValue:  110_000,
		Description:   "Bonus 10rb",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected generated id")
	}
	if !created.IsActive {
		t.Fatalf("new type should be active")
	}

	// Same name on another branch is fine.
	_, err = repo.Create(ctx, deposittypes.NewDepositType{
		BranchID:      2,
		Name:          "Paket Hemat",
		PurchasePrice: 100_000,
		DepositValue:  105_000,
	})
	if err != nil {
		t.Fatalf("create on other branch: %v", err)
	}

	// Same name on the same branch is not.
	_, err = repo.Create(ctx, deposittypes.NewDepositType{
		BranchID:      1,
		Name:          "Paket Hemat",
		PurchasePrice: 200_000,
		DepositValue:  220_000,
	})
	if !errors.Is(err, deposittypes.ErrDuplicateDepositType) {
		t.Fatalf("want ErrDuplicateDepositType, got %v", err)
	}

	got, err := repo.ListActive(ctx, 1)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 type on branch 1, got %d", len(got))
	}
	if got[0].DepositValue != 110_000 {
		t.Fatalf("deposit value mismatch: want 110000, got %d", got[0].DepositValue)
	}
}

func TestDepositTypes_Deactivate_StaysResolvable(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	created, err := repo.Create(ctx, deposittypes.NewDepositType{
		BranchID:      1,
		Name:          "Paket Lama",
		PurchasePrice: 50_000,
		DepositValue:  55_000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = repo.Deactivate(ctx, created.ID)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	// Gone from purchase listings.
	got, err := repo.ListActive(ctx, 1)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty listing, got %d types", len(got))
	}

	// Still resolvable by id for historical display.
	dt, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if dt.IsActive {
		t.Fatalf("type should be inactive")
	}

	err = repo.Deactivate(ctx, 999_999)
	if !errors.Is(err, deposittypes.ErrDepositTypeNotFound) {
		t.Fatalf("want ErrDepositTypeNotFound, got %v", err)
	}
}

func TestDepositTypes_Update(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	created, err := repo.Create(ctx, deposittypes.NewDepositType{
		BranchID:      1,
		Name:          "Paket Standar",
		PurchasePrice: 100_000,
		DepositValue:  100_000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.DepositValue = 115_000
	created.Description = "Promo"

	updated, err := repo.Update(ctx, *created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DepositValue != 115_000 || updated.Description != "Promo" {
		t.Fatalf("update not applied: %+v", updated)
	}

	_, err = repo.Update(ctx, deposittypes.DepositType{ID: 999_999, Name: "x", PurchasePrice: 1, DepositValue: 1})
	if !errors.Is(err, deposittypes.ErrDepositTypeNotFound) {
		t.Fatalf("want ErrDepositTypeNotFound, got %v", err)
	}
}
