package deposittypes

import (
	"context"
	"database/sql"
	"errors"
)

var ErrDepositTypeNotFound = errors.New("deposit type not found")
var ErrDuplicateDepositType = errors.New("deposit type name already exists for branch")

// DepositType is a purchasable package: the customer pays PurchasePrice and
// DepositValue is credited to the balance. The two may differ (bonus model).
type DepositType struct {
	ID            uint64
	BranchID      uint64
	Name          string
	PurchasePrice int64
	DepositValue  int64
	Description   string
	IsActive      bool
}

type NewDepositType struct {
	BranchID      uint64
	Name          string
	PurchasePrice int64
	DepositValue  int64
	Description   string
}

type DepositTypes interface {
	// Get resolves a type inside a purchase transaction. Inactive types
	// still resolve so historical transactions remain displayable; the
	// caller decides whether inactive is acceptable.
	Get(tx *sql.Tx, typeID uint64) (*DepositType, error)
	GetByID(ctx context.Context, typeID uint64) (*DepositType, error)
	ListActive(ctx context.Context, branchID uint64) ([]DepositType, error)
	Create(ctx context.Context, nt NewDepositType) (*DepositType, error)
	Update(ctx context.Context, dt DepositType) (*DepositType, error)
	Deactivate(ctx context.Context, typeID uint64) error
}
