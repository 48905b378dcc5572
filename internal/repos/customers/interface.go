package customers

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrCustomerNotFound = errors.New("customer not found")
var ErrInsufficientBalance = errors.New("insufficient deposit balance")

// Customer is the balance store's view of a customer row.
// Monetary fields are in minor currency units.
type Customer struct {
	ID             uint64
	BranchID       uint64
	Name           string
	Phone          string
	DepositBalance int64
	DepositType    string
	DepositTypeID  uint64 // 0 when no package is attached
	HasExpiry      bool
	ExpiryDate     *time.Time
	TotalOrders    int64
	TotalSpent     int64
	TotalDeposit   int64
	IsActive       bool
}

// DepositPlan is the package metadata written onto a customer after a
// deposit purchase.
type DepositPlan struct {
	TypeID     uint64
	TypeName   string
	HasExpiry  bool
	ExpiryDate *time.Time
}

type Customers interface {
	GetByID(ctx context.Context, customerID uint64) (*Customer, error)
	LockForUpdate(tx *sql.Tx, customerID uint64) (*Customer, error)
	IncreaseBalance(tx *sql.Tx, customerID uint64, amount int64) error
	DecreaseBalance(tx *sql.Tx, customerID uint64, amount int64) error
	SetDepositPlan(tx *sql.Tx, customerID uint64, plan DepositPlan) error
	ClearDepositPlan(tx *sql.Tx, customerID uint64) error
	AddTotalDeposit(tx *sql.Tx, customerID uint64, delta int64) error
	AddOrderStats(tx *sql.Tx, customerID uint64, orders int64, spent int64) error
	ListExpiring(ctx context.Context, branchID uint64, until time.Time) ([]Customer, error)
}
