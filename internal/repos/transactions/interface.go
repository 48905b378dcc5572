package transactions

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrTransactionNotFound = errors.New("transaction not found")
var ErrAlreadyCancelled = errors.New("transaction is not completed")
var ErrDuplicateReference = errors.New("duplicate transaction reference")

// Transaction types.
const (
	TypeDepositPurchase = "deposit_purchase"
	TypeLaundry         = "laundry"
)

// Payment methods.
const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
	MethodQRIS     = "qris"
	MethodDeposit  = "deposit"
	MethodMixed    = "mixed"
)

// Statuses. Completed is the only initial state and cancelled the only
// transition out of it.
const (
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Transaction is an immutable fact once completed. DepositAmount is the
// portion settled from the customer's balance, CashAmount the remainder paid
// by another instrument, and DepositValue the purchase-time snapshot of the
// credited amount for deposit_purchase rows.
type Transaction struct {
	ID            uint64
	Reference     string
	CustomerID    uint64
	BranchID      uint64
	OrderID       uint64 // 0 when not tied to an order
	Type          string
	PaymentMethod string
	Amount        int64
	DepositAmount int64
	CashAmount    int64
	DepositValue  int64
	Status        string
	Description   string
	CreatedAt     time.Time
}

type NewTransaction struct {
	Reference     string
	CustomerID    uint64
	BranchID      uint64
	OrderID       uint64
	Type          string
	PaymentMethod string
	Amount        int64
	DepositAmount int64
	CashAmount    int64
	DepositValue  int64
	Description   string
}

type Transactions interface {
	Insert(tx *sql.Tx, nt NewTransaction) (*Transaction, error)
	LockForUpdate(tx *sql.Tx, transactionID uint64) (*Transaction, error)
	// MarkCancelled flips completed -> cancelled. The status guard runs at
	// write time; zero rows affected means the transaction was not in the
	// completed state and the transition is rejected.
	MarkCancelled(tx *sql.Tx, transactionID uint64, reason string) error
	ListByCustomer(ctx context.Context, customerID uint64, limit int) ([]Transaction, error)
}
