package orders

import (
	"database/sql"
	"errors"
)

var ErrOrderNotFound = errors.New("order not found")

// NewPayment records how an order's bill was settled. For mixed settlements
// DepositAmount + CashAmount equals Amount.
type NewPayment struct {
	OrderID       uint64
	BranchID      uint64
	Amount        int64
	PaymentMethod string
	DepositAmount int64
	CashAmount    int64
	Notes         string
}

// Orders is the recorder for the order subsystem's rows that a deposit-funded
// laundry settlement has to touch. Order creation itself belongs to the order
// subsystem; this interface only settles and unsettles.
type Orders interface {
	InsertPayment(tx *sql.Tx, p NewPayment) error
	MarkPaid(tx *sql.Tx, orderID uint64, paymentMethod string) error
	CancelPayments(tx *sql.Tx, orderID uint64) error
}
