package deposit

import (
	"errors"
	"time"

	"github.com/moniclaundry/deposit-service/internal/repos/customers"
	"github.com/moniclaundry/deposit-service/internal/repos/transactions"
)

// ErrValidation is wrapped by every input-shape failure so callers can map
// the whole class with errors.Is.
var ErrValidation = errors.New("validation failed")

// ExpiryWindow is how far ahead a deposit plan counts as expiring soon.
const ExpiryWindow = 14 * 24 * time.Hour

// PurchaseRequest tops up a customer's balance with a deposit package.
// PaymentMethod is the instrument the purchase price is paid with.
type PurchaseRequest struct {
	CustomerID    uint64
	DepositTypeID uint64
	PaymentMethod string
	HasExpiry     bool
	ExpiryDate    *time.Time
}

// LaundryRequest settles a laundry bill against the customer's balance.
// RemainderMethod is required only when the balance cannot cover the full
// amount; OrderID optionally ties the settlement to an order, in which case
// the payment row is written in the same database transaction.
type LaundryRequest struct {
	CustomerID      uint64
	BranchID        uint64
	Amount          int64
	RemainderMethod string
	OrderID         uint64
	Description     string
}

// Result pairs the written transaction with the customer's post-operation
// state so callers can refresh their view without a second round trip.
type Result struct {
	Transaction *transactions.Transaction
	Customer    *customers.Customer
}

// ExpiringSoon reports whether the customer's deposit plan is inside the
// expiry window. Read-only: expired balances are never zeroed by this
// service.
func ExpiringSoon(c *customers.Customer, now time.Time) bool {
	if c == nil || !c.HasExpiry || c.ExpiryDate == nil {
		return false
	}

	if c.DepositBalance <= 0 {
		return false
	}

	return !c.ExpiryDate.After(now.Add(ExpiryWindow))
}

func validPurchaseMethod(m string) bool {
	switch m {
	case transactions.MethodCash, transactions.MethodTransfer, transactions.MethodQRIS:
		return true
	default:
		return false
	}
}
