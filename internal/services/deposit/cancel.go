package deposit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/moniclaundry/deposit-service/internal/infra/pgutils"
	"github.com/moniclaundry/deposit-service/internal/repos/transactions"
)

// CancelTransaction reverses a completed transaction exactly once.
//
// Laundry: the deposit-funded portion is refunded onto the balance and the
// order counters are rolled back. Deposit purchase: the credited value is
// clawed back, capped at the current balance so it can never go negative,
// and the plan metadata is cleared. The completed -> cancelled transition is
// enforced at write time; a second cancellation fails instead of silently
// succeeding.
func (s *DepositService) CancelTransaction(ctx context.Context, transactionID uint64, reason string) (*Result, error) {
	if transactionID == 0 {
		return nil, fmt.Errorf("%w: transaction id required", ErrValidation)
	}

	if reason == "" {
		reason = "No reason provided"
	}

	var txn *transactions.Transaction

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error

		txn, err = s.txns.LockForUpdate(tx, transactionID)
		if err != nil {
			return fmt.Errorf("lock transaction: %w", err)
		}

		if txn.Status != transactions.StatusCompleted {
			return fmt.Errorf("status %q: %w", txn.Status, transactions.ErrAlreadyCancelled)
		}

		customer, err := s.customers.LockForUpdate(tx, txn.CustomerID)
		if err != nil {
			return fmt.Errorf("lock customer: %w", err)
		}

		switch txn.Type {
		case transactions.TypeLaundry:
			if txn.DepositAmount > 0 {
				err = s.customers.IncreaseBalance(tx, customer.ID, txn.DepositAmount)
				if err != nil {
					return fmt.Errorf("refund deposit: %w", err)
				}
			}

			err = s.customers.AddOrderStats(tx, customer.ID, -1, -txn.Amount)
			if err != nil {
				return fmt.Errorf("reverse order stats: %w", err)
			}

			if txn.OrderID != 0 {
				err = s.orders.CancelPayments(tx, txn.OrderID)
				if err != nil {
					return fmt.Errorf("cancel payments: %w", err)
				}
			}

		case transactions.TypeDepositPurchase:
			clawback := txn.DepositValue
			if clawback > customer.DepositBalance {
				clawback = customer.DepositBalance
			}

			if clawback > 0 {
				err = s.customers.DecreaseBalance(tx, customer.ID, clawback)
				if err != nil {
					return fmt.Errorf("claw back deposit: %w", err)
				}
			}

			err = s.customers.AddTotalDeposit(tx, customer.ID, -txn.Amount)
			if err != nil {
				return fmt.Errorf("reverse total deposit: %w", err)
			}

			err = s.customers.ClearDepositPlan(tx, customer.ID)
			if err != nil {
				return fmt.Errorf("clear deposit plan: %w", err)
			}

		default:
			return fmt.Errorf("unknown transaction type: %s", txn.Type)
		}

		err = s.txns.MarkCancelled(tx, txn.ID, reason)
		if err != nil {
			return fmt.Errorf("mark cancelled: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cancel transaction: %w", err)
	}

	// Reflect the committed transition in the returned copy.
	txn.Status = transactions.StatusCancelled
	txn.Description = fmt.Sprintf("%s - CANCELLED: %s", txn.Description, reason)

	customer, err := s.customers.GetByID(ctx, txn.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("reload customer: %w", err)
	}

	return &Result{Transaction: txn, Customer: customer}, nil
}
