package deposit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/moniclaundry/deposit-service/internal/infra/pgutils"
	"github.com/moniclaundry/deposit-service/internal/repos/orders"
	"github.com/moniclaundry/deposit-service/internal/repos/transactions"
)

// split is the outcome of the deposit-vs-mixed policy for one bill.
type split struct {
	Method        string
	DepositAmount int64
	CashAmount    int64
}

// computeSplit applies the core business rule against the balance read under
// the row lock: a balance covering the whole bill pays from deposit alone;
// anything less consumes the entire balance and the remainder must name a
// concrete instrument.
func computeSplit(balance, amount int64, remainderMethod string) (split, error) {
	if balance >= amount {
		return split{
			Method:        transactions.MethodDeposit,
			DepositAmount: amount,
		}, nil
	}

	switch remainderMethod {
	case transactions.MethodCash, transactions.MethodTransfer, transactions.MethodQRIS:
	case "":
		return split{}, fmt.Errorf("%w: payment method for the remaining amount required", ErrValidation)
	default:
		return split{}, fmt.Errorf("%w: invalid remainder payment method %q", ErrValidation, remainderMethod)
	}

	return split{
		Method:        transactions.MethodMixed,
		DepositAmount: balance,
		CashAmount:    amount - balance,
	}, nil
}

// ProcessLaundryTransaction settles a laundry bill from the customer's
// balance, mixing in a second instrument when the balance falls short. The
// transaction row, the balance deduction and (when an order is named) the
// payment row commit atomically.
func (s *DepositService) ProcessLaundryTransaction(ctx context.Context, req LaundryRequest) (*Result, error) {
	err := validateLaundry(req)
	if err != nil {
		return nil, err
	}

	var txn *transactions.Transaction

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		customer, err := s.customers.LockForUpdate(tx, req.CustomerID)
		if err != nil {
			return fmt.Errorf("lock customer: %w", err)
		}

		sp, err := computeSplit(customer.DepositBalance, req.Amount, req.RemainderMethod)
		if err != nil {
			return err
		}

		if sp.DepositAmount > 0 {
			err = s.customers.DecreaseBalance(tx, customer.ID, sp.DepositAmount)
			if err != nil {
				return fmt.Errorf("decrease balance: %w", err)
			}
		}

		err = s.customers.AddOrderStats(tx, customer.ID, 1, req.Amount)
		if err != nil {
			return fmt.Errorf("add order stats: %w", err)
		}

		description := req.Description
		if description == "" {
			description = "Laundry service payment"
		}

		txn, err = s.txns.Insert(tx, transactions.NewTransaction{
			Reference:     newReference("LAU"),
			CustomerID:    customer.ID,
			BranchID:      req.BranchID,
			OrderID:       req.OrderID,
			Type:          transactions.TypeLaundry,
			PaymentMethod: sp.Method,
			Amount:        req.Amount,
			DepositAmount: sp.DepositAmount,
			CashAmount:    sp.CashAmount,
			Description:   description,
		})
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		if req.OrderID != 0 {
			err = s.orders.InsertPayment(tx, orders.NewPayment{
				OrderID:       req.OrderID,
				BranchID:      req.BranchID,
				Amount:        req.Amount,
				PaymentMethod: sp.Method,
				DepositAmount: sp.DepositAmount,
				CashAmount:    sp.CashAmount,
				Notes:         description,
			})
			if err != nil {
				return fmt.Errorf("insert payment: %w", err)
			}

			err = s.orders.MarkPaid(tx, req.OrderID, sp.Method)
			if err != nil {
				return fmt.Errorf("mark order paid: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("process laundry transaction: %w", err)
	}

	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("reload customer: %w", err)
	}

	return &Result{Transaction: txn, Customer: customer}, nil
}

func validateLaundry(req LaundryRequest) error {
	if req.CustomerID == 0 {
		return fmt.Errorf("%w: customer id required", ErrValidation)
	}

	if req.BranchID == 0 {
		return fmt.Errorf("%w: branch id required", ErrValidation)
	}

	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	return nil
}
