package deposit

import (
	"context"
	"fmt"

	"github.com/moniclaundry/deposit-service/internal/infra/pgutils"
	"github.com/moniclaundry/deposit-service/internal/repos/customers"
	"github.com/moniclaundry/deposit-service/internal/repos/deposittypes"
	"github.com/moniclaundry/deposit-service/internal/repos/transactions"

	"database/sql"
)

// PurchaseDeposit runs the full top-up flow in a single DB transaction:
//
// 1) Lock the customer row (FOR UPDATE).
// 2) Resolve the deposit type; it must be active.
// 3) Insert the deposit_purchase transaction with a snapshot of the
//    credited value.
// 4) Credit deposit_value (not purchase_price) to the balance and write the
//    plan metadata.
func (s *DepositService) PurchaseDeposit(ctx context.Context, req PurchaseRequest) (*Result, error) {
	err := validatePurchase(req)
	if err != nil {
		return nil, err
	}

	var txn *transactions.Transaction

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		customer, err := s.customers.LockForUpdate(tx, req.CustomerID)
		if err != nil {
			return fmt.Errorf("lock customer: %w", err)
		}

		if !customer.IsActive {
			return fmt.Errorf("inactive customer: %w", customers.ErrCustomerNotFound)
		}

		dt, err := s.types.Get(tx, req.DepositTypeID)
		if err != nil {
			return fmt.Errorf("get deposit type: %w", err)
		}

		if !dt.IsActive {
			return fmt.Errorf("inactive deposit type: %w", deposittypes.ErrDepositTypeNotFound)
		}

		txn, err = s.txns.Insert(tx, transactions.NewTransaction{
			Reference:     newReference("DEP"),
			CustomerID:    customer.ID,
			BranchID:      customer.BranchID,
			Type:          transactions.TypeDepositPurchase,
			PaymentMethod: req.PaymentMethod,
			Amount:        dt.PurchasePrice,
			DepositValue:  dt.DepositValue,
			Description:   fmt.Sprintf("Purchase %s deposit - paid %d", dt.Name, dt.PurchasePrice),
		})
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		err = s.customers.IncreaseBalance(tx, customer.ID, dt.DepositValue)
		if err != nil {
			return fmt.Errorf("increase balance: %w", err)
		}

		err = s.customers.AddTotalDeposit(tx, customer.ID, dt.PurchasePrice)
		if err != nil {
			return fmt.Errorf("add total deposit: %w", err)
		}

		plan := customers.DepositPlan{
			TypeID:    dt.ID,
			TypeName:  dt.Name,
			HasExpiry: req.HasExpiry,
		}
		if req.HasExpiry {
			plan.ExpiryDate = req.ExpiryDate
		}

		err = s.customers.SetDepositPlan(tx, customer.ID, plan)
		if err != nil {
			return fmt.Errorf("set deposit plan: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("purchase deposit: %w", err)
	}

	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("reload customer: %w", err)
	}

	return &Result{Transaction: txn, Customer: customer}, nil
}

func validatePurchase(req PurchaseRequest) error {
	if req.CustomerID == 0 {
		return fmt.Errorf("%w: customer id required", ErrValidation)
	}

	if req.DepositTypeID == 0 {
		return fmt.Errorf("%w: deposit type id required", ErrValidation)
	}

	if !validPurchaseMethod(req.PaymentMethod) {
		return fmt.Errorf("%w: payment method must be cash, transfer or qris", ErrValidation)
	}

	if req.HasExpiry && req.ExpiryDate == nil {
		return fmt.Errorf("%w: expiry date required when has_expiry is set", ErrValidation)
	}

	return nil
}
