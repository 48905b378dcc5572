package customers

import (
	"database/sql"
	"fmt"

	"github.com/moniclaundry/deposit-service/internal/repos/customers"
)

func (r *customersRepo) SetDepositPlan(tx *sql.Tx, customerID uint64, plan customers.DepositPlan) error {
	res, err := tx.Exec(`
		UPDATE customers
		SET deposit_type = $2,
		    deposit_type_id = $3,
		    has_expiry = $4,
		    expiry_date = $5,
		    updated_at = now()
		WHERE id = $1
	`, customerID, plan.TypeName, plan.TypeID, plan.HasExpiry, plan.ExpiryDate)
	if err != nil {
		return fmt.Errorf("set deposit plan: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return customers.ErrCustomerNotFound
	}

	return nil
}

func (r *customersRepo) ClearDepositPlan(tx *sql.Tx, customerID uint64) error {
	res, err := tx.Exec(`
		UPDATE customers
		SET deposit_type = NULL,
		    deposit_type_id = NULL,
		    has_expiry = FALSE,
		    expiry_date = NULL,
		    updated_at = now()
		WHERE id = $1
	`, customerID)
	if err != nil {
		return fmt.Errorf("clear deposit plan: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return customers.ErrCustomerNotFound
	}

	return nil
}
