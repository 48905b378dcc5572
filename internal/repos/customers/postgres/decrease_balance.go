package customers

import (
	"database/sql"
	"fmt"

	"github.com/moniclaundry/deposit-service/internal/repos/customers"
)

// DecreaseBalance deducts amount from the customer's deposit balance. The
// guard on the current balance means a stale computation can never overdraw:
// zero rows affected surfaces ErrInsufficientBalance instead.
func (r *customersRepo) DecreaseBalance(tx *sql.Tx, customerID uint64, amount int64) error {
	res, err := tx.Exec(`
		UPDATE customers
		SET deposit_balance = deposit_balance - $2,
		    updated_at = now()
		WHERE id = $1
		  AND deposit_balance >= $2
	`, customerID, amount)
	if err != nil {
		return fmt.Errorf("decrease balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return customers.ErrInsufficientBalance
	}

	return nil
}
