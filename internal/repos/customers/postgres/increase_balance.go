package customers

import (
	"database/sql"
	"fmt"

	"github.com/moniclaundry/deposit-service/internal/repos/customers"
)

func (r *customersRepo) IncreaseBalance(tx *sql.Tx, customerID uint64, amount int64) error {
	res, err := tx.Exec(`
		UPDATE customers
		SET deposit_balance = deposit_balance + $2,
		    updated_at = now()
		WHERE id = $1
	`, customerID, amount)
	if err != nil {
		return fmt.Errorf("increase balance: %w", err)
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
