package customers

import (
	"database/sql"
	"fmt"
)

// AddTotalDeposit adjusts the lifetime purchased-deposit counter. Negative
// deltas reverse a cancelled purchase.
func (r *customersRepo) AddTotalDeposit(tx *sql.Tx, customerID uint64, delta int64) error {
	_, err := tx.Exec(`
		UPDATE customers
		SET total_deposit = total_deposit + $2,
		    updated_at = now()
		WHERE id = $1
	`, customerID, delta)
	if err != nil {
		return fmt.Errorf("add total deposit: %w", err)
	}

	return nil
}

// AddOrderStats adjusts the order count and lifetime spend counters.
func (r *customersRepo) AddOrderStats(tx *sql.Tx, customerID uint64, orders int64, spent int64) error {
	_, err := tx.Exec(`
		UPDATE customers
		SET total_orders = total_orders + $2,
		    total_spent = total_spent + $3,
		    updated_at = now()
		WHERE id = $1
	`, customerID, orders, spent)
	if err != nil {
		return fmt.Errorf("add order stats: %w", err)
	}

	return nil
}
