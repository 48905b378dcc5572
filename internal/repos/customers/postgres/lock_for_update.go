package customers

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/moniclaundry/deposit-service/internal/repos/customers"
)

// LockForUpdate reads the customer row under FOR UPDATE, serializing every
// balance-mutating operation on the same customer for the duration of the
// enclosing transaction.
func (r *customersRepo) LockForUpdate(tx *sql.Tx, customerID uint64) (*customers.Customer, error) {
	row := tx.QueryRow(`
		SELECT `+customerColumns+`
		FROM customers
		WHERE id = $1
		FOR UPDATE
	`, customerID)

	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customers.ErrCustomerNotFound
		}

		return nil, fmt.Errorf("lock/get customer: %w", err)
	}

	return c, nil
}
