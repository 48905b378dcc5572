package customers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/moniclaundry/deposit-service/internal/repos/customers"
)

func (r *customersRepo) GetByID(ctx context.Context, customerID uint64) (*customers.Customer, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE id = $1
	`, customerID)

	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customers.ErrCustomerNotFound
		}

		return nil, fmt.Errorf("get customer: %w", err)
	}

	return c, nil
}
