package customers

import (
	"context"
	"fmt"
	"time"

	"github.com/moniclaundry/deposit-service/internal/repos/customers"
)

// ListExpiring returns active customers whose deposit plan expires on or
// before the given cutoff and who still hold a positive balance.
func (r *customersRepo) ListExpiring(ctx context.Context, branchID uint64, until time.Time) ([]customers.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE branch_id = $1
		  AND is_active
		  AND has_expiry
		  AND deposit_balance > 0
		  AND expiry_date <= $2
		ORDER BY expiry_date
	`, branchID, until)
	if err != nil {
		return nil, fmt.Errorf("list expiring: %w", err)
	}
	defer rows.Close()

	var out []customers.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *c)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate expiring: %w", err)
	}

	return out, nil
}
