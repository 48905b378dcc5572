package customers

import (
	"database/sql"
	"fmt"

	"github.com/moniclaundry/deposit-service/internal/repos/customers"
)

var _ customers.Customers = (*customersRepo)(nil)

type customersRepo struct{ db *sql.DB }

func New(db *sql.DB) *customersRepo {
	return &customersRepo{db: db}
}

const customerColumns = `
	id, branch_id, name, COALESCE(phone, ''),
	deposit_balance, COALESCE(deposit_type, ''), COALESCE(deposit_type_id, 0),
	has_expiry, expiry_date,
	total_orders, total_spent, total_deposit, is_active
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*customers.Customer, error) {
	var c customers.Customer

	var expiry sql.NullTime

	err := row.Scan(
		&c.ID, &c.BranchID, &c.Name, &c.Phone,
		&c.DepositBalance, &c.DepositType, &c.DepositTypeID,
		&c.HasExpiry, &expiry,
		&c.TotalOrders, &c.TotalSpent, &c.TotalDeposit, &c.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("scan customer: %w", err)
	}

	if expiry.Valid {
		t := expiry.Time
		c.ExpiryDate = &t
	}

	return &c, nil
}
