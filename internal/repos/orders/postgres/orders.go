package orders

import (
	"database/sql"
	"fmt"

	"github.com/moniclaundry/deposit-service/internal/repos/orders"
)

var _ orders.Orders = (*ordersRepo)(nil)

type ordersRepo struct{ db *sql.DB }

func New(db *sql.DB) *ordersRepo {
	return &ordersRepo{db: db}
}

func (r *ordersRepo) InsertPayment(tx *sql.Tx, p orders.NewPayment) error {
	_, err := tx.Exec(`
		INSERT INTO payments (
			order_id, branch_id, amount, payment_method,
			deposit_amount, cash_amount, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
	`, p.OrderID, p.BranchID, p.Amount, p.PaymentMethod, p.DepositAmount, p.CashAmount, p.Notes)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

// MarkPaid flips the order to lunas (settled). Zero rows means the order id
// does not exist, which the processor reports before writing anything else.
func (r *ordersRepo) MarkPaid(tx *sql.Tx, orderID uint64, paymentMethod string) error {
	res, err := tx.Exec(`
		UPDATE orders
		SET payment_method = $2,
		    payment_status = 'lunas'
		WHERE id = $1
	`, orderID, paymentMethod)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return orders.ErrOrderNotFound
	}

	return nil
}

func (r *ordersRepo) CancelPayments(tx *sql.Tx, orderID uint64) error {
	_, err := tx.Exec(`
		UPDATE payments
		SET status = 'cancelled'
		WHERE order_id = $1
		  AND status = 'completed'
	`, orderID)
	if err != nil {
		return fmt.Errorf("cancel payments: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE orders
		SET payment_status = 'belum lunas'
		WHERE id = $1
	`, orderID)
	if err != nil {
		return fmt.Errorf("unsettle order: %w", err)
	}

	return nil
}
