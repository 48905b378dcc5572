package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/moniclaundry/deposit-service/internal/repos/transactions"
)

var _ transactions.Transactions = (*transactionsRepo)(nil)

type transactionsRepo struct{ db *sql.DB }

func New(db *sql.DB) *transactionsRepo {
	return &transactionsRepo{db: db}
}

const txColumns = `
	id, reference, customer_id, branch_id, COALESCE(order_id, 0),
	type, payment_method, amount, deposit_amount, cash_amount, deposit_value,
	status, COALESCE(description, ''), created_at
`

func scanTransaction(row interface{ Scan(...any) error }) (*transactions.Transaction, error) {
	var t transactions.Transaction

	err := row.Scan(
		&t.ID, &t.Reference, &t.CustomerID, &t.BranchID, &t.OrderID,
		&t.Type, &t.PaymentMethod, &t.Amount, &t.DepositAmount, &t.CashAmount, &t.DepositValue,
		&t.Status, &t.Description, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *transactionsRepo) Insert(tx *sql.Tx, nt transactions.NewTransaction) (*transactions.Transaction, error) {
	t, err := scanTransaction(tx.QueryRow(`
		INSERT INTO transactions (
			reference, customer_id, branch_id, order_id,
			type, payment_method, amount, deposit_amount, cash_amount, deposit_value,
			description
		)
		VALUES ($1, $2, $3, NULLIF($4, 0), $5, $6, $7, $8, $9, $10, NULLIF($11, ''))
		RETURNING `+txColumns+`
	`,
		nt.Reference, nt.CustomerID, nt.BranchID, nt.OrderID,
		nt.Type, nt.PaymentMethod, nt.Amount, nt.DepositAmount, nt.CashAmount, nt.DepositValue,
		nt.Description,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return nil, transactions.ErrDuplicateReference
			}
		}

		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	return t, nil
}

func (r *transactionsRepo) LockForUpdate(tx *sql.Tx, transactionID uint64) (*transactions.Transaction, error) {
	t, err := scanTransaction(tx.QueryRow(`
		SELECT `+txColumns+`
		FROM transactions
		WHERE id = $1
		FOR UPDATE
	`, transactionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transactions.ErrTransactionNotFound
		}

		return nil, fmt.Errorf("lock/get transaction: %w", err)
	}

	return t, nil
}

func (r *transactionsRepo) MarkCancelled(tx *sql.Tx, transactionID uint64, reason string) error {
	res, err := tx.Exec(`
		UPDATE transactions
		SET status = 'cancelled',
		    description = COALESCE(description, '') || ' - CANCELLED: ' || $2
		WHERE id = $1
		  AND status = 'completed'
	`, transactionID, reason)
	if err != nil {
		return fmt.Errorf("mark cancelled: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return transactions.ErrAlreadyCancelled
	}

	return nil
}

func (r *transactionsRepo) ListByCustomer(ctx context.Context, customerID uint64, limit int) ([]transactions.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+txColumns+`
		FROM transactions
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []transactions.Transaction

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		out = append(out, *t)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return out, nil
}
