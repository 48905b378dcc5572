package deposit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moniclaundry/deposit-service/internal/repos/customers"
	"github.com/moniclaundry/deposit-service/internal/repos/transactions"
)

var customerMockColumns = []string{
	"id", "branch_id", "name", "phone",
	"deposit_balance", "deposit_type", "deposit_type_id",
	"has_expiry", "expiry_date",
	"total_orders", "total_spent", "total_deposit", "is_active",
}

var txnMockColumns = []string{
	"id", "reference", "customer_id", "branch_id", "order_id",
	"type", "payment_method", "amount", "deposit_amount", "cash_amount", "deposit_value",
	"status", "description", "created_at",
}

// A cancellation that loses the status race after the refund has been
// written must roll everything back: no commit, no partial refund.
func TestCancelTransaction_RollsBackOnStatusRace(t *testing.T) {
	t.Parallel()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	svc := New(mockDB)

	mock.ExpectBegin()

	mock.ExpectQuery(`(?s)SELECT.*FROM transactions.*FOR UPDATE`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(txnMockColumns).AddRow(
			7, "LAU-ref", 1, 1, 0,
			transactions.TypeLaundry, transactions.MethodDeposit, 20_000, 20_000, 0, 0,
			transactions.StatusCompleted, "Laundry service payment", time.Now(),
		))

	mock.ExpectQuery(`(?s)SELECT.*FROM customers.*FOR UPDATE`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(customerMockColumns).AddRow(
			1, 1, "Test Customer", "",
			5_000, "", 0,
			false, nil,
			3, 60_000, 0, true,
		))

	mock.ExpectExec(`(?s)UPDATE customers.*deposit_balance \+`).
		WithArgs(uint64(1), int64(20_000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(`(?s)UPDATE customers.*total_orders`).
		WithArgs(uint64(1), int64(-1), int64(-20_000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Another session flipped the status between our read and the write:
	// zero rows affected.
	mock.ExpectExec(`(?s)UPDATE transactions.*status = 'cancelled'`).
		WithArgs(uint64(7), "duplicate click").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectRollback()

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	_, err = svc.CancelTransaction(ctx, 7, "duplicate click")
	require.ErrorIs(t, err, transactions.ErrAlreadyCancelled)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed refund (customer row gone mid-flight) also aborts the whole
// transaction before the status write.
func TestCancelTransaction_RollsBackOnRefundFailure(t *testing.T) {
	t.Parallel()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	svc := New(mockDB)

	mock.ExpectBegin()

	mock.ExpectQuery(`(?s)SELECT.*FROM transactions.*FOR UPDATE`).
		WithArgs(uint64(8)).
		WillReturnRows(sqlmock.NewRows(txnMockColumns).AddRow(
			8, "LAU-ref-2", 2, 1, 0,
			transactions.TypeLaundry, transactions.MethodDeposit, 10_000, 10_000, 0, 0,
			transactions.StatusCompleted, "", time.Now(),
		))

	mock.ExpectQuery(`(?s)SELECT.*FROM customers.*FOR UPDATE`).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows(customerMockColumns).AddRow(
			2, 1, "Test Customer", "",
			0, "", 0,
			false, nil,
			1, 10_000, 0, true,
		))

	mock.ExpectExec(`(?s)UPDATE customers.*deposit_balance \+`).
		WithArgs(uint64(2), int64(10_000)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectRollback()

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	_, err = svc.CancelTransaction(ctx, 8, "refund me")
	require.ErrorIs(t, err, customers.ErrCustomerNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
