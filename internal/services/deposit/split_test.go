package deposit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moniclaundry/deposit-service/internal/repos/customers"
	"github.com/moniclaundry/deposit-service/internal/repos/transactions"
)

func TestComputeSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		balance     int64
		amount      int64
		remainder   string
		wantMethod  string
		wantDeposit int64
		wantCash    int64
		wantErr     bool
	}{
		{
			name:        "balance_covers_bill",
			balance:     50_000,
			amount:      30_000,
			wantMethod:  transactions.MethodDeposit,
			wantDeposit: 30_000,
			wantCash:    0,
		},
		{
			name:        "balance_equals_bill",
			balance:     30_000,
			amount:      30_000,
			wantMethod:  transactions.MethodDeposit,
			wantDeposit: 30_000,
			wantCash:    0,
		},
		{
			name:        "mixed_consumes_entire_balance",
			balance:     20_000,
			amount:      50_000,
			remainder:   transactions.MethodCash,
			wantMethod:  transactions.MethodMixed,
			wantDeposit: 20_000,
			wantCash:    30_000,
		},
		{
			name:        "mixed_with_zero_balance",
			balance:     0,
			amount:      10_000,
			remainder:   transactions.MethodQRIS,
			wantMethod:  transactions.MethodMixed,
			wantDeposit: 0,
			wantCash:    10_000,
		},
		{
			name:      "missing_remainder_method",
			balance:   0,
			amount:    10_000,
			remainder: "",
			wantErr:   true,
		},
		{
			name:      "deposit_is_not_a_remainder_method",
			balance:   5_000,
			amount:    10_000,
			remainder: transactions.MethodDeposit,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sp, err := computeSplit(tt.balance, tt.amount, tt.remainder)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation), "want ErrValidation, got: %v", err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, sp.Method)
			assert.Equal(t, tt.wantDeposit, sp.DepositAmount)
			assert.Equal(t, tt.wantCash, sp.CashAmount)

			// The split always accounts for the full bill.
			assert.Equal(t, tt.amount, sp.DepositAmount+sp.CashAmount)
		})
	}
}

func TestExpiringSoon(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	in := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}

	tests := []struct {
		name string
		c    customers.Customer
		want bool
	}{
		{
			name: "inside_window",
			c:    customers.Customer{DepositBalance: 1, HasExpiry: true, ExpiryDate: in(7 * 24 * time.Hour)},
			want: true,
		},
		{
			name: "already_expired_still_reported",
			c:    customers.Customer{DepositBalance: 1, HasExpiry: true, ExpiryDate: in(-24 * time.Hour)},
			want: true,
		},
		{
			name: "outside_window",
			c:    customers.Customer{DepositBalance: 1, HasExpiry: true, ExpiryDate: in(15 * 24 * time.Hour)},
			want: false,
		},
		{
			name: "no_expiry",
			c:    customers.Customer{DepositBalance: 1},
			want: false,
		},
		{
			name: "zero_balance_never_expiring",
			c:    customers.Customer{DepositBalance: 0, HasExpiry: true, ExpiryDate: in(time.Hour)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ExpiringSoon(&tt.c, now))
		})
	}
}
