// Package deposit is the single authority over customer deposit balances.
// Every operation that moves a balance runs inside one database transaction
// with the customer row locked, so the balance and the transaction log cannot
// diverge and concurrent operations on the same customer serialize.
package deposit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moniclaundry/deposit-service/internal/repos/customers"
	pgcustomers "github.com/moniclaundry/deposit-service/internal/repos/customers/postgres"
	"github.com/moniclaundry/deposit-service/internal/repos/deposittypes"
	pgdeposittypes "github.com/moniclaundry/deposit-service/internal/repos/deposittypes/postgres"
	"github.com/moniclaundry/deposit-service/internal/repos/orders"
	pgorders "github.com/moniclaundry/deposit-service/internal/repos/orders/postgres"
	"github.com/moniclaundry/deposit-service/internal/repos/transactions"
	pgtransactions "github.com/moniclaundry/deposit-service/internal/repos/transactions/postgres"
)

type DepositService struct {
	db        *sql.DB
	customers customers.Customers
	types     deposittypes.DepositTypes
	txns      transactions.Transactions
	orders    orders.Orders
}

func New(db *sql.DB) *DepositService {
	return &DepositService{
		db:        db,
		customers: pgcustomers.New(db),
		types:     pgdeposittypes.New(db),
		txns:      pgtransactions.New(db),
		orders:    pgorders.New(db),
	}
}

// CustomerDeposit returns the customer's current balance and expiry metadata
// (no locks; suitable for the GET endpoint).
func (s *DepositService) CustomerDeposit(ctx context.Context, customerID uint64) (*customers.Customer, error) {
	c, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return c, nil
}

// CustomerTransactions returns the customer's recent transactions, newest
// first.
func (s *DepositService) CustomerTransactions(ctx context.Context, customerID uint64, limit int) ([]transactions.Transaction, error) {
	ts, err := s.txns.ListByCustomer(ctx, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return ts, nil
}

// ExpiringDeposits lists customers whose deposit plan expires within the
// given number of days (default: the 14-day window).
func (s *DepositService) ExpiringDeposits(ctx context.Context, branchID uint64, days int) ([]customers.Customer, error) {
	window := ExpiryWindow
	if days > 0 {
		window = time.Duration(days) * 24 * time.Hour
	}

	cs, err := s.customers.ListExpiring(ctx, branchID, time.Now().Add(window))
	if err != nil {
		return nil, fmt.Errorf("list expiring deposits: %w", err)
	}

	return cs, nil
}

// --- Deposit type catalog passthroughs ---

func (s *DepositService) ActiveDepositTypes(ctx context.Context, branchID uint64) ([]deposittypes.DepositType, error) {
	return s.types.ListActive(ctx, branchID)
}

func (s *DepositService) CreateDepositType(ctx context.Context, nt deposittypes.NewDepositType) (*deposittypes.DepositType, error) {
	return s.types.Create(ctx, nt)
}

func (s *DepositService) UpdateDepositType(ctx context.Context, dt deposittypes.DepositType) (*deposittypes.DepositType, error) {
	return s.types.Update(ctx, dt)
}

func (s *DepositService) DeactivateDepositType(ctx context.Context, typeID uint64) error {
	return s.types.Deactivate(ctx, typeID)
}

// newReference builds a human-facing reference like LAU-<uuidv7>. UUIDv7
// keeps references roughly time-ordered.
func newReference(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	return fmt.Sprintf("%s-%s", prefix, id)
}
