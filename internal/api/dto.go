package api

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/moniclaundry/deposit-service/internal/repos/customers"
	"github.com/moniclaundry/deposit-service/internal/repos/deposittypes"
	"github.com/moniclaundry/deposit-service/internal/repos/transactions"
	"github.com/moniclaundry/deposit-service/internal/services/deposit"
)

// validate runs struct-tag validation on request payloads before any
// database work happens.
var validate = validator.New()

type purchaseRequest struct {
	CustomerID    uint64     `json:"customer_id"     validate:"required"`
	DepositTypeID uint64     `json:"deposit_type_id" validate:"required"`
	PaymentMethod string     `json:"payment_method"  validate:"required,oneof=cash transfer qris"`
	HasExpiry     bool       `json:"has_expiry"`
	ExpiryDate    *time.Time `json:"expiry_date"     validate:"required_if=HasExpiry true"`
}

type laundryRequest struct {
	CustomerID uint64 `json:"customer_id" validate:"required"`
	BranchID   uint64 `json:"branch_id"   validate:"required"`
	Amount     int64  `json:"amount"      validate:"required,gt=0"`
	// PaymentMethod covers the non-deposit remainder on mixed settlements.
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=cash transfer qris"`
	OrderID       uint64 `json:"order_id"`
	Description   string `json:"description"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type depositTypeRequest struct {
	BranchID      uint64 `json:"branch_id"      validate:"required"`
	Name          string `json:"name"           validate:"required"`
	PurchasePrice int64  `json:"purchase_price" validate:"required,gt=0"`
	DepositValue  int64  `json:"deposit_value"  validate:"required,gt=0"`
	Description   string `json:"description"`
}

type customerResponse struct {
	ID             uint64     `json:"id"`
	BranchID       uint64     `json:"branch_id"`
	Name           string     `json:"name"`
	DepositBalance int64      `json:"deposit_balance"`
	DepositType    string     `json:"deposit_type,omitempty"`
	HasExpiry      bool       `json:"has_expiry"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	ExpiringSoon   bool       `json:"expiring_soon"`
	TotalOrders    int64      `json:"total_orders"`
	TotalSpent     int64      `json:"total_spent"`
	TotalDeposit   int64      `json:"total_deposit"`
}

func toCustomerResponse(c *customers.Customer) customerResponse {
	return customerResponse{
		ID:             c.ID,
		BranchID:       c.BranchID,
		Name:           c.Name,
		DepositBalance: c.DepositBalance,
		DepositType:    c.DepositType,
		HasExpiry:      c.HasExpiry,
		ExpiryDate:     c.ExpiryDate,
		ExpiringSoon:   deposit.ExpiringSoon(c, time.Now()),
		TotalOrders:    c.TotalOrders,
		TotalSpent:     c.TotalSpent,
		TotalDeposit:   c.TotalDeposit,
	}
}

type transactionResponse struct {
	ID            uint64    `json:"id"`
	Reference     string    `json:"reference"`
	CustomerID    uint64    `json:"customer_id"`
	BranchID      uint64    `json:"branch_id"`
	OrderID       uint64    `json:"order_id,omitempty"`
	Type          string    `json:"type"`
	PaymentMethod string    `json:"payment_method"`
	Amount        int64     `json:"amount"`
	DepositAmount int64     `json:"deposit_amount"`
	CashAmount    int64     `json:"cash_amount"`
	Status        string    `json:"status"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toTransactionResponse(t *transactions.Transaction) transactionResponse {
	return transactionResponse{
		ID:            t.ID,
		Reference:     t.Reference,
		CustomerID:    t.CustomerID,
		BranchID:      t.BranchID,
		OrderID:       t.OrderID,
		Type:          t.Type,
		PaymentMethod: t.PaymentMethod,
		Amount:        t.Amount,
		DepositAmount: t.DepositAmount,
		CashAmount:    t.CashAmount,
		Status:        t.Status,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

type depositTypeResponse struct {
	ID            uint64 `json:"id"`
	BranchID      uint64 `json:"branch_id"`
	Name          string `json:"name"`
	PurchasePrice int64  `json:"purchase_price"`
	DepositValue  int64  `json:"deposit_value"`
	Description   string `json:"description,omitempty"`
	IsActive      bool   `json:"is_active"`
}

func toDepositTypeResponse(dt *deposittypes.DepositType) depositTypeResponse {
	return depositTypeResponse{
		ID:            dt.ID,
		BranchID:      dt.BranchID,
		Name:          dt.Name,
		PurchasePrice: dt.PurchasePrice,
		DepositValue:  dt.DepositValue,
		Description:   dt.Description,
		IsActive:      dt.IsActive,
	}
}
