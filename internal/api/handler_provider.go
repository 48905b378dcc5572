package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/moniclaundry/deposit-service/internal/repos/customers"
	"github.com/moniclaundry/deposit-service/internal/repos/deposittypes"
	"github.com/moniclaundry/deposit-service/internal/repos/orders"
	"github.com/moniclaundry/deposit-service/internal/repos/transactions"
	"github.com/moniclaundry/deposit-service/internal/services/deposit"
)

// HandlerProvider wraps the DepositService and exposes HTTP handlers.
type HandlerProvider struct {
	svc *deposit.DepositService
}

// NewHandler returns a new Handler provider.
func NewHandler(svc *deposit.DepositService) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps service-layer sentinels onto HTTP statuses. Anything
// unmapped is an internal error; the wrapped chain is logged, not leaked.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, deposit.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, customers.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "customer not found")
	case errors.Is(err, deposittypes.ErrDepositTypeNotFound):
		writeError(w, http.StatusNotFound, "deposit type not found")
	case errors.Is(err, transactions.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, orders.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, transactions.ErrAlreadyCancelled):
		writeError(w, http.StatusConflict, "transaction is not completed")
	case errors.Is(err, transactions.ErrDuplicateReference):
		writeError(w, http.StatusConflict, "duplicate transaction reference")
	case errors.Is(err, deposittypes.ErrDuplicateDepositType):
		writeError(w, http.StatusConflict, "deposit type name already exists for this branch")
	case errors.Is(err, customers.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, "insufficient deposit balance")
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseIDFromPath(r *http.Request, name string) (uint64, error) {
	idStr := chi.URLParam(r, name)
	if idStr == "" {
		return 0, fmt.Errorf("missing %s", name)
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", name)
	}

	return id, nil
}

// decodeAndValidate decodes a capped JSON body into dst and runs struct-tag
// validation. Validate before mutate: nothing is written until this passes.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body")
		}

		return fmt.Errorf("invalid JSON: %w", err)
	}

	err = validate.Struct(dst)
	if err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	return nil
}

// --- Customer deposit handlers ---

// GetCustomerDepositHandler handles GET /customer/{customerId}/deposit
func (h *HandlerProvider) GetCustomerDepositHandler(w http.ResponseWriter, r *http.Request) {
	customerID, err := parseIDFromPath(r, "customerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customerId in path")
		return
	}

	c, err := h.svc.CustomerDeposit(r.Context(), customerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponse(c))
}

// ListCustomerTransactionsHandler handles GET /customer/{customerId}/transactions
func (h *HandlerProvider) ListCustomerTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	customerID, err := parseIDFromPath(r, "customerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customerId in path")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	ts, err := h.svc.CustomerTransactions(r.Context(), customerID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]transactionResponse, 0, len(ts))
	for i := range ts {
		out = append(out, toTransactionResponse(&ts[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": out})
}

// ExpiringDepositsHandler handles GET /deposits/expiring?branch_id=&days=
func (h *HandlerProvider) ExpiringDepositsHandler(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseUint(r.URL.Query().Get("branch_id"), 10, 64)
	if err != nil || branchID == 0 {
		writeError(w, http.StatusBadRequest, "branch_id query parameter required")
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	cs, err := h.svc.ExpiringDeposits(r.Context(), branchID, days)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]customerResponse, 0, len(cs))
	for i := range cs {
		out = append(out, toCustomerResponse(&cs[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"expiring_deposits_count": len(out),
		"expiring_deposits":       out,
	})
}

// --- Transaction processor handlers ---

// PurchaseDepositHandler handles POST /deposits/purchase
func (h *HandlerProvider) PurchaseDepositHandler(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest

	err := decodeAndValidate(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.PurchaseDeposit(r.Context(), deposit.PurchaseRequest{
		CustomerID:    req.CustomerID,
		DepositTypeID: req.DepositTypeID,
		PaymentMethod: req.PaymentMethod,
		HasExpiry:     req.HasExpiry,
		ExpiryDate:    req.ExpiryDate,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"transaction": toTransactionResponse(res.Transaction),
		"customer":    toCustomerResponse(res.Customer),
	})
}

// LaundryTransactionHandler handles POST /transactions/laundry
func (h *HandlerProvider) LaundryTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req laundryRequest

	err := decodeAndValidate(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.ProcessLaundryTransaction(r.Context(), deposit.LaundryRequest{
		CustomerID:      req.CustomerID,
		BranchID:        req.BranchID,
		Amount:          req.Amount,
		RemainderMethod: req.PaymentMethod,
		OrderID:         req.OrderID,
		Description:     req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"transaction": toTransactionResponse(res.Transaction),
		"customer":    toCustomerResponse(res.Customer),
		"payment_breakdown": map[string]int64{
			"total_amount":              res.Transaction.Amount,
			"deposit_used":              res.Transaction.DepositAmount,
			"cash_paid":                 res.Transaction.CashAmount,
			"remaining_deposit_balance": res.Customer.DepositBalance,
		},
	})
}

// CancelTransactionHandler handles POST /transactions/{transactionId}/cancel
func (h *HandlerProvider) CancelTransactionHandler(w http.ResponseWriter, r *http.Request) {
	transactionID, err := parseIDFromPath(r, "transactionId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transactionId in path")
		return
	}

	var req cancelRequest

	err = decodeAndValidate(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.CancelTransaction(r.Context(), transactionID, req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cancelled_transaction": toTransactionResponse(res.Transaction),
		"refund_amount":         res.Transaction.DepositAmount,
		"customer":              toCustomerResponse(res.Customer),
	})
}

// --- Deposit type catalog handlers ---

// ListDepositTypesHandler handles GET /deposit-types?branch_id=
func (h *HandlerProvider) ListDepositTypesHandler(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseUint(r.URL.Query().Get("branch_id"), 10, 64)
	if err != nil || branchID == 0 {
		writeError(w, http.StatusBadRequest, "branch_id query parameter required")
		return
	}

	dts, err := h.svc.ActiveDepositTypes(r.Context(), branchID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]depositTypeResponse, 0, len(dts))
	for i := range dts {
		out = append(out, toDepositTypeResponse(&dts[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{"deposit_types": out})
}

// CreateDepositTypeHandler handles POST /deposit-types
func (h *HandlerProvider) CreateDepositTypeHandler(w http.ResponseWriter, r *http.Request) {
	var req depositTypeRequest

	err := decodeAndValidate(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dt, err := h.svc.CreateDepositType(r.Context(), deposittypes.NewDepositType{
		BranchID:      req.BranchID,
		Name:          req.Name,
		PurchasePrice: req.PurchasePrice,
		DepositValue:  req.DepositValue,
		Description:   req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDepositTypeResponse(dt))
}

// UpdateDepositTypeHandler handles PATCH /deposit-types/{typeId}
func (h *HandlerProvider) UpdateDepositTypeHandler(w http.ResponseWriter, r *http.Request) {
	typeID, err := parseIDFromPath(r, "typeId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid typeId in path")
		return
	}

	var req depositTypeRequest

	err = decodeAndValidate(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dt, err := h.svc.UpdateDepositType(r.Context(), deposittypes.DepositType{
		ID:            typeID,
		BranchID:      req.BranchID,
		Name:          req.Name,
		PurchasePrice: req.PurchasePrice,
		DepositValue:  req.DepositValue,
		Description:   req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toDepositTypeResponse(dt))
}

// DeactivateDepositTypeHandler handles DELETE /deposit-types/{typeId}
func (h *HandlerProvider) DeactivateDepositTypeHandler(w http.ResponseWriter, r *http.Request) {
	typeID, err := parseIDFromPath(r, "typeId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid typeId in path")
		return
	}

	err = h.svc.DeactivateDepositType(r.Context(), typeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
