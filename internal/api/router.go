package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moniclaundry/deposit-service/internal/services/deposit"
)

// NewRouter constructs the router with all API endpoints registered.
func NewRouter(svc *deposit.DepositService) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/customer/{customerId}/deposit", h.GetCustomerDepositHandler)
	r.Get("/customer/{customerId}/transactions", h.ListCustomerTransactionsHandler)

	r.Post("/deposits/purchase", h.PurchaseDepositHandler)
	r.Get("/deposits/expiring", h.ExpiringDepositsHandler)

	r.Post("/transactions/laundry", h.LaundryTransactionHandler)
	r.Post("/transactions/{transactionId}/cancel", h.CancelTransactionHandler)

	r.Get("/deposit-types", h.ListDepositTypesHandler)
	r.Post("/deposit-types", h.CreateDepositTypeHandler)
	r.Patch("/deposit-types/{typeId}", h.UpdateDepositTypeHandler)
	r.Delete("/deposit-types/{typeId}", h.DeactivateDepositTypeHandler)

	return r
}
