package controllers

import (
	"net/http"

	"github.com/estatelab/estate-backend/api/responses"
	"github.com/estatelab/estate-backend/internal/payments"
	"github.com/estatelab/estate-backend/pkg/logger"
)

// ContractPayments returns the intake ledger rows for a contract together
// with the running totals the back office shows next to them.
func ContractPayments(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contractID, err := pathUUID(r, "contractId", "contract id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListPayments(r.Context(), contractID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total, err := svc.TotalPaid(r.Context(), contractID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lastOrder, err := svc.LastReachedOrder(r.Context(), contractID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"payments":           rows,
			"total_paid":         total,
			"last_reached_order": lastOrder,
		})
	}
}
