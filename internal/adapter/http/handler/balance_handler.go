package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paulossjunior/exemplokiro-sub001/internal/adapter/http/dto"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase"
)

// BalanceHandler handles balance HTTP requests.
type BalanceHandler struct {
	balanceUC *usecase.BalanceUseCase
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC *usecase.BalanceUseCase) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// GetBalance returns the current balance of a bank account, including
// budget status.
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	bankAccountID := chi.URLParam(r, "id")
	if bankAccountID == "" {
		writeError(w, http.StatusBadRequest, "missing bank account ID", "")
		return
	}

	balance, err := h.balanceUC.GetAccountBalance(r.Context(), bankAccountID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromUseCase(balance))
}

// GetRunningBalances returns the balance after each transaction of a
// bank account, in chronological order.
func (h *BalanceHandler) GetRunningBalances(w http.ResponseWriter, r *http.Request) {
	bankAccountID := chi.URLParam(r, "id")
	if bankAccountID == "" {
		writeError(w, http.StatusBadRequest, "missing bank account ID", "")
		return
	}

	balances, err := h.balanceUC.GetRunningBalances(r.Context(), bankAccountID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get running balances", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.RunningBalancesResponse{
		BankAccountID: bankAccountID,
		Balances:      balances,
	})
}
