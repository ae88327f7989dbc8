package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paulossjunior/exemplokiro-sub001/internal/adapter/http/dto"
	"github.com/paulossjunior/exemplokiro-sub001/internal/adapter/http/middleware"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase"
)

// AccountingAccountHandler handles accounting account HTTP requests.
type AccountingAccountHandler struct {
	accountingUC *usecase.AccountingAccountUseCase
}

// NewAccountingAccountHandler creates a new AccountingAccountHandler.
func NewAccountingAccountHandler(accountingUC *usecase.AccountingAccountUseCase) *AccountingAccountHandler {
	return &AccountingAccountHandler{accountingUC: accountingUC}
}

// Create creates a new accounting account.
func (h *AccountingAccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateAccountingAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountingUC.CreateAccountingAccount(r.Context(), req.ToUseCaseInput(user.ID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create accounting account", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountingAccountFromDomain(account))
}

// Get retrieves an accounting account by ID.
func (h *AccountingAccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountingUC.GetAccountingAccount(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get accounting account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountingAccountFromDomain(account))
}

// List lists accounting accounts.
func (h *AccountingAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accountingUC.ListAccountingAccounts(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounting accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountingAccountsFromDomain(accounts))
}
