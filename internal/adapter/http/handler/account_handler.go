package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paulossjunior/exemplokiro-sub001/internal/adapter/http/dto"
	"github.com/paulossjunior/exemplokiro-sub001/internal/adapter/http/middleware"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase"
)

// BankAccountHandler handles bank account HTTP requests.
type BankAccountHandler struct {
	accountUC *usecase.BankAccountUseCase
}

// NewBankAccountHandler creates a new BankAccountHandler.
func NewBankAccountHandler(accountUC *usecase.BankAccountUseCase) *BankAccountHandler {
	return &BankAccountHandler{accountUC: accountUC}
}

// Create creates a new bank account.
func (h *BankAccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateBankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateBankAccount(r.Context(), req.ToUseCaseInput(user.ID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create bank account", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.BankAccountFromDomain(account))
}

// Get retrieves a bank account by ID.
func (h *BankAccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.GetBankAccount(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get bank account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BankAccountFromDomain(account))
}

// List lists bank accounts.
func (h *BankAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accountUC.ListBankAccounts(r.Context(), usecase.ListBankAccountsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bank accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BankAccountsFromDomain(accounts))
}
