package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
	"github.com/paulossjunior/exemplokiro-sub001/internal/integrity"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// TransactionResponse represents a transaction in API responses. Hash and
// signature are exposed so external auditors can archive them.
type TransactionResponse struct {
	ID                  string          `json:"id"`
	BankAccountID       string          `json:"bank_account_id"`
	AccountingAccountID string          `json:"accounting_account_id"`
	Amount              decimal.Decimal `json:"amount"`
	Date                string          `json:"date"`
	Classification      string          `json:"classification"`
	CreatedBy           string          `json:"created_by"`
	CreatedAt           time.Time       `json:"created_at"`
	DataHash            string          `json:"data_hash"`
	DigitalSignature    string          `json:"digital_signature"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                  t.ID,
		BankAccountID:       t.BankAccountID,
		AccountingAccountID: t.AccountingAccountID,
		Amount:              t.Amount,
		Date:                t.Date.Format(dateLayout),
		Classification:      string(t.Classification),
		CreatedBy:           t.CreatedBy,
		CreatedAt:           t.CreatedAt,
		DataHash:            t.DataHash,
		DigitalSignature:    t.DigitalSignature,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// BankAccountResponse represents a bank account in API responses.
type BankAccountResponse struct {
	ID        string          `json:"id"`
	ProjectID string          `json:"project_id"`
	Name      string          `json:"name"`
	Budget    decimal.Decimal `json:"budget"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BankAccountFromDomain converts a domain bank account to a response.
func BankAccountFromDomain(a *domain.BankAccount) *BankAccountResponse {
	return &BankAccountResponse{
		ID:        a.ID,
		ProjectID: a.ProjectID,
		Name:      a.Name,
		Budget:    a.Budget,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// BankAccountsFromDomain converts domain bank accounts to responses.
func BankAccountsFromDomain(accounts []*domain.BankAccount) []*BankAccountResponse {
	result := make([]*BankAccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = BankAccountFromDomain(a)
	}
	return result
}

// AccountingAccountResponse represents an accounting account in API
// responses.
type AccountingAccountResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountingAccountFromDomain converts a domain accounting account to a
// response.
func AccountingAccountFromDomain(a *domain.AccountingAccount) *AccountingAccountResponse {
	return &AccountingAccountResponse{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
}

// AccountingAccountsFromDomain converts domain accounting accounts to
// responses.
func AccountingAccountsFromDomain(accounts []*domain.AccountingAccount) []*AccountingAccountResponse {
	result := make([]*AccountingAccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountingAccountFromDomain(a)
	}
	return result
}

// BalanceResponse represents an account balance in API responses.
type BalanceResponse struct {
	BankAccountID    string          `json:"bank_account_id"`
	Balance          decimal.Decimal `json:"balance"`
	TotalCredits     decimal.Decimal `json:"total_credits"`
	TotalDebits      decimal.Decimal `json:"total_debits"`
	TransactionCount int             `json:"transaction_count"`
	Budget           decimal.Decimal `json:"budget"`
	OverBudget       bool            `json:"over_budget"`
	BudgetWarning    string          `json:"budget_warning,omitempty"`
	CalculatedAt     time.Time       `json:"calculated_at"`
}

// BalanceFromUseCase converts a use case balance to a response.
func BalanceFromUseCase(ab *usecase.AccountBalance) *BalanceResponse {
	return &BalanceResponse{
		BankAccountID:    ab.BankAccountID,
		Balance:          ab.Result.Balance,
		TotalCredits:     ab.Result.TotalCredits,
		TotalDebits:      ab.Result.TotalDebits,
		TransactionCount: ab.Result.TransactionCount,
		Budget:           ab.Budget,
		OverBudget:       ab.OverBudget,
		BudgetWarning:    ab.BudgetWarning,
		CalculatedAt:     ab.Result.CalculatedAt,
	}
}

// AuditEntryResponse represents an audit entry in API responses.
type AuditEntryResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	ActionType       string    `json:"action_type"`
	EntityType       string    `json:"entity_type"`
	EntityID         string    `json:"entity_id"`
	Timestamp        time.Time `json:"timestamp"`
	PreviousValue    *string   `json:"previous_value,omitempty"`
	NewValue         string    `json:"new_value"`
	DataHash         string    `json:"data_hash"`
	DigitalSignature string    `json:"digital_signature"`
}

// AuditEntryFromDomain converts a domain audit entry to a response.
func AuditEntryFromDomain(e *domain.AuditEntry) *AuditEntryResponse {
	return &AuditEntryResponse{
		ID:               e.ID,
		UserID:           e.UserID,
		ActionType:       e.ActionType,
		EntityType:       e.EntityType,
		EntityID:         e.EntityID,
		Timestamp:        e.Timestamp,
		PreviousValue:    e.PreviousValue,
		NewValue:         e.NewValue,
		DataHash:         e.DataHash,
		DigitalSignature: e.DigitalSignature,
	}
}

// AuditEntriesFromDomain converts domain audit entries to responses.
func AuditEntriesFromDomain(entries []*domain.AuditEntry) []*AuditEntryResponse {
	result := make([]*AuditEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = AuditEntryFromDomain(e)
	}
	return result
}

// IntegrityReportResponse represents an integrity report in API responses.
type IntegrityReportResponse struct {
	VerificationTimestamp    time.Time `json:"verification_timestamp"`
	TotalTransactionsChecked int       `json:"total_transactions_checked"`
	TamperedTransactionIDs   []string  `json:"tampered_transaction_ids"`
	TotalAuditEntriesChecked int       `json:"total_audit_entries_checked"`
	TamperedAuditEntryIDs    []string  `json:"tampered_audit_entry_ids"`
	IsIntegrityValid         bool      `json:"is_integrity_valid"`
}

// IntegrityReportFromDomain converts an integrity report to a response.
func IntegrityReportFromDomain(r *integrity.IntegrityReport) *IntegrityReportResponse {
	return &IntegrityReportResponse{
		VerificationTimestamp:    r.VerificationTimestamp,
		TotalTransactionsChecked: r.TotalTransactionsChecked,
		TamperedTransactionIDs:   r.TamperedTransactionIDs,
		TotalAuditEntriesChecked: r.TotalAuditEntriesChecked,
		TamperedAuditEntryIDs:    r.TamperedAuditEntryIDs,
		IsIntegrityValid:         r.IsIntegrityValid,
	}
}

// UserResponse represents a user in API responses. The password hash is
// never serialized.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// RunningBalancesResponse represents per-transaction running balances.
type RunningBalancesResponse struct {
	BankAccountID string                     `json:"bank_account_id"`
	Balances      map[string]decimal.Decimal `json:"balances"`
}
