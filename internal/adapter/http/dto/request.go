package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase"
)

// dateLayout is the wire format for transaction dates.
const dateLayout = "2006-01-02"

// CreateTransactionRequest represents a request to register a transaction.
type CreateTransactionRequest struct {
	BankAccountID       string          `json:"bank_account_id"`
	AccountingAccountID string          `json:"accounting_account_id"`
	Amount              decimal.Decimal `json:"amount"`
	Date                string          `json:"date"`
	Classification      string          `json:"classification"`
}

// ToUseCaseInput converts to use case input. createdBy is taken from the
// authenticated actor, never from the request body.
func (r *CreateTransactionRequest) ToUseCaseInput(createdBy string) (usecase.CreateTransactionInput, error) {
	date, err := time.ParseInLocation(dateLayout, r.Date, time.UTC)
	if err != nil {
		return usecase.CreateTransactionInput{}, fmt.Errorf("invalid date %q: expected format %s", r.Date, dateLayout)
	}

	return usecase.CreateTransactionInput{
		BankAccountID:       r.BankAccountID,
		AccountingAccountID: r.AccountingAccountID,
		Amount:              r.Amount,
		Date:                date,
		Classification:      domain.Classification(r.Classification),
		CreatedBy:           createdBy,
	}, nil
}

// CreateBankAccountRequest represents a request to create a bank account.
type CreateBankAccountRequest struct {
	ProjectID string          `json:"project_id"`
	Name      string          `json:"name"`
	Budget    decimal.Decimal `json:"budget"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBankAccountRequest) ToUseCaseInput(createdBy string) usecase.CreateBankAccountInput {
	return usecase.CreateBankAccountInput{
		ProjectID: r.ProjectID,
		Name:      r.Name,
		Budget:    r.Budget,
		CreatedBy: createdBy,
	}
}

// CreateAccountingAccountRequest represents a request to create an
// accounting account.
type CreateAccountingAccountRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountingAccountRequest) ToUseCaseInput(createdBy string) usecase.CreateAccountingAccountInput {
	return usecase.CreateAccountingAccountInput{
		Code:      r.Code,
		Name:      r.Name,
		CreatedBy: createdBy,
	}
}

// CreateUserRequest represents a request to create a user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
