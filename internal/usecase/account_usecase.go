package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
	"github.com/paulossjunior/exemplokiro-sub001/internal/integrity"
)

// BankAccountUseCase handles bank account management. Account creation is
// an audited action.
type BankAccountUseCase struct {
	bankAccountRepo BankAccountRepository
	auditRepo       AuditRepository
	recorder        *integrity.Recorder
	idGen           IDGenerator
}

// NewBankAccountUseCase creates a new BankAccountUseCase.
func NewBankAccountUseCase(
	bankAccountRepo BankAccountRepository,
	auditRepo AuditRepository,
	recorder *integrity.Recorder,
	idGen IDGenerator,
) *BankAccountUseCase {
	return &BankAccountUseCase{
		bankAccountRepo: bankAccountRepo,
		auditRepo:       auditRepo,
		recorder:        recorder,
		idGen:           idGen,
	}
}

// CreateBankAccountInput represents input for creating a bank account.
type CreateBankAccountInput struct {
	ProjectID string
	Name      string
	Budget    decimal.Decimal
	CreatedBy string
}

// CreateBankAccount creates a new project bank account and its audit entry.
func (uc *BankAccountUseCase) CreateBankAccount(ctx context.Context, input CreateBankAccountInput) (*domain.BankAccount, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateBudget(input.Budget); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.BankAccount{
		ID:        uc.idGen.Generate(),
		ProjectID: input.ProjectID,
		Name:      input.Name,
		Budget:    input.Budget,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.bankAccountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	entry, err := uc.recorder.Record(
		input.CreatedBy,
		domain.AuditActionCreate,
		domain.EntityTypeBankAccount,
		account.ID,
		nil,
		account,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.auditRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return account, nil
}

// GetBankAccount retrieves a bank account by ID.
func (uc *BankAccountUseCase) GetBankAccount(ctx context.Context, id string) (*domain.BankAccount, error) {
	return uc.bankAccountRepo.GetByID(ctx, id)
}

// ListBankAccountsInput represents input for listing bank accounts.
type ListBankAccountsInput struct {
	Limit  int
	Offset int
}

// ListBankAccounts lists bank accounts with pagination.
func (uc *BankAccountUseCase) ListBankAccounts(ctx context.Context, input ListBankAccountsInput) ([]*domain.BankAccount, error) {
	if input.Limit <= 0 {
		input.Limit = defaultPageSize
	}

	if input.Limit > maxPageSize {
		input.Limit = maxPageSize
	}

	return uc.bankAccountRepo.List(ctx, input.Limit, input.Offset)
}
