package usecase

import (
	"context"
	"time"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
	"github.com/paulossjunior/exemplokiro-sub001/internal/integrity"
)

// AccountingAccountUseCase handles categorization accounts. Creation is an
// audited action.
type AccountingAccountUseCase struct {
	accountingRepo AccountingAccountRepository
	auditRepo      AuditRepository
	recorder       *integrity.Recorder
	idGen          IDGenerator
}

// NewAccountingAccountUseCase creates a new AccountingAccountUseCase.
func NewAccountingAccountUseCase(
	accountingRepo AccountingAccountRepository,
	auditRepo AuditRepository,
	recorder *integrity.Recorder,
	idGen IDGenerator,
) *AccountingAccountUseCase {
	return &AccountingAccountUseCase{
		accountingRepo: accountingRepo,
		auditRepo:      auditRepo,
		recorder:       recorder,
		idGen:          idGen,
	}
}

// CreateAccountingAccountInput represents input for creating an accounting
// account.
type CreateAccountingAccountInput struct {
	Code      string
	Name      string
	CreatedBy string
}

// CreateAccountingAccount creates a categorization account and its audit
// entry.
func (uc *AccountingAccountUseCase) CreateAccountingAccount(ctx context.Context, input CreateAccountingAccountInput) (*domain.AccountingAccount, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	if input.Code == "" {
		return nil, domain.ErrMissingField
	}

	account := &domain.AccountingAccount{
		ID:        uc.idGen.Generate(),
		Code:      input.Code,
		Name:      input.Name,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.accountingRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	entry, err := uc.recorder.Record(
		input.CreatedBy,
		domain.AuditActionCreate,
		domain.EntityTypeAccountingAccount,
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

// GetAccountingAccount retrieves an accounting account by ID.
func (uc *AccountingAccountUseCase) GetAccountingAccount(ctx context.Context, id string) (*domain.AccountingAccount, error) {
	return uc.accountingRepo.GetByID(ctx, id)
}

// ListAccountingAccounts lists accounting accounts with pagination.
func (uc *AccountingAccountUseCase) ListAccountingAccounts(ctx context.Context, limit, offset int) ([]*domain.AccountingAccount, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.accountingRepo.List(ctx, limit, offset)
}
