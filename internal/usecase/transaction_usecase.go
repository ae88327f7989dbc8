package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
	"github.com/paulossjunior/exemplokiro-sub001/internal/infrastructure/metrics"
	"github.com/paulossjunior/exemplokiro-sub001/internal/integrity"
)

// TransactionUseCase handles transaction registration. Each created
// transaction is stamped with its hash and signature exactly once and
// persisted together with its audit entry in a single database
// transaction, so a transaction row can never exist without its trail.
type TransactionUseCase struct {
	txManager       TransactionManager
	transactionRepo TransactionRepository
	bankAccountRepo BankAccountRepository
	accountingRepo  AccountingAccountRepository
	auditRepo       AuditRepository
	hasher          *integrity.Hasher
	signer          *integrity.Signer
	recorder        *integrity.Recorder
	idGen           IDGenerator
	cache           Cache
	metrics         *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase. cache and m may
// be nil.
func NewTransactionUseCase(
	txManager TransactionManager,
	transactionRepo TransactionRepository,
	bankAccountRepo BankAccountRepository,
	accountingRepo AccountingAccountRepository,
	auditRepo AuditRepository,
	hasher *integrity.Hasher,
	signer *integrity.Signer,
	recorder *integrity.Recorder,
	idGen IDGenerator,
	cache Cache,
	m *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		bankAccountRepo: bankAccountRepo,
		accountingRepo:  accountingRepo,
		auditRepo:       auditRepo,
		hasher:          hasher,
		signer:          signer,
		recorder:        recorder,
		idGen:           idGen,
		cache:           cache,
		metrics:         m,
	}
}

// CreateTransactionInput represents input for registering a transaction.
type CreateTransactionInput struct {
	BankAccountID       string
	AccountingAccountID string
	Amount              decimal.Decimal
	Date                time.Time
	Classification      domain.Classification
	CreatedBy           string
}

// CreateTransaction validates the input, stamps the hash and signature,
// and persists the transaction and its audit entry atomically.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	now := time.Now().UTC()

	transaction := &domain.Transaction{
		ID:                  uc.idGen.Generate(),
		BankAccountID:       input.BankAccountID,
		AccountingAccountID: input.AccountingAccountID,
		Amount:              input.Amount,
		Date:                input.Date,
		Classification:      input.Classification,
		CreatedBy:           input.CreatedBy,
		CreatedAt:           now,
	}

	// Reject before any stamping work: no partially stamped records.
	if err := transaction.Validate(now); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if _, err := uc.bankAccountRepo.GetByID(ctx, input.BankAccountID); err != nil {
		return nil, err
	}

	if _, err := uc.accountingRepo.GetByID(ctx, input.AccountingAccountID); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.ComputeHash(uc.hasher.TransactionFields(transaction))
	if err != nil {
		return nil, err
	}

	transaction.DataHash = hash

	signature, err := uc.signer.Sign(integrity.TransactionPayload(transaction), input.CreatedBy)
	if err != nil {
		return nil, err
	}

	transaction.DigitalSignature = signature

	auditEntry, err := uc.recorder.Record(
		input.CreatedBy,
		domain.AuditActionCreate,
		domain.EntityTypeTransaction,
		transaction.ID,
		nil,
		newTransactionSnapshot(transaction),
	)
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.Create(ctx, tx, transaction); err != nil {
		return nil, err
	}

	if err := uc.auditRepo.CreateTx(ctx, tx, auditEntry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.Inc()
		uc.metrics.TransactionAmount.Observe(transaction.Amount.InexactFloat64())
	}

	// Cached balances are stale the moment the commit lands. Eviction is
	// best effort; a miss just means readers wait out the TTL.
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, balanceCacheKey(input.BankAccountID))
	}

	return transaction, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	BankAccountID string
	Limit         int
	Offset        int
}

// ListTransactions lists transactions for a bank account.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	if input.Limit <= 0 {
		input.Limit = defaultPageSize
	}

	if input.Limit > maxPageSize {
		input.Limit = maxPageSize
	}

	return uc.transactionRepo.ListByBankAccount(ctx, input.BankAccountID, input.Limit, input.Offset)
}

// transactionSnapshot is the audited view of a transaction. Hash and
// signature are included so the trail captures the stamped record exactly
// as persisted.
type transactionSnapshot struct {
	ID                  string `json:"id"`
	BankAccountID       string `json:"bank_account_id"`
	AccountingAccountID string `json:"accounting_account_id"`
	Amount              string `json:"amount"`
	Date                string `json:"date"`
	Classification      string `json:"classification"`
	CreatedBy           string `json:"created_by"`
	DataHash            string `json:"data_hash"`
	DigitalSignature    string `json:"digital_signature"`
}

func newTransactionSnapshot(tx *domain.Transaction) transactionSnapshot {
	return transactionSnapshot{
		ID:                  tx.ID,
		BankAccountID:       tx.BankAccountID,
		AccountingAccountID: tx.AccountingAccountID,
		Amount:              integrity.CanonicalAmount(tx.Amount),
		Date:                integrity.CanonicalDate(tx.Date),
		Classification:      string(tx.Classification),
		CreatedBy:           tx.CreatedBy,
		DataHash:            tx.DataHash,
		DigitalSignature:    tx.DigitalSignature,
	}
}
