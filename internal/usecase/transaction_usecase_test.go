package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
	"github.com/paulossjunior/exemplokiro-sub001/internal/infrastructure/metrics"
	"github.com/paulossjunior/exemplokiro-sub001/internal/integrity"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase/mocks"
)

type staticKeys []byte

func (k staticKeys) CurrentSecret() []byte { return []byte(k) }

func newTransactionUseCase(
	txRepo *mocks.MockTransactionRepository,
	bankRepo *mocks.MockBankAccountRepository,
	accountingRepo *mocks.MockAccountingAccountRepository,
	auditRepo *mocks.MockAuditRepository,
	txMgr *mocks.MockTransactionManager,
) *usecase.TransactionUseCase {
	hasher := integrity.NewHasher()
	signer := integrity.NewSigner(staticKeys("test-secret"))
	idGen := mocks.NewMockIDGenerator()
	recorder := integrity.NewRecorder(hasher, signer, idGen)

	return usecase.NewTransactionUseCase(
		txMgr, txRepo, bankRepo, accountingRepo, auditRepo,
		hasher, signer, recorder, idGen, nil, nil,
	)
}

func seedAccounts(t *testing.T, bankRepo *mocks.MockBankAccountRepository, accountingRepo *mocks.MockAccountingAccountRepository) {
	t.Helper()

	if err := bankRepo.Create(context.Background(), &domain.BankAccount{
		ID:     "bank-1",
		Name:   "Project Account",
		Budget: decimal.NewFromInt(10000),
	}); err != nil {
		t.Fatalf("seed bank account: %v", err)
	}

	if err := accountingRepo.Create(context.Background(), &domain.AccountingAccount{
		ID:   "acct-1",
		Code: "3.3.90.14",
		Name: "Travel Expenses",
	}); err != nil {
		t.Fatalf("seed accounting account: %v", err)
	}
}

func TestTransactionUseCase_CreateTransaction(t *testing.T) {
	validInput := usecase.CreateTransactionInput{
		BankAccountID:       "bank-1",
		AccountingAccountID: "acct-1",
		Amount:              decimal.NewFromFloat(150.75),
		Date:                time.Now().UTC().AddDate(0, 0, -1),
		Classification:      domain.ClassificationDebit,
		CreatedBy:           "user-1",
	}

	tests := []struct {
		name        string
		input       usecase.CreateTransactionInput
		expectError bool
		errorType   error
	}{
		{
			name:        "successful registration",
			input:       validInput,
			expectError: false,
		},
		{
			name: "reject zero amount",
			input: usecase.CreateTransactionInput{
				BankAccountID:       "bank-1",
				AccountingAccountID: "acct-1",
				Amount:              decimal.Zero,
				Date:                validInput.Date,
				Classification:      domain.ClassificationDebit,
				CreatedBy:           "user-1",
			},
			expectError: true,
			errorType:   domain.ErrInvalidAmount,
		},
		{
			name: "reject negative amount",
			input: usecase.CreateTransactionInput{
				BankAccountID:       "bank-1",
				AccountingAccountID: "acct-1",
				Amount:              decimal.NewFromInt(-50),
				Date:                validInput.Date,
				Classification:      domain.ClassificationCredit,
				CreatedBy:           "user-1",
			},
			expectError: true,
			errorType:   domain.ErrInvalidAmount,
		},
		{
			name: "reject future date",
			input: usecase.CreateTransactionInput{
				BankAccountID:       "bank-1",
				AccountingAccountID: "acct-1",
				Amount:              decimal.NewFromInt(100),
				Date:                time.Now().UTC().AddDate(0, 0, 2),
				Classification:      domain.ClassificationDebit,
				CreatedBy:           "user-1",
			},
			expectError: true,
			errorType:   domain.ErrFutureDate,
		},
		{
			name: "reject invalid classification",
			input: usecase.CreateTransactionInput{
				BankAccountID:       "bank-1",
				AccountingAccountID: "acct-1",
				Amount:              decimal.NewFromInt(100),
				Date:                validInput.Date,
				Classification:      domain.Classification("transfer"),
				CreatedBy:           "user-1",
			},
			expectError: true,
			errorType:   domain.ErrInvalidClassification,
		},
		{
			name: "reject missing creator",
			input: usecase.CreateTransactionInput{
				BankAccountID:       "bank-1",
				AccountingAccountID: "acct-1",
				Amount:              decimal.NewFromInt(100),
				Date:                validInput.Date,
				Classification:      domain.ClassificationDebit,
			},
			expectError: true,
			errorType:   domain.ErrMissingField,
		},
		{
			name: "reject unknown bank account",
			input: usecase.CreateTransactionInput{
				BankAccountID:       "bank-missing",
				AccountingAccountID: "acct-1",
				Amount:              decimal.NewFromInt(100),
				Date:                validInput.Date,
				Classification:      domain.ClassificationDebit,
				CreatedBy:           "user-1",
			},
			expectError: true,
			errorType:   domain.ErrBankAccountNotFound,
		},
		{
			name: "reject unknown accounting account",
			input: usecase.CreateTransactionInput{
				BankAccountID:       "bank-1",
				AccountingAccountID: "acct-missing",
				Amount:              decimal.NewFromInt(100),
				Date:                validInput.Date,
				Classification:      domain.ClassificationDebit,
				CreatedBy:           "user-1",
			},
			expectError: true,
			errorType:   domain.ErrAccountingAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txRepo := mocks.NewMockTransactionRepository()
			bankRepo := mocks.NewMockBankAccountRepository()
			accountingRepo := mocks.NewMockAccountingAccountRepository()
			auditRepo := mocks.NewMockAuditRepository()
			txMgr := mocks.NewMockTransactionManager()
			seedAccounts(t, bankRepo, accountingRepo)

			uc := newTransactionUseCase(txRepo, bankRepo, accountingRepo, auditRepo, txMgr)

			transaction, err := uc.CreateTransaction(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				if len(auditRepo.Entries()) != 0 {
					t.Error("rejected transaction must not leave an audit entry")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if transaction.DataHash == "" {
				t.Error("expected transaction to be stamped with a hash")
			}
			if !strings.HasPrefix(transaction.DigitalSignature, "hmac-sha256:") {
				t.Errorf("unexpected signature format: %q", transaction.DigitalSignature)
			}

			entries := auditRepo.Entries()
			if len(entries) != 1 {
				t.Fatalf("expected 1 audit entry, got %d", len(entries))
			}
			entry := entries[0]
			if entry.ActionType != domain.AuditActionCreate {
				t.Errorf("expected action %q, got %q", domain.AuditActionCreate, entry.ActionType)
			}
			if entry.EntityType != domain.EntityTypeTransaction {
				t.Errorf("expected entity type %q, got %q", domain.EntityTypeTransaction, entry.EntityType)
			}
			if entry.EntityID != transaction.ID {
				t.Errorf("audit entry references %q, want %q", entry.EntityID, transaction.ID)
			}
			if entry.PreviousValue != nil {
				t.Error("creation audit entry must have no previous value")
			}
		})
	}
}

func TestTransactionUseCase_CreateTransaction_StampSurvivesVerification(t *testing.T) {
	txRepo := mocks.NewMockTransactionRepository()
	bankRepo := mocks.NewMockBankAccountRepository()
	accountingRepo := mocks.NewMockAccountingAccountRepository()
	auditRepo := mocks.NewMockAuditRepository()
	txMgr := mocks.NewMockTransactionManager()
	seedAccounts(t, bankRepo, accountingRepo)

	uc := newTransactionUseCase(txRepo, bankRepo, accountingRepo, auditRepo, txMgr)

	transaction, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		BankAccountID:       "bank-1",
		AccountingAccountID: "acct-1",
		Amount:              decimal.NewFromFloat(1234.56),
		Date:                time.Now().UTC().AddDate(0, 0, -3),
		Classification:      domain.ClassificationCredit,
		CreatedBy:           "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	verifier := integrity.NewVerifier(integrity.NewHasher())
	stored, err := txRepo.GetByID(context.Background(), transaction.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verifier.VerifyTransaction(stored) {
		t.Error("freshly stamped transaction must pass verification")
	}
}

func TestTransactionUseCase_CreateTransaction_AtomicWithAudit(t *testing.T) {
	t.Run("repository failure rolls back", func(t *testing.T) {
		txRepo := mocks.NewMockTransactionRepository()
		bankRepo := mocks.NewMockBankAccountRepository()
		accountingRepo := mocks.NewMockAccountingAccountRepository()
		auditRepo := mocks.NewMockAuditRepository()
		txMgr := mocks.NewMockTransactionManager()
		seedAccounts(t, bankRepo, accountingRepo)

		repoErr := errors.New("connection reset")
		txRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
			return repoErr
		}

		rolledBack := false
		txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
			return &mocks.MockTransaction{
				CommitFunc: func(ctx context.Context) error {
					t.Error("commit must not be reached after a failed insert")
					return nil
				},
				RollbackFunc: func(ctx context.Context) error {
					rolledBack = true
					return nil
				},
			}, nil
		}

		uc := newTransactionUseCase(txRepo, bankRepo, accountingRepo, auditRepo, txMgr)

		_, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			BankAccountID:       "bank-1",
			AccountingAccountID: "acct-1",
			Amount:              decimal.NewFromInt(100),
			Date:                time.Now().UTC().AddDate(0, 0, -1),
			Classification:      domain.ClassificationDebit,
			CreatedBy:           "user-1",
		})
		if !errors.Is(err, repoErr) {
			t.Errorf("expected %v, got %v", repoErr, err)
		}
		if !rolledBack {
			t.Error("expected rollback after failed insert")
		}
	})

	t.Run("audit failure aborts the transaction", func(t *testing.T) {
		txRepo := mocks.NewMockTransactionRepository()
		bankRepo := mocks.NewMockBankAccountRepository()
		accountingRepo := mocks.NewMockAccountingAccountRepository()
		auditRepo := mocks.NewMockAuditRepository()
		txMgr := mocks.NewMockTransactionManager()
		seedAccounts(t, bankRepo, accountingRepo)

		auditErr := errors.New("audit insert failed")
		auditRepo.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, entry *domain.AuditEntry) error {
			return auditErr
		}

		uc := newTransactionUseCase(txRepo, bankRepo, accountingRepo, auditRepo, txMgr)

		_, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			BankAccountID:       "bank-1",
			AccountingAccountID: "acct-1",
			Amount:              decimal.NewFromInt(100),
			Date:                time.Now().UTC().AddDate(0, 0, -1),
			Classification:      domain.ClassificationDebit,
			CreatedBy:           "user-1",
		})
		if !errors.Is(err, auditErr) {
			t.Errorf("expected %v, got %v", auditErr, err)
		}
	})
}

func TestTransactionUseCase_ListTransactions(t *testing.T) {
	txRepo := mocks.NewMockTransactionRepository()
	bankRepo := mocks.NewMockBankAccountRepository()
	accountingRepo := mocks.NewMockAccountingAccountRepository()
	auditRepo := mocks.NewMockAuditRepository()
	txMgr := mocks.NewMockTransactionManager()

	var gotLimit int
	txRepo.ListByBankAccountFunc = func(ctx context.Context, bankAccountID string, limit, offset int) ([]*domain.Transaction, error) {
		gotLimit = limit
		return nil, nil
	}

	uc := newTransactionUseCase(txRepo, bankRepo, accountingRepo, auditRepo, txMgr)

	if _, err := uc.ListTransactions(context.Background(), usecase.ListTransactionsInput{BankAccountID: "bank-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 20 {
		t.Errorf("expected default limit 20, got %d", gotLimit)
	}

	if _, err := uc.ListTransactions(context.Background(), usecase.ListTransactionsInput{BankAccountID: "bank-1", Limit: 500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 100 {
		t.Errorf("expected limit clamped to 100, got %d", gotLimit)
	}
}

func TestTransactionUseCase_CreateTransaction_RecordsMetricsAndEvictsBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txRepo := mocks.NewMockTransactionRepository()
	bankRepo := mocks.NewMockBankAccountRepository()
	accountingRepo := mocks.NewMockAccountingAccountRepository()
	auditRepo := mocks.NewMockAuditRepository()
	txMgr := mocks.NewMockTransactionManager()
	seedAccounts(t, bankRepo, accountingRepo)

	m := &metrics.Metrics{
		TransactionsCreated: prometheus.NewCounter(prometheus.CounterOpts{Name: "test_transactions_created_total"}),
		TransactionAmount:   prometheus.NewHistogram(prometheus.HistogramOpts{Name: "test_transaction_amount"}),
	}

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Delete(gomock.Any(), "balance:bank-1").Return(nil)

	hasher := integrity.NewHasher()
	signer := integrity.NewSigner(staticKeys("test-secret"))
	idGen := mocks.NewMockIDGenerator()
	recorder := integrity.NewRecorder(hasher, signer, idGen)

	uc := usecase.NewTransactionUseCase(
		txMgr, txRepo, bankRepo, accountingRepo, auditRepo,
		hasher, signer, recorder, idGen, cache, m,
	)

	input := usecase.CreateTransactionInput{
		BankAccountID:       "bank-1",
		AccountingAccountID: "acct-1",
		Amount:              decimal.NewFromFloat(150.75),
		Date:                time.Now().UTC().AddDate(0, 0, -1),
		Classification:      domain.ClassificationDebit,
		CreatedBy:           "user-1",
	}

	if _, err := uc.CreateTransaction(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(m.TransactionsCreated); got != 1 {
		t.Errorf("expected transactions created counter 1, got %v", got)
	}

	// A rejected registration must neither count nor evict.
	input.Amount = decimal.Zero
	if _, err := uc.CreateTransaction(context.Background(), input); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected %v, got %v", domain.ErrInvalidAmount, err)
	}

	if got := testutil.ToFloat64(m.TransactionsCreated); got != 1 {
		t.Errorf("expected transactions created counter to stay at 1, got %v", got)
	}
}
