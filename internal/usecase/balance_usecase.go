package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paulossjunior/exemplokiro-sub001/internal/balance"
)

// BalanceUseCase derives account balances from the transaction ledger.
// Every figure is recomputed from the full committed transaction set at
// read time; the cache only shortens the window between recomputations and
// is never written to incrementally.
type BalanceUseCase struct {
	transactionRepo TransactionRepository
	bankAccountRepo BankAccountRepository
	calculator      *balance.Calculator
	cache           Cache
	cacheTTL        time.Duration
}

// NewBalanceUseCase creates a new BalanceUseCase. cache may be nil to
// disable caching.
func NewBalanceUseCase(
	transactionRepo TransactionRepository,
	bankAccountRepo BankAccountRepository,
	calculator *balance.Calculator,
	cache Cache,
	cacheTTL time.Duration,
) *BalanceUseCase {
	return &BalanceUseCase{
		transactionRepo: transactionRepo,
		bankAccountRepo: bankAccountRepo,
		calculator:      calculator,
		cache:           cache,
		cacheTTL:        cacheTTL,
	}
}

// AccountBalance is the balance view returned to callers, including the
// informational budget position.
type AccountBalance struct {
	BankAccountID string                       `json:"bank_account_id"`
	Result        balance.AccountBalanceResult `json:"result"`
	Budget        decimal.Decimal              `json:"budget"`
	OverBudget    bool                         `json:"over_budget"`
	BudgetWarning string                       `json:"budget_warning,omitempty"`
}

// GetAccountBalance computes the balance summary and budget position for a
// bank account.
func (uc *BalanceUseCase) GetAccountBalance(ctx context.Context, bankAccountID string) (*AccountBalance, error) {
	if cached := uc.fromCache(ctx, bankAccountID); cached != nil {
		return cached, nil
	}

	account, err := uc.bankAccountRepo.GetByID(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}

	txs, err := uc.transactionRepo.ListAllByBankAccount(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}

	result := uc.calculator.Summary(txs)

	ab := &AccountBalance{
		BankAccountID: bankAccountID,
		Result:        result,
		Budget:        account.Budget,
		OverBudget:    uc.calculator.IsOverBudget(result.TotalCredits, result.TotalDebits, account.Budget),
		BudgetWarning: uc.calculator.BudgetWarning(result.TotalDebits, account.Budget),
	}

	uc.toCache(ctx, bankAccountID, ab)

	return ab, nil
}

// GetRunningBalances returns the cumulative balance after each transaction
// of the account, in chronological order with persisted-order tie breaks.
func (uc *BalanceUseCase) GetRunningBalances(ctx context.Context, bankAccountID string) (map[string]decimal.Decimal, error) {
	if _, err := uc.bankAccountRepo.GetByID(ctx, bankAccountID); err != nil {
		return nil, err
	}

	txs, err := uc.transactionRepo.ListAllByBankAccount(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}

	return uc.calculator.RunningBalances(txs), nil
}

// balanceCacheKey is shared with TransactionUseCase, which invalidates
// the entry when a new transaction commits.
func balanceCacheKey(bankAccountID string) string {
	return "balance:" + bankAccountID
}

func (uc *BalanceUseCase) fromCache(ctx context.Context, bankAccountID string) *AccountBalance {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, balanceCacheKey(bankAccountID))
	if err != nil || len(data) == 0 {
		return nil
	}

	var ab AccountBalance
	if err := json.Unmarshal(data, &ab); err != nil {
		return nil
	}

	return &ab
}

func (uc *BalanceUseCase) toCache(ctx context.Context, bankAccountID string, ab *AccountBalance) {
	if uc.cache == nil || uc.cacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(ab)
	if err != nil {
		return
	}

	// Cache write failures are ignored: the balance is always
	// recomputable from the ledger.
	_ = uc.cache.Set(ctx, balanceCacheKey(bankAccountID), data, uc.cacheTTL)
}
