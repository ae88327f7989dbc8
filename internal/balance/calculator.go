// Package balance derives an account's monetary state from its immutable
// transaction ledger. Figures are always recomputed by scanning the full
// transaction set at read time, never maintained as a mutable counter, so
// concurrent writes cannot corrupt a cached total. All arithmetic is
// fixed-point decimal; rounding to two places happens only at the edge.
package balance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
)

// Budget warning messages. The two wordings are deliberately distinct so
// callers and dashboards can tell the states apart.
const (
	WarningApproachingLimit = "account is approaching its budget limit"
	WarningOverBudget       = "account is over budget"
)

// warnThreshold is the utilization at which the approaching-limit warning
// starts firing.
var warnThreshold = decimal.NewFromFloat(0.80)

// AccountBalanceResult is the derived monetary state of one bank account.
type AccountBalanceResult struct {
	Balance          decimal.Decimal `json:"balance"`
	TotalCredits     decimal.Decimal `json:"total_credits"`
	TotalDebits      decimal.Decimal `json:"total_debits"`
	TransactionCount int             `json:"transaction_count"`
	CalculatedAt     time.Time       `json:"calculated_at"`
}

// Calculator computes balances and budget positions over transaction lists.
type Calculator struct{}

// NewCalculator creates a new Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Balance returns sum(credits) - sum(debits). Pure summation: the result is
// invariant under reordering of the input list.
func (c *Calculator) Balance(txs []*domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Classification == domain.ClassificationCredit {
			total = total.Add(tx.Amount)
		} else {
			total = total.Sub(tx.Amount)
		}
	}

	return total
}

// Summary computes the full balance view of an account, rounded to two
// decimal places for display.
func (c *Calculator) Summary(txs []*domain.Transaction) AccountBalanceResult {
	credits := decimal.Zero
	debits := decimal.Zero

	for _, tx := range txs {
		if tx.Classification == domain.ClassificationCredit {
			credits = credits.Add(tx.Amount)
		} else {
			debits = debits.Add(tx.Amount)
		}
	}

	return AccountBalanceResult{
		Balance:          credits.Sub(debits).Round(2),
		TotalCredits:     credits.Round(2),
		TotalDebits:      debits.Round(2),
		TransactionCount: len(txs),
		CalculatedAt:     time.Now().UTC(),
	}
}

// RunningBalances returns the cumulative balance through and including each
// transaction, keyed by transaction id. Transactions are ordered by date
// with ties broken by the persisted insertion order the caller supplied, so
// the result is total and reproducible across repeated calls.
func (c *Calculator) RunningBalances(txs []*domain.Transaction) map[string]decimal.Decimal {
	ordered := make([]*domain.Transaction, len(txs))
	copy(ordered, txs)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	balances := make(map[string]decimal.Decimal, len(ordered))

	running := decimal.Zero
	for _, tx := range ordered {
		if tx.Classification == domain.ClassificationCredit {
			running = running.Add(tx.Amount)
		} else {
			running = running.Sub(tx.Amount)
		}

		balances[tx.ID] = running
	}

	return balances
}

// IsOverBudget reports whether the account's spending exceeds its budget.
func (c *Calculator) IsOverBudget(totalCredits, totalDebits, budget decimal.Decimal) bool {
	return totalDebits.GreaterThan(budget)
}

// BudgetWarning returns an informational message about budget utilization,
// or the empty string below 80% utilization. Warnings never block an
// operation.
func (c *Calculator) BudgetWarning(totalDebits, budget decimal.Decimal) string {
	if budget.LessThanOrEqual(decimal.Zero) {
		return ""
	}

	utilization := totalDebits.Div(budget)

	switch {
	case utilization.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return WarningOverBudget
	case utilization.GreaterThanOrEqual(warnThreshold):
		return WarningApproachingLimit
	default:
		return ""
	}
}
