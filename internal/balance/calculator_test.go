package balance

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
)

func tx(id string, amount string, c domain.Classification, day int) *domain.Transaction {
	return &domain.Transaction{
		ID:             id,
		Amount:         decimal.RequireFromString(amount),
		Classification: c,
		Date:           time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestCalculator_Summary(t *testing.T) {
	t.Parallel()

	c := NewCalculator()

	result := c.Summary([]*domain.Transaction{
		tx("t1", "5000", domain.ClassificationCredit, 1),
		tx("t2", "2000", domain.ClassificationDebit, 2),
	})

	if !result.Balance.Equal(decimal.RequireFromString("3000.00")) {
		t.Errorf("expected balance 3000.00, got %s", result.Balance)
	}
	if !result.TotalCredits.Equal(decimal.RequireFromString("5000.00")) {
		t.Errorf("expected total credits 5000.00, got %s", result.TotalCredits)
	}
	if !result.TotalDebits.Equal(decimal.RequireFromString("2000.00")) {
		t.Errorf("expected total debits 2000.00, got %s", result.TotalDebits)
	}
	if result.TransactionCount != 2 {
		t.Errorf("expected 2 transactions, got %d", result.TransactionCount)
	}
}

func TestCalculator_BalancePermutationInvariant(t *testing.T) {
	t.Parallel()

	c := NewCalculator()

	txs := []*domain.Transaction{
		tx("t1", "100.10", domain.ClassificationCredit, 3),
		tx("t2", "50.05", domain.ClassificationDebit, 1),
		tx("t3", "20.20", domain.ClassificationCredit, 2),
		tx("t4", "0.35", domain.ClassificationDebit, 4),
	}

	want := c.Balance(txs)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]*domain.Transaction, len(txs))
		copy(shuffled, txs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		if got := c.Balance(shuffled); !got.Equal(want) {
			t.Fatalf("balance changed under permutation: want %s, got %s", want, got)
		}
	}
}

func TestCalculator_RunningBalances(t *testing.T) {
	t.Parallel()

	c := NewCalculator()

	txs := []*domain.Transaction{
		tx("t1", "1000", domain.ClassificationCredit, 1),
		tx("t2", "300", domain.ClassificationDebit, 2),
		tx("t3", "200", domain.ClassificationDebit, 2), // same date, later insertion
		tx("t4", "50", domain.ClassificationCredit, 3),
	}

	balances := c.RunningBalances(txs)

	want := map[string]string{
		"t1": "1000",
		"t2": "700",
		"t3": "500",
		"t4": "550",
	}

	for id, expected := range want {
		if !balances[id].Equal(decimal.RequireFromString(expected)) {
			t.Errorf("running balance for %s: expected %s, got %s", id, expected, balances[id])
		}
	}

	// Stable across repeated calls on the same input.
	again := c.RunningBalances(txs)
	for id := range want {
		if !balances[id].Equal(again[id]) {
			t.Errorf("running balance for %s changed between calls", id)
		}
	}
}

func TestCalculator_RunningBalancesOrderSensitive(t *testing.T) {
	t.Parallel()

	c := NewCalculator()

	// Swapping insertion order of two same-date transactions must change
	// the intermediate cumulative values.
	a := []*domain.Transaction{
		tx("t1", "300", domain.ClassificationDebit, 2),
		tx("t2", "200", domain.ClassificationDebit, 2),
	}
	b := []*domain.Transaction{
		tx("t2", "200", domain.ClassificationDebit, 2),
		tx("t1", "300", domain.ClassificationDebit, 2),
	}

	first := c.RunningBalances(a)
	second := c.RunningBalances(b)

	if first["t1"].Equal(second["t1"]) {
		t.Error("expected insertion order to affect intermediate running balances")
	}
}

func TestCalculator_IsOverBudget(t *testing.T) {
	t.Parallel()

	c := NewCalculator()

	t.Run("under budget", func(t *testing.T) {
		over := c.IsOverBudget(
			decimal.RequireFromString("10000"),
			decimal.RequireFromString("9500"),
			decimal.RequireFromString("10000"),
		)
		if over {
			t.Error("expected not over budget")
		}
	})

	t.Run("over budget", func(t *testing.T) {
		over := c.IsOverBudget(
			decimal.RequireFromString("5000"),
			decimal.RequireFromString("6000"),
			decimal.RequireFromString("5000"),
		)
		if !over {
			t.Error("expected over budget")
		}
	})
}

func TestCalculator_BudgetWarning(t *testing.T) {
	t.Parallel()

	c := NewCalculator()

	t.Run("below threshold", func(t *testing.T) {
		warning := c.BudgetWarning(decimal.RequireFromString("7000"), decimal.RequireFromString("10000"))
		if warning != "" {
			t.Errorf("expected no warning at 70%%, got %q", warning)
		}
	})

	t.Run("approaching limit", func(t *testing.T) {
		warning := c.BudgetWarning(decimal.RequireFromString("9500"), decimal.RequireFromString("10000"))
		if warning != WarningApproachingLimit {
			t.Errorf("expected approaching-limit warning at 95%%, got %q", warning)
		}
	})

	t.Run("over budget", func(t *testing.T) {
		warning := c.BudgetWarning(decimal.RequireFromString("6000"), decimal.RequireFromString("5000"))
		if warning != WarningOverBudget {
			t.Errorf("expected over-budget warning at 120%%, got %q", warning)
		}
	})

	t.Run("distinct wording", func(t *testing.T) {
		if WarningApproachingLimit == WarningOverBudget {
			t.Error("the two warnings must be distinguishable")
		}
	})

	t.Run("zero budget never warns", func(t *testing.T) {
		warning := c.BudgetWarning(decimal.RequireFromString("100"), decimal.Zero)
		if warning != "" {
			t.Errorf("expected no warning without a budget, got %q", warning)
		}
	})
}
