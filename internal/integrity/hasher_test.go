package integrity

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
)

func testTransaction() *domain.Transaction {
	return &domain.Transaction{
		ID:                  "tx-1",
		BankAccountID:       "bank-1",
		AccountingAccountID: "acct-1",
		Amount:              decimal.RequireFromString("1250.50"),
		Date:                time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Classification:      domain.ClassificationDebit,
		CreatedBy:           "user-1",
	}
}

func TestComputeHash_Deterministic(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	fields := []string{"100.00", "2026-03-15", "debit", "bank-1", "acct-1", "user-1"}

	first, err := h.ComputeHash(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := h.ComputeHash(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("expected identical digests, got %s and %s", first, second)
	}

	if len(first) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(first))
	}
}

func TestComputeHash_MissingField(t *testing.T) {
	t.Parallel()

	h := NewHasher()

	if _, err := h.ComputeHash([]string{"100.00", "", "debit"}); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}

	if _, err := h.ComputeHash(nil); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField for empty list, got %v", err)
	}
}

func TestComputeHash_FieldOrderMatters(t *testing.T) {
	t.Parallel()

	h := NewHasher()

	a, _ := h.ComputeHash([]string{"a", "b"})
	b, _ := h.ComputeHash([]string{"b", "a"})

	if a == b {
		t.Error("expected different digests for reordered fields")
	}
}

func TestTransactionFields_CanonicalForm(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	tx := testTransaction()

	fields := h.TransactionFields(tx)

	want := []string{"1250.50", "2026-03-15", "debit", "bank-1", "acct-1", "user-1"}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(fields))
	}

	for i, f := range fields {
		if f != want[i] {
			t.Errorf("field %d: expected %q, got %q", i, want[i], f)
		}
	}
}

func TestAuditEntryFields_NilVsEmptyPrevious(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	ts := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	entry := &domain.AuditEntry{
		UserID:     "user-1",
		ActionType: domain.AuditActionUpdate,
		EntityType: domain.EntityTypeTransaction,
		EntityID:   "tx-1",
		Timestamp:  ts,
		NewValue:   `{"amount":"100.00"}`,
	}

	nilHash, err := h.ComputeHash(h.AuditEntryFields(entry))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev := `{"amount":"90.00"}`
	entry.PreviousValue = &prev

	prevHash, err := h.ComputeHash(h.AuditEntryFields(entry))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if nilHash == prevHash {
		t.Error("expected different digests for nil vs non-nil previous value")
	}

	empty := ""
	entry.PreviousValue = &empty

	emptyHash, err := h.ComputeHash(h.AuditEntryFields(entry))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if emptyHash == nilHash {
		t.Error("expected different digests for nil vs empty-string previous value")
	}
}

func TestCanonicalTimestamp_StableAcrossPrecisionLoss(t *testing.T) {
	t.Parallel()

	precise := time.Date(2026, 3, 15, 10, 30, 45, 123456789, time.UTC)
	truncated := precise.Truncate(time.Second)

	if CanonicalTimestamp(precise) != CanonicalTimestamp(truncated) {
		t.Error("expected canonical timestamps to match after sub-second truncation")
	}
}
