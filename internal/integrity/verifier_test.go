package integrity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
)

func stampedTransaction(t *testing.T, h *Hasher, mutate func(tx *domain.Transaction)) *domain.Transaction {
	t.Helper()

	tx := testTransaction()
	if mutate != nil {
		mutate(tx)
	}

	hash, err := h.ComputeHash(h.TransactionFields(tx))
	if err != nil {
		t.Fatalf("failed to stamp transaction: %v", err)
	}

	tx.DataHash = hash

	return tx
}

func stampedAuditEntry(t *testing.T, h *Hasher, id string) *domain.AuditEntry {
	t.Helper()

	entry := &domain.AuditEntry{
		ID:         id,
		UserID:     "user-1",
		ActionType: domain.AuditActionCreate,
		EntityType: domain.EntityTypeTransaction,
		EntityID:   "tx-" + id,
		Timestamp:  time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
		NewValue:   `{"amount":"100.00"}`,
	}

	hash, err := h.ComputeHash(h.AuditEntryFields(entry))
	if err != nil {
		t.Fatalf("failed to stamp audit entry: %v", err)
	}

	entry.DataHash = hash

	return entry
}

func TestVerifier_FreshTransactionIsValid(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	v := NewVerifier(h)

	tx := stampedTransaction(t, h, nil)

	if !v.VerifyTransaction(tx) {
		t.Error("expected fresh transaction to verify")
	}
}

func TestVerifier_SurvivesSerializationRoundTrip(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	v := NewVerifier(h)

	tx := stampedTransaction(t, h, nil)

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored domain.Transaction
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !v.VerifyTransaction(&restored) {
		t.Error("expected transaction to verify after a lossless round trip")
	}
}

func TestVerifier_EachFieldMutationDetected(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	v := NewVerifier(h)

	mutations := map[string]func(tx *domain.Transaction){
		"amount":             func(tx *domain.Transaction) { tx.Amount = tx.Amount.Add(decimal.NewFromInt(1)) },
		"date":               func(tx *domain.Transaction) { tx.Date = tx.Date.AddDate(0, 0, 1) },
		"classification":     func(tx *domain.Transaction) { tx.Classification = domain.ClassificationCredit },
		"bank account":       func(tx *domain.Transaction) { tx.BankAccountID = "bank-other" },
		"accounting account": func(tx *domain.Transaction) { tx.AccountingAccountID = "acct-other" },
		"created by":         func(tx *domain.Transaction) { tx.CreatedBy = "intruder" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			tx := stampedTransaction(t, h, nil)
			mutate(tx)

			if v.VerifyTransaction(tx) {
				t.Errorf("mutating %s must invalidate the hash", name)
			}
		})
	}
}

func TestVerifier_MissingHashFailsClosed(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	v := NewVerifier(h)

	tx := testTransaction() // never stamped
	if v.VerifyTransaction(tx) {
		t.Error("transaction without a stored hash must be treated as tampered")
	}

	tx = stampedTransaction(t, h, nil)
	tx.DataHash = "not-a-hex-digest"
	if v.VerifyTransaction(tx) {
		t.Error("malformed stored hash must be treated as tampered")
	}
}

func TestVerifier_DetectTampered_FlagsOnlyMutatedRecord(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	v := NewVerifier(h)

	good := stampedTransaction(t, h, nil)
	bad := stampedTransaction(t, h, func(tx *domain.Transaction) { tx.ID = "tx-2" })
	bad.Amount = bad.Amount.Add(decimal.NewFromInt(500))

	tampered := v.DetectTamperedTransactions([]*domain.Transaction{good, bad})

	if len(tampered) != 1 || tampered[0] != "tx-2" {
		t.Errorf("expected exactly [tx-2] tampered, got %v", tampered)
	}
}

func TestVerifier_Report(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	v := NewVerifier(h)

	txs := []*domain.Transaction{
		stampedTransaction(t, h, nil),
		stampedTransaction(t, h, func(tx *domain.Transaction) { tx.ID = "tx-2" }),
	}
	entries := []*domain.AuditEntry{
		stampedAuditEntry(t, h, "a1"),
		stampedAuditEntry(t, h, "a2"),
		stampedAuditEntry(t, h, "a3"),
	}

	t.Run("all untampered", func(t *testing.T) {
		report := v.Report(txs, entries)

		if !report.IsIntegrityValid {
			t.Error("expected valid report for untampered rows")
		}
		if report.TotalTransactionsChecked != 2 || report.TotalAuditEntriesChecked != 3 {
			t.Errorf("unexpected totals: %d transactions, %d entries",
				report.TotalTransactionsChecked, report.TotalAuditEntriesChecked)
		}
		if len(report.TamperedTransactionIDs) != 0 || len(report.TamperedAuditEntryIDs) != 0 {
			t.Error("expected empty tampered-id lists")
		}
	})

	t.Run("one tampered entry invalidates report", func(t *testing.T) {
		entries[1].NewValue = `{"amount":"tampered"}`

		report := v.Report(txs, entries)

		if report.IsIntegrityValid {
			t.Error("expected invalid report")
		}
		if len(report.TamperedAuditEntryIDs) != 1 || report.TamperedAuditEntryIDs[0] != "a2" {
			t.Errorf("expected [a2] tampered, got %v", report.TamperedAuditEntryIDs)
		}
	})
}
