package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Classification tells whether a transaction takes money out of the
// project account or puts money into it.
type Classification string

const (
	ClassificationDebit  Classification = "debit"
	ClassificationCredit Classification = "credit"
)

// IsValid checks if the classification is a known value.
func (c Classification) IsValid() bool {
	return c == ClassificationDebit || c == ClassificationCredit
}

// Transaction represents a single financial movement registered against a
// project's bank account. Once persisted a transaction is never updated or
// deleted; DataHash and DigitalSignature are computed exactly once, at
// construction. Later recomputation happens only in memory, for verification.
type Transaction struct {
	ID                  string
	BankAccountID       string
	AccountingAccountID string
	Amount              decimal.Decimal
	Date                time.Time
	Classification      Classification
	CreatedBy           string
	CreatedAt           time.Time
	DataHash            string
	DigitalSignature    string
}

// Validate checks the fields that must hold before any hashing or signing
// work is attempted.
func (t *Transaction) Validate(now time.Time) error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !t.Classification.IsValid() {
		return ErrInvalidClassification
	}

	if t.Date.After(now) {
		return ErrFutureDate
	}

	if t.BankAccountID == "" || t.AccountingAccountID == "" || t.CreatedBy == "" {
		return ErrMissingField
	}

	return nil
}
