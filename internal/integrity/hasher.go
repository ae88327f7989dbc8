// Package integrity implements the tamper-evidence core: canonical hashing
// of records, keyed signing bound to an actor, re-verification of persisted
// rows, and construction of immutable audit entries. Every component is
// stateless and safe for concurrent use; none performs I/O.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
)

// ErrMissingField is returned when a required canonical field is empty.
// It indicates a programmer error in the caller, not a runtime condition.
var ErrMissingField = errors.New("integrity: required field is empty")

// Canonical formats. These are part of the stored-hash contract and must
// never change: every persisted DataHash was computed with them.
const (
	canonicalDateFormat = "2006-01-02"
	fieldSeparator      = "|"
)

// Hasher produces canonical, deterministic digests of ordered field lists.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeHash returns the SHA-256 hex digest (64 characters) of the
// pipe-joined field list. Identical inputs always produce identical output;
// an empty field is rejected before any hashing work.
func (h *Hasher) ComputeHash(orderedFields []string) (string, error) {
	if len(orderedFields) == 0 {
		return "", ErrMissingField
	}

	for _, f := range orderedFields {
		if f == "" {
			return "", ErrMissingField
		}
	}

	sum := sha256.Sum256([]byte(strings.Join(orderedFields, fieldSeparator)))

	return hex.EncodeToString(sum[:]), nil
}

// TransactionFields returns the canonical ordered field list for a
// transaction. The order is fixed: amount, date, classification,
// bank account id, accounting account id, created-by.
func (h *Hasher) TransactionFields(tx *domain.Transaction) []string {
	return []string{
		CanonicalAmount(tx.Amount),
		tx.Date.UTC().Format(canonicalDateFormat),
		string(tx.Classification),
		tx.BankAccountID,
		tx.AccountingAccountID,
		tx.CreatedBy,
	}
}

// AuditEntryFields returns the canonical ordered field list for an audit
// entry. The order is fixed: user id, action type, entity type, entity id,
// timestamp, previous value (empty when nil), new value. A nil previous
// value and an empty-string previous value canonicalize differently so the
// two states always hash apart.
func (h *Hasher) AuditEntryFields(e *domain.AuditEntry) []string {
	prev := canonicalNone
	if e.PreviousValue != nil {
		prev = canonicalSnapshot(*e.PreviousValue)
	}

	return []string{
		e.UserID,
		e.ActionType,
		e.EntityType,
		e.EntityID,
		CanonicalTimestamp(e.Timestamp),
		prev,
		canonicalSnapshot(e.NewValue),
	}
}

// canonicalNone marks an absent optional field in the canonical form, so
// that absence is distinguishable from any real serialized snapshot,
// including the empty one.
const canonicalNone = "-"

func canonicalSnapshot(s string) string {
	return "s:" + s
}

// CanonicalAmount renders an amount the way it is hashed and signed:
// fixed-point, two decimal places.
func CanonicalAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// CanonicalDate renders a calendar date the way it is hashed and signed.
func CanonicalDate(t time.Time) string {
	return t.UTC().Format(canonicalDateFormat)
}

// CanonicalTimestamp renders an instant the way it is hashed and signed.
// Second precision keeps the value stable across database round trips.
func CanonicalTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}
