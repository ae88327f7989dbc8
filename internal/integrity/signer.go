package integrity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
)

// KeyProvider supplies the shared application secret used for signing.
// Hiding the secret behind an accessor keeps the Signer contract unchanged
// if key rotation or per-tenant keys arrive later.
type KeyProvider interface {
	CurrentSecret() []byte
}

// sigPrefix tags signatures with the algorithm that produced them, so the
// stored format can evolve without invalidating existing rows. Validation
// only inspects bodies carrying a tag it recognizes.
const sigPrefix = "hmac-sha256:"

// Signer binds a record to the actor who authorized it using a keyed
// authentication code over a shared application secret.
//
// This proves "authorized by someone holding the secret, attributed to the
// actor id". This is weaker than asymmetric non-repudiation; that is a
// known limitation of the scheme rather than an implementation gap.
type Signer struct {
	keys KeyProvider
}

// NewSigner creates a new Signer.
func NewSigner(keys KeyProvider) *Signer {
	return &Signer{keys: keys}
}

// Sign computes the keyed authentication code over payload and actorID.
// Same inputs always yield the same signature, so re-verification needs
// nothing beyond the signature itself.
func (s *Signer) Sign(payload, actorID string) (string, error) {
	if payload == "" || actorID == "" {
		return "", ErrMissingField
	}

	return sigPrefix + s.mac(payload, actorID), nil
}

// Validate reports whether signature was produced for payload by actorID.
// Any change to payload or actor invalidates the signature. A mismatch is a
// reportable outcome, never an error: callers decide whether false means
// "wrong actor" or "record altered".
func (s *Signer) Validate(payload, actorID, signature string) bool {
	if payload == "" || actorID == "" || signature == "" {
		return false
	}

	body, ok := strings.CutPrefix(signature, sigPrefix)
	if !ok {
		return false
	}

	return hmac.Equal([]byte(body), []byte(s.mac(payload, actorID)))
}

func (s *Signer) mac(payload, actorID string) string {
	h := hmac.New(sha256.New, s.keys.CurrentSecret())
	h.Write([]byte(payload))
	h.Write([]byte(fieldSeparator))
	h.Write([]byte(actorID))

	return hex.EncodeToString(h.Sum(nil))
}

// TransactionPayload builds the canonical string a transaction is signed
// over: pipe-joined amount, date, classification, bank account id and
// accounting account id, the values fixed at creation time.
func TransactionPayload(tx *domain.Transaction) string {
	return strings.Join([]string{
		CanonicalAmount(tx.Amount),
		CanonicalDate(tx.Date),
		string(tx.Classification),
		tx.BankAccountID,
		tx.AccountingAccountID,
	}, fieldSeparator)
}

// AuditEntryPayload builds the canonical string an audit entry is signed
// over. It reuses the hash canonicalization so signing and hashing can
// never drift apart.
func AuditEntryPayload(h *Hasher, e *domain.AuditEntry) string {
	return strings.Join(h.AuditEntryFields(e), fieldSeparator)
}
