package integrity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
)

// IDGenerator generates unique IDs for audit entries.
type IDGenerator interface {
	Generate() string
}

// Recorder builds exactly one immutable, fully-stamped audit entry per
// state-changing operation. It trusts the user id it is given; proving the
// id belongs to an authenticated actor happens strictly before Record is
// invoked. The component exposes no update or delete operation.
type Recorder struct {
	hasher *Hasher
	signer *Signer
	idGen  IDGenerator
}

// NewRecorder creates a new Recorder.
func NewRecorder(hasher *Hasher, signer *Signer, idGen IDGenerator) *Recorder {
	return &Recorder{
		hasher: hasher,
		signer: signer,
		idGen:  idGen,
	}
}

// Record serializes the two snapshots, hashes and signs the resulting
// entry, and returns it ready for persistence. previous must be nil for
// pure-creation actions and non-nil otherwise. A serialization failure is
// returned as an error: an action whose audit entry cannot be built must
// not complete silently.
func (r *Recorder) Record(userID, actionType, entityType, entityID string, previous, current any) (*domain.AuditEntry, error) {
	if userID == "" || actionType == "" || entityType == "" || entityID == "" {
		return nil, ErrMissingField
	}

	newValue, err := Serialize(current)
	if err != nil {
		return nil, fmt.Errorf("serialize new state: %w", err)
	}

	var previousValue *string
	if previous != nil {
		prev, err := Serialize(previous)
		if err != nil {
			return nil, fmt.Errorf("serialize previous state: %w", err)
		}

		previousValue = &prev
	}

	entry := &domain.AuditEntry{
		ID:            r.idGen.Generate(),
		UserID:        userID,
		ActionType:    actionType,
		EntityType:    entityType,
		EntityID:      entityID,
		Timestamp:     time.Now().UTC().Truncate(time.Second),
		PreviousValue: previousValue,
		NewValue:      newValue,
	}

	hash, err := r.hasher.ComputeHash(r.hasher.AuditEntryFields(entry))
	if err != nil {
		return nil, err
	}

	entry.DataHash = hash

	signature, err := r.signer.Sign(AuditEntryPayload(r.hasher, entry), userID)
	if err != nil {
		return nil, err
	}

	entry.DigitalSignature = signature

	return entry, nil
}

// Serialize renders a snapshot deterministically, so repeated hashing of
// the same state is stable. encoding/json sorts map keys and walks struct
// fields in declaration order, which is all the determinism needed here.
func Serialize(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
