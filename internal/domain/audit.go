package domain

import "time"

// AuditEntry is an immutable, signed record of a single state-changing
// operation. Exactly one entry is produced per operation and the entry is
// never updated afterwards; the persistence layer only inserts.
type AuditEntry struct {
	ID               string
	UserID           string
	ActionType       string
	EntityType       string
	EntityID         string
	Timestamp        time.Time
	PreviousValue    *string // nil only for creation actions
	NewValue         string
	DataHash         string
	DigitalSignature string
}

// Audit action types.
const (
	AuditActionCreate       = "Create"
	AuditActionUpdate       = "Update"
	AuditActionStatusChange = "StatusChange"
	AuditActionReport       = "ReportGeneration"
)

// Audited entity types.
const (
	EntityTypeTransaction       = "Transaction"
	EntityTypeBankAccount       = "BankAccount"
	EntityTypeAccountingAccount = "AccountingAccount"
	EntityTypeIntegrityReport   = "IntegrityReport"
)

// AuditFilter defines filters for querying audit entries.
type AuditFilter struct {
	UserID     string
	ActionType string
	EntityType string
	EntityID   string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}
