package domain

import "errors"

var (
	// Validation errors: rejected before any hashing or signing work.
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrFutureDate            = errors.New("transaction date cannot be in the future")
	ErrInvalidClassification = errors.New("classification must be debit or credit")
	ErrMissingField          = errors.New("required field is missing")

	// Not-found errors.
	ErrTransactionNotFound       = errors.New("transaction not found")
	ErrBankAccountNotFound       = errors.New("bank account not found")
	ErrAccountingAccountNotFound = errors.New("accounting account not found")
	ErrAuditEntryNotFound        = errors.New("audit entry not found")
	ErrUserNotFound              = errors.New("user not found")

	// User management errors.
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidRole        = errors.New("invalid role")

	// ErrIntegrityViolation marks a stored hash or signature that fails
	// re-verification. It is never silently corrected.
	ErrIntegrityViolation = errors.New("data integrity issue detected")
)
