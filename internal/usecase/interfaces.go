package usecase

import (
	"context"
	"time"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
)

// TransactionRepository defines data access for transactions. There is no
// update or delete: transactions are immutable once persisted.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByBankAccount(ctx context.Context, bankAccountID string, limit, offset int) ([]*domain.Transaction, error)
	// ListAllByBankAccount returns the full ledger for an account in
	// persisted order (date, then insertion), for balance and integrity
	// scans.
	ListAllByBankAccount(ctx context.Context, bankAccountID string) ([]*domain.Transaction, error)
	ListAll(ctx context.Context, limit, offset int) ([]*domain.Transaction, error)
}

// AuditRepository defines data access for audit entries. Append-only by
// construction: the interface offers no way to overwrite a persisted entry.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	CreateTx(ctx context.Context, tx Transaction, entry *domain.AuditEntry) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error)
	GetByEntity(ctx context.Context, entityType, entityID string) ([]*domain.AuditEntry, error)
	ListAll(ctx context.Context, limit, offset int) ([]*domain.AuditEntry, error)
}

// BankAccountRepository defines data access for bank accounts.
type BankAccountRepository interface {
	Create(ctx context.Context, account *domain.BankAccount) error
	GetByID(ctx context.Context, id string) (*domain.BankAccount, error)
	List(ctx context.Context, limit, offset int) ([]*domain.BankAccount, error)
}

// AccountingAccountRepository defines data access for accounting accounts.
type AccountingAccountRepository interface {
	Create(ctx context.Context, account *domain.AccountingAccount) error
	GetByID(ctx context.Context, id string) (*domain.AccountingAccount, error)
	List(ctx context.Context, limit, offset int) ([]*domain.AccountingAccount, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyProcessing is the placeholder stored under an idempotency
// key while the first request holding it is still in flight.
const IdempotencyProcessing = "processing"

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
