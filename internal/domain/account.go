package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is the project's dedicated account that transactions are
// registered against. Balances are never stored here; they are recomputed
// from the transaction ledger at read time.
type BankAccount struct {
	ID        string
	ProjectID string
	Name      string
	Budget    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountingAccount is a categorization account transactions are classified
// under (e.g. "Travel", "Equipment").
type AccountingAccount struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
}
