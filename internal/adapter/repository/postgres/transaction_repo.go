package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository. The
// table has no UPDATE or DELETE path: stamped rows are immutable.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `
	id, bank_account_id, accounting_account_id, amount, date,
	classification, created_by, created_at, data_hash, digital_signature
`

// Create inserts a transaction within the given database transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		transaction.ID,
		transaction.BankAccountID,
		transaction.AccountingAccountID,
		decimalToNumeric(transaction.Amount),
		pgtype.Date{Time: transaction.Date, Valid: true},
		string(transaction.Classification),
		transaction.CreatedBy,
		timeToPgTimestamptz(transaction.CreatedAt),
		transaction.DataHash,
		transaction.DigitalSignature,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1
	`, id)

	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return transaction, nil
}

// ListByBankAccount lists transactions for a bank account, most recent
// first, with pagination.
func (r *TransactionRepository) ListByBankAccount(ctx context.Context, bankAccountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE bank_account_id = $1
		ORDER BY date DESC, created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, bankAccountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListAllByBankAccount returns the full ledger for an account in
// chronological order, insertion order breaking date ties.
func (r *TransactionRepository) ListAllByBankAccount(ctx context.Context, bankAccountID string) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE bank_account_id = $1
		ORDER BY date ASC, created_at ASC, id ASC
	`, bankAccountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListAll lists transactions across all accounts in insertion order, for
// integrity scans.
func (r *TransactionRepository) ListAll(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t              domain.Transaction
		amount         pgtype.Numeric
		date           pgtype.Date
		createdAt      pgtype.Timestamptz
		classification string
	)

	err := row.Scan(
		&t.ID,
		&t.BankAccountID,
		&t.AccountingAccountID,
		&amount,
		&date,
		&classification,
		&t.CreatedBy,
		&createdAt,
		&t.DataHash,
		&t.DigitalSignature,
	)
	if err != nil {
		return nil, err
	}

	t.Amount = numericToDecimal(amount)
	t.Date = date.Time
	t.CreatedAt = createdAt.Time
	t.Classification = domain.Classification(classification)

	return &t, nil
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}
