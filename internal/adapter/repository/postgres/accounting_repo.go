package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
)

// AccountingAccountRepository implements usecase.AccountingAccountRepository.
type AccountingAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountingAccountRepository creates a new AccountingAccountRepository.
func NewAccountingAccountRepository(pool *pgxpool.Pool) *AccountingAccountRepository {
	return &AccountingAccountRepository{pool: pool}
}

// Create inserts an accounting account.
func (r *AccountingAccountRepository) Create(ctx context.Context, account *domain.AccountingAccount) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounting_accounts (id, code, name, created_at)
		VALUES ($1, $2, $3, $4)
	`,
		account.ID,
		account.Code,
		account.Name,
		timeToPgTimestamptz(account.CreatedAt),
	)

	return err
}

// GetByID retrieves an accounting account by ID.
func (r *AccountingAccountRepository) GetByID(ctx context.Context, id string) (*domain.AccountingAccount, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, code, name, created_at
		FROM accounting_accounts
		WHERE id = $1
	`, id)

	account, err := scanAccountingAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountingAccountNotFound
		}
		return nil, err
	}

	return account, nil
}

// List lists accounting accounts ordered by code.
func (r *AccountingAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.AccountingAccount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, code, name, created_at
		FROM accounting_accounts
		ORDER BY code ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.AccountingAccount
	for rows.Next() {
		account, err := scanAccountingAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccountingAccount(row pgx.Row) (*domain.AccountingAccount, error) {
	var (
		a         domain.AccountingAccount
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&a.ID, &a.Code, &a.Name, &createdAt)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time

	return &a, nil
}
