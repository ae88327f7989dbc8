package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase"
)

// AuditRepository implements usecase.AuditRepository. The trail is
// append-only: this type issues INSERT and SELECT statements and nothing
// else, so tampering requires going around the application entirely,
// which is exactly what the stored hashes are there to catch.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

const auditColumns = `
	id, user_id, action_type, entity_type, entity_id, timestamp,
	previous_value, new_value, data_hash, digital_signature
`

const insertAuditEntry = `
	INSERT INTO audit_entries (` + auditColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

// Create inserts an audit entry outside any caller-managed transaction.
func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	_, err := r.pool.Exec(ctx, insertAuditEntry, auditArgs(entry)...)
	return err
}

// CreateTx inserts an audit entry within the given database transaction.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	pgxTx := tx.(*Tx).PgxTx()
	_, err := pgxTx.Exec(ctx, insertAuditEntry, auditArgs(entry)...)
	return err
}

// List retrieves audit entries matching the filter, most recent first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_entries WHERE 1=1`
	args := []any{}

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}

	if filter.ActionType != "" {
		args = append(args, filter.ActionType)
		query += fmt.Sprintf(" AND action_type = $%d", len(args))
	}

	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}

	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		query += fmt.Sprintf(" AND entity_id = $%d", len(args))
	}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND timestamp >= $%d", len(args))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND timestamp <= $%d", len(args))
	}

	query += " ORDER BY timestamp DESC, id DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAuditEntries(rows)
}

// GetByEntity returns the full trail of one entity in the order the
// actions happened.
func (r *AuditRepository) GetByEntity(ctx context.Context, entityType, entityID string) ([]*domain.AuditEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+auditColumns+`
		FROM audit_entries
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY timestamp ASC, id ASC
	`, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAuditEntries(rows)
}

// ListAll lists audit entries in insertion order, for integrity scans.
func (r *AuditRepository) ListAll(ctx context.Context, limit, offset int) ([]*domain.AuditEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+auditColumns+`
		FROM audit_entries
		ORDER BY timestamp ASC, id ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAuditEntries(rows)
}

func auditArgs(entry *domain.AuditEntry) []any {
	return []any{
		entry.ID,
		entry.UserID,
		entry.ActionType,
		entry.EntityType,
		entry.EntityID,
		timeToPgTimestamptz(entry.Timestamp),
		entry.PreviousValue,
		entry.NewValue,
		entry.DataHash,
		entry.DigitalSignature,
	}
}

func scanAuditEntry(row pgx.Row) (*domain.AuditEntry, error) {
	var (
		e         domain.AuditEntry
		timestamp pgtype.Timestamptz
	)

	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.ActionType,
		&e.EntityType,
		&e.EntityID,
		&timestamp,
		&e.PreviousValue,
		&e.NewValue,
		&e.DataHash,
		&e.DigitalSignature,
	)
	if err != nil {
		return nil, err
	}

	// Stored timestamps are second-precision UTC; normalize what the
	// driver hands back so recomputed hashes see the recorded value.
	e.Timestamp = timestamp.Time.UTC().Truncate(time.Second)

	return &e, nil
}

func collectAuditEntries(rows pgx.Rows) ([]*domain.AuditEntry, error) {
	var entries []*domain.AuditEntry
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
