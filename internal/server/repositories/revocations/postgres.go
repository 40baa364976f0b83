// Package revocations provides the PostgreSQL-backed token deny-list.
package revocations

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Revoke records the digest until expiresAt. Revoking twice keeps the later
// expiry.
func (r *PostgresRepository) Revoke(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	query :=
		`INSERT INTO revoked_tokens (token_hash, expires_at)
		 VALUES ($1, $2)
		 ON CONFLICT (token_hash) DO UPDATE
		 SET expires_at = GREATEST(revoked_tokens.expires_at, EXCLUDED.expires_at)
		 `

	if _, err := r.db.ExecContext(ctx, query, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// IsRevoked ignores rows whose expiry is not after now, so an unpurged row
// never outlives its TTL.
func (r *PostgresRepository) IsRevoked(ctx context.Context, tokenHash string, now time.Time) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM revoked_tokens
		   WHERE token_hash = $1 AND expires_at > $2
		 )
		 `

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, tokenHash, now).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *PostgresRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM revoked_tokens WHERE expires_at <= $1`

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
