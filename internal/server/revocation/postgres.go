package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/revocations"
)

// PostgresStore keeps revocation records in the revoked_tokens table.
// Every call is bounded by timeout. Expiry is written and checked with the
// same clock (now), never the database's.
type PostgresStore struct {
	repo    revocations.Repository
	timeout time.Duration
	now     func() time.Time
}

func NewPostgresStore(repo revocations.Repository, timeout time.Duration) *PostgresStore {
	return &PostgresStore{repo: repo, timeout: timeout, now: time.Now}
}

// Revoke is a no-op for a non-positive ttl: the token is already dead.
func (s *PostgresStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.repo.Revoke(ctx, TokenKey(token), s.now().Add(ttl)); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *PostgresStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	revoked, err := s.repo.IsRevoked(ctx, TokenKey(token), s.now())
	if err != nil {
		return false, unavailable(err)
	}
	return revoked, nil
}

func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	n, err := s.repo.PurgeExpired(ctx, s.now())
	if err != nil {
		return 0, unavailable(err)
	}
	return n, nil
}

func (s *PostgresStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
}
