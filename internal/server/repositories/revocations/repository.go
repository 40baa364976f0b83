package revocations

import (
	"context"
	"time"
)

// Repository is the durable deny-list. Keys are token digests, never raw
// tokens. Expiry is always judged against the caller's clock, the same one
// that computed expiresAt; the database clock is never consulted.
type Repository interface {
	Revoke(ctx context.Context, tokenHash string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenHash string, now time.Time) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
