// Package revocation is the deny-list consulted by the auth gate. A record
// lives exactly as long as the token it targets, so the list never grows
// without bound and a revoked token never outlives its record.
package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store records revoked tokens with a time-to-live. An unreachable backend is
// reported as common.ErrStoreUnavailable, never as "not revoked".
type Store interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Purgeable is implemented by backends whose expired records need sweeping.
type Purgeable interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// TokenKey is the storage key for a token: the hex SHA-256 of its exact
// string value.
func TokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
