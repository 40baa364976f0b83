package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/projecthub/internal/common"
)

// RevocationChecker answers whether a token was explicitly revoked. An
// unreachable store must be reported as common.ErrStoreUnavailable.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Gate resolves presented credentials into a Principal.
//
// The order is fixed: presence, then revocation, then signature and expiry.
// A revoked token is rejected even while it is still cryptographically valid.
// When the revocation store cannot answer, the gate fails closed.
type Gate struct {
	revocations RevocationChecker
	authority   *Authority
}

func NewGate(revocations RevocationChecker, authority *Authority) *Gate {
	return &Gate{revocations: revocations, authority: authority}
}

// Authenticate runs the gate over an already extracted token.
func (g *Gate) Authenticate(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	revoked, err := g.revocations.IsRevoked(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrStoreUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	if revoked {
		return nil, common.ErrTokenRevoked
	}

	claims, err := g.authority.Verify(token)
	if err != nil {
		return nil, err
	}

	return &Principal{UserID: claims.UserID, Email: claims.Email, Token: token, Claims: claims}, nil
}

// ExtractToken picks the candidate token from a cookie value or an
// Authorization header value. The cookie wins when both are present.
// The "Bearer " prefix is stripped; a bare header value is accepted as is.
func ExtractToken(cookieValue, authorization string) string {
	if token := strings.TrimSpace(cookieValue); token != "" {
		return token
	}

	authorization = strings.TrimSpace(authorization)
	if strings.EqualFold(authorization, strings.TrimSpace(common.BearerPrefix)) {
		return ""
	}
	if len(authorization) >= len(common.BearerPrefix) && strings.EqualFold(authorization[:len(common.BearerPrefix)], common.BearerPrefix) {
		authorization = authorization[len(common.BearerPrefix):]
	}
	return strings.TrimSpace(authorization)
}
