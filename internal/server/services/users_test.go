package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/server/auth"
	"github.com/dmitrijs2005/projecthub/internal/server/config"
	"github.com/dmitrijs2005/projecthub/internal/server/revocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type userEnv struct {
	svc       *UserService
	rm        *fakeRepoManager
	authority *auth.Authority
	store     *revocation.MemoryStore
	gate      *auth.Gate
}

func newUserEnv(t *testing.T) *userEnv {
	t.Helper()
	cfg := &config.Config{StoreTimeout: time.Second}
	rm := newFakeRepoManager()
	authority := auth.NewAuthority([]byte("k"), time.Hour)
	store := revocation.NewMemoryStore()

	svc := NewUserService(nil, rm, authority, store, cfg)
	svc.bcryptCost = bcrypt.MinCost

	return &userEnv{svc: svc, rm: rm, authority: authority, store: store, gate: auth.NewGate(store, authority)}
}

func TestRegister_ThenLogin(t *testing.T) {
	env := newUserEnv(t)
	ctx := context.Background()

	reg, err := env.svc.Register(ctx, "  Ann@Example.com ", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", reg.User.Email)
	assert.Equal(t, "ann", reg.User.Name)
	assert.NotEqual(t, "secret1", reg.User.PasswordHash)

	claims, err := env.authority.Verify(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	login, err := env.svc.Login(ctx, "ANN@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	p, err := env.gate.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", p.Email)
}

func TestRegister_Validation(t *testing.T) {
	env := newUserEnv(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret1"},
		{"bad email", "not-an-email", "secret1"},
		{"display name form", "Ann <ann@example.com>", "secret1"},
		{"short password", "ann@example.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Register(context.Background(), tt.email, tt.password, "Ann")
			assert.ErrorIs(t, err, common.ErrInvalidInput)
		})
	}
	assert.Zero(t, env.rm.u.calls, "validation must fail before any store call")
}

func TestRegister_KeepsGivenName(t *testing.T) {
	env := newUserEnv(t)

	s, err := env.svc.Register(context.Background(), "ann@example.com", "secret1", " Ann Lee ")
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", s.User.Name)
}

func TestRegister_EmailTaken(t *testing.T) {
	env := newUserEnv(t)
	ctx := context.Background()

	_, err := env.svc.Register(ctx, "ann@example.com", "secret1", "")
	require.NoError(t, err)

	_, err = env.svc.Register(ctx, "ANN@example.com", "secret2", "")
	assert.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestRegister_StoreTimeoutIsUnavailable(t *testing.T) {
	env := newUserEnv(t)
	env.rm.u.err = context.DeadlineExceeded

	_, err := env.svc.Register(context.Background(), "ann@example.com", "secret1", "")
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestLogin_UnknownAndWrongPasswordLookTheSame(t *testing.T) {
	env := newUserEnv(t)
	ctx := context.Background()

	_, err := env.svc.Register(ctx, "ann@example.com", "secret1", "")
	require.NoError(t, err)

	_, errUnknown := env.svc.Login(ctx, "bob@example.com", "secret1")
	_, errWrong := env.svc.Login(ctx, "ann@example.com", "wrong-pass")

	assert.ErrorIs(t, errUnknown, common.ErrorUnauthorized)
	assert.ErrorIs(t, errWrong, common.ErrorUnauthorized)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLogin_MissingFields(t *testing.T) {
	env := newUserEnv(t)

	_, err := env.svc.Login(context.Background(), "", "x")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = env.svc.Login(context.Background(), "a@b.c", "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestLogin_StoreError(t *testing.T) {
	env := newUserEnv(t)
	env.rm.u.err = errors.New("db error: syntax")

	_, err := env.svc.Login(context.Background(), "ann@example.com", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
	assert.NotErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestLogout_RevokesForRemainingLifetime(t *testing.T) {
	env := newUserEnv(t)
	ctx := context.Background()

	s, err := env.svc.Register(ctx, "ann@example.com", "secret1", "")
	require.NoError(t, err)

	p, err := env.gate.Authenticate(ctx, s.Token)
	require.NoError(t, err)

	require.NoError(t, env.svc.Logout(ctx, p))

	_, err = env.gate.Authenticate(ctx, s.Token)
	assert.ErrorIs(t, err, common.ErrTokenRevoked)

	// The authority alone still accepts it.
	_, err = env.authority.Verify(s.Token)
	assert.NoError(t, err)
}

func TestLogout_WithoutClaimsVerifiesToken(t *testing.T) {
	env := newUserEnv(t)
	ctx := context.Background()

	token, err := env.authority.Issue("u1", "a@b.c")
	require.NoError(t, err)

	require.NoError(t, env.svc.Logout(ctx, &auth.Principal{UserID: "u1", Token: token}))
	revoked, err := env.store.IsRevoked(ctx, token)
	require.NoError(t, err)
	assert.True(t, revoked)

	err = env.svc.Logout(ctx, &auth.Principal{UserID: "u1", Token: "garbage"})
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestLogout_NoPrincipal(t *testing.T) {
	env := newUserEnv(t)

	assert.ErrorIs(t, env.svc.Logout(context.Background(), nil), common.ErrUnauthenticated)
	assert.ErrorIs(t, env.svc.Logout(context.Background(), &auth.Principal{}), common.ErrUnauthenticated)
}

type failingStore struct{}

func (failingStore) Revoke(context.Context, string, time.Duration) error {
	return common.ErrStoreUnavailable
}
func (failingStore) IsRevoked(context.Context, string) (bool, error) {
	return false, common.ErrStoreUnavailable
}

func TestLogout_StoreUnavailable(t *testing.T) {
	env := newUserEnv(t)
	env.svc.revocations = failingStore{}

	token, err := env.authority.Issue("u1", "a@b.c")
	require.NoError(t, err)

	err = env.svc.Logout(context.Background(), &auth.Principal{UserID: "u1", Token: token})
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestProfileAndListUsers(t *testing.T) {
	env := newUserEnv(t)
	ctx := context.Background()

	ann, err := env.svc.Register(ctx, "ann@example.com", "secret1", "Ann")
	require.NoError(t, err)
	_, err = env.svc.Register(ctx, "bob@example.com", "secret1", "Bob")
	require.NoError(t, err)
	_, err = env.svc.Register(ctx, "cat@example.com", "secret1", "Cat")
	require.NoError(t, err)

	p := &auth.Principal{UserID: ann.User.ID, Email: ann.User.Email}

	me, err := env.svc.Profile(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Ann", me.Name)

	others, err := env.svc.ListUsers(ctx, p)
	require.NoError(t, err)
	require.Len(t, others, 2)
	assert.Equal(t, "bob@example.com", others[0].Email)
	assert.Equal(t, "cat@example.com", others[1].Email)

	_, err = env.svc.Profile(ctx, &auth.Principal{UserID: "missing"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
