// Package services contains server-side business logic: accounts and
// sessions in UserService, projects and their member sets in ProjectService.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/server/auth"
	"github.com/dmitrijs2005/projecthub/internal/server/config"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/projecthub/internal/server/revocation"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

// Session is what a successful register or login hands back.
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService provides account operations:
//   - Register / Login: create or check credentials and issue a token
//   - Logout: revoke the presented token for its remaining lifetime
//   - Profile / ListUsers: read-only views for an authenticated principal
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	authority   *auth.Authority
	revocations revocation.Store
	timeout     time.Duration
	bcryptCost  int
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, authority *auth.Authority, revocations revocation.Store, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		authority:   authority,
		revocations: revocations,
		timeout:     cfg.StoreTimeout,
	}
}

// Register validates and stores a new account, then signs the user in.
// An empty name defaults to the local part of the email.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrInvalidInput, MinPasswordLength)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	ctx, cancel := bound(ctx, s.timeout)
	defer cancel()

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{Email: email, Name: name, PasswordHash: hash})
	if err != nil {
		return nil, storeErr(err)
	}

	return s.session(user)
}

// Login checks credentials. An unknown email and a wrong password are
// indistinguishable, in result and in timing.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrInvalidInput)
	}

	ctx, cancel := bound(ctx, s.timeout)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword("", password)
			return nil, common.ErrorUnauthorized
		}
		return nil, storeErr(err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	return s.session(user)
}

// Logout revokes the principal's token until the moment it would have
// expired anyway. An already expired token needs no record.
func (s *UserService) Logout(ctx context.Context, p *auth.Principal) error {
	if p == nil || p.Token == "" {
		return common.ErrUnauthenticated
	}

	claims := p.Claims
	if claims == nil {
		var err error
		if claims, err = s.authority.Verify(p.Token); err != nil {
			return err
		}
	}

	ttl := s.authority.RemainingValidity(claims)
	if ttl <= 0 {
		return nil
	}
	return s.revocations.Revoke(ctx, p.Token, ttl)
}

// Profile returns the principal's own account.
func (s *UserService) Profile(ctx context.Context, p *auth.Principal) (*models.User, error) {
	ctx, cancel := bound(ctx, s.timeout)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, p.UserID)
	if err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}

// ListUsers returns every other user as a projection, for picking
// collaborators.
func (s *UserService) ListUsers(ctx context.Context, p *auth.Principal) ([]models.MemberProjection, error) {
	ctx, cancel := bound(ctx, s.timeout)
	defer cancel()

	users, err := s.repomanager.Users(s.db).ListExcept(ctx, p.UserID)
	if err != nil {
		return nil, storeErr(err)
	}

	result := make([]models.MemberProjection, 0, len(users))
	for _, u := range users {
		result = append(result, u.Projection())
	}
	return result, nil
}

func (s *UserService) session(user *models.User) (*Session, error) {
	token, err := s.authority.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return &Session{User: user, Token: token}, nil
}

// normalizeEmail lowercases a bare RFC 5322 address. Display-name forms
// such as "Ann <ann@example.com>" are rejected.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", common.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email is invalid", common.ErrInvalidInput)
	}
	return email, nil
}
