package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AuthService coordinates signup, login and token refresh for both
// identity spaces.
type AuthService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// AuthDependencies bundles repository requirements for the service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	AdminRepo repository.AdminRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Signup creates a new end-user account and issues a user-role token.
// The duplicate check races with concurrent signups; the store's unique
// constraint resolves the race and is reported as a duplicate, not an
// internal error.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewDuplicateEntry("")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
		Initials:     initialsFor(name),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, "", time.Time{}, apperrors.NewDuplicateEntry("")
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokens.Issue(domain.Identity{ID: user.ID, Email: user.Email, Role: domain.RoleUser})
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates an end-user. An unknown email and a wrong
// password produce the same failure so account existence never leaks.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokens.Issue(domain.Identity{ID: user.ID, Email: user.Email, Role: domain.RoleUser})
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// AdminLogin authenticates an administrator and records the login time
// before the response is returned.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	if err := s.admins.TouchLastLogin(ctx, admin.ID); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokens.Issue(domain.Identity{ID: admin.ID, Email: admin.Email, Role: domain.RoleAdmin})
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}

// Refresh re-issues a token from the caller's still-valid claims. There
// is no revocation list, so a holder of a valid token can extend their
// session indefinitely; stateless validity is the documented trade-off.
func (s *AuthService) Refresh(_ context.Context, identity domain.Identity) (string, time.Time, error) {
	return s.tokens.Issue(identity)
}

// TokenManager exposes the underlying token manager for middleware use.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// initialsFor derives up to two display initials from a name: first and
// last word initials, or the first two letters of a single word.
func initialsFor(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	switch {
	case len(parts) == 0:
		return "U"
	case len(parts) == 1:
		word := []rune(parts[0])
		if len(word) == 1 {
			return strings.ToUpper(string(word))
		}
		return strings.ToUpper(string(word[:2]))
	default:
		first := []rune(parts[0])
		last := []rune(parts[len(parts)-1])
		return strings.ToUpper(string(first[0]) + string(last[0]))
	}
}
