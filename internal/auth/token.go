package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// Verification failure kinds. Callers may branch on these to emit
// distinct client-facing messages; both reject the request.
var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// TokenManager issues and verifies signed bearer tokens. Validity is
// entirely determined by signature and expiry; there is no server-side
// session state and no revocation list.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a manager around the process-wide secret.
func NewTokenManager(secret string, ttlHours int) *TokenManager {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlHours) * time.Hour}
}

// Claims is the JWT payload. Exactly one of UserID/AdminID is set,
// matching the Role discriminator.
type Claims struct {
	UserID  *int64      `json:"user_id,omitempty"`
	AdminID *int64      `json:"admin_id,omitempty"`
	Email   string      `json:"email"`
	Role    domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the principal the claims describe.
func (c *Claims) Identity() (domain.Identity, error) {
	switch c.Role {
	case domain.RoleUser:
		if c.UserID == nil {
			return domain.Identity{}, ErrTokenInvalid
		}
		return domain.Identity{ID: *c.UserID, Email: c.Email, Role: domain.RoleUser}, nil
	case domain.RoleAdmin:
		if c.AdminID == nil {
			return domain.Identity{}, ErrTokenInvalid
		}
		return domain.Identity{ID: *c.AdminID, Email: c.Email, Role: domain.RoleAdmin}, nil
	}
	return domain.Identity{}, ErrTokenInvalid
}

// Issue builds and signs a token for the identity.
func (tm *TokenManager) Issue(identity domain.Identity) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)

	claims := &Claims{
		Email: identity.Email,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	id := identity.ID
	if identity.Role == domain.RoleAdmin {
		claims.AdminID = &id
	} else {
		claims.UserID = &id
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates the signature and expiry and returns the claims.
// Expired tokens fail with ErrTokenExpired; any other defect fails
// with ErrTokenInvalid.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
