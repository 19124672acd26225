package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	tests := []struct {
		name     string
		identity domain.Identity
	}{
		{"user role", domain.Identity{ID: 42, Email: "user@example.com", Role: domain.RoleUser}},
		{"admin role", domain.Identity{ID: 7, Email: "admin@example.com", Role: domain.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, exp, err := tm.Issue(tt.identity)
			if err != nil {
				t.Fatalf("Issue: %v", err)
			}
			if !exp.After(time.Now()) {
				t.Fatalf("expiry %v not in the future", exp)
			}

			claims, err := tm.Verify(token)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			got, err := claims.Identity()
			if err != nil {
				t.Fatalf("Identity: %v", err)
			}
			if got != tt.identity {
				t.Fatalf("identity = %+v, want %+v", got, tt.identity)
			}
		})
	}
}

func TestTokenClaimsRoleTagging(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	userToken, _, err := tm.Issue(domain.Identity{ID: 1, Email: "u@x.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := tm.Verify(userToken)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID == nil || *claims.UserID != 1 {
		t.Errorf("user token: user_id = %v, want 1", claims.UserID)
	}
	if claims.AdminID != nil {
		t.Errorf("user token carries admin_id %v", *claims.AdminID)
	}

	adminToken, _, err := tm.Issue(domain.Identity{ID: 2, Email: "a@x.com", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err = tm.Verify(adminToken)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.AdminID == nil || *claims.AdminID != 2 {
		t.Errorf("admin token: admin_id = %v, want 2", claims.AdminID)
	}
	if claims.UserID != nil {
		t.Errorf("admin token carries user_id %v", *claims.UserID)
	}
}

func TestTokenExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Hour}

	token, _, err := tm.Issue(domain.Identity{ID: 1, Email: "u@x.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	verifier := NewTokenManager("test-secret", 1)
	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify expired token: err = %v, want ErrTokenExpired", err)
	}
}

func TestTokenInvalid(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)
	token, _, err := tm.Issue(domain.Identity{ID: 1, Email: "u@x.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"tampered signature", token + "x"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tm.Verify(tt.token); !errors.Is(err, ErrTokenInvalid) {
				t.Fatalf("Verify(%q): err = %v, want ErrTokenInvalid", tt.token, err)
			}
		})
	}

	other := NewTokenManager("different-secret", 1)
	if _, err := other.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify with wrong secret: err = %v, want ErrTokenInvalid", err)
	}
}

func TestClaimsIdentityMissingIDs(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
	}{
		{"user role without user_id", Claims{Role: domain.RoleUser}},
		{"admin role without admin_id", Claims{Role: domain.RoleAdmin}},
		{"unknown role", Claims{Role: domain.Role("superuser")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.claims.Identity(); !errors.Is(err, ErrTokenInvalid) {
				t.Fatalf("Identity: err = %v, want ErrTokenInvalid", err)
			}
		})
	}
}
