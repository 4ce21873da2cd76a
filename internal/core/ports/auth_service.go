package ports

import (
	"context"
	"time"

	"github.com/contactdesk/contact-management-api/internal/core/domain"
)

// LoginResult carries the issued bearer token and its lifetime, expressed
// in milliseconds for client display.
type LoginResult struct {
	Token     string
	ExpiresIn int64
}

// AuthService handles registration and role-scoped login.
type AuthService interface {
	// Register creates an account carrying the given role. Returns
	// domain.ErrUserExists on a duplicate username and
	// domain.ErrRoleNotFound when the role has not been seeded.
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	// Login authenticates the credentials and verifies the account holds
	// the expected role before issuing a token. A role mismatch is
	// indistinguishable from bad credentials to the caller.
	Login(ctx context.Context, username, password, expectedRole string) (*LoginResult, error)
}

// TokenClaims is the identity information extracted from a validated token.
type TokenClaims struct {
	Subject   string
	Roles     []string
	ExpiresAt time.Time
}

// TokenEngine issues and validates self-contained bearer tokens.
type TokenEngine interface {
	Issue(username string, roles []string) (string, error)
	// Validate verifies the signature and structure, returning the
	// embedded claims. Failures are one of domain.ErrTokenMalformed,
	// domain.ErrTokenSignatureInvalid or domain.ErrTokenExpired.
	Validate(raw string) (*TokenClaims, error)
	// IsValid reports whether the token's subject matches the expected
	// identity and the token has not expired.
	IsValid(raw, username string) bool
	TTL() time.Duration
}
