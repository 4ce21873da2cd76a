package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/contactdesk/contact-management-api/internal/core/domain"
	"github.com/contactdesk/contact-management-api/internal/core/ports"
)

// TokenService issues and validates HS256-signed bearer tokens. Tokens are
// self-contained: no server-side session state exists, so a token remains
// valid until its natural expiry (there is no revocation list).
type TokenService struct {
	key []byte
	ttl time.Duration
}

// NewTokenService decodes the base64 signing secret and returns the engine.
// A malformed secret is a configuration error and must be fatal at startup.
func NewTokenService(secretBase64 string, ttl time.Duration) (*TokenService, error) {
	key, err := base64.StdEncoding.DecodeString(secretBase64)
	if err != nil {
		return nil, fmt.Errorf("token service: decode signing secret: %w", err)
	}
	if len(key) == 0 {
		return nil, errors.New("token service: signing secret is empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{key: key, ttl: ttl}, nil
}

// Issue signs a token for the given identity carrying its role claims.
func (s *TokenService) Issue(username string, roles []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   username,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}

// Validate parses and verifies the token, returning its claims. The error
// distinguishes malformed tokens, bad signatures and expiry so callers can
// surface the right reason.
func (s *TokenService) Validate(raw string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenSignatureInvalid
		default:
			return nil, domain.ErrTokenMalformed
		}
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, domain.ErrTokenMalformed
	}

	return &ports.TokenClaims{
		Subject:   subject,
		Roles:     rolesClaim(claims),
		ExpiresAt: exp.Time,
	}, nil
}

// IsValid reports whether the token belongs to the expected identity and
// has not expired.
func (s *TokenService) IsValid(raw, username string) bool {
	claims, err := s.Validate(raw)
	return err == nil && claims.Subject == username
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

func rolesClaim(claims jwt.MapClaims) []string {
	values, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			roles = append(roles, name)
		}
	}
	return roles
}
