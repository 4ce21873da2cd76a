package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/contactdesk/contact-management-api/internal/core/domain"
	"github.com/contactdesk/contact-management-api/internal/core/ports"
)

// AuthService implements registration and role-scoped login.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	tokens ports.TokenEngine
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, tokens ports.TokenEngine, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, roles: roles, tokens: tokens, log: log}
}

// Register creates an account carrying the given role. The role must have
// been seeded before the server started accepting traffic.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.roles.FindByName(ctx, role); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Roles:        []string{role},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Str("role", role).Msg("user registered")
	return created, nil
}

// Login authenticates the credentials and verifies the account holds the
// expected role before issuing a token. Unknown usernames, bad passwords
// and role mismatches are all reported as invalid credentials.
func (s *AuthService) Login(ctx context.Context, username, password, expectedRole string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.HasRole(expectedRole) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, user.Roles)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Str("role", expectedRole).Msg("login succeeded")

	return &ports.LoginResult{
		Token:     token,
		ExpiresIn: s.tokens.TTL().Milliseconds(),
	}, nil
}
