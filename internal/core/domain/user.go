package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("username is already taken")
var ErrRoleNotFound = errors.New("role not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")

// Token validation failures are distinguished so the error handler can
// surface a descriptive reason while the auth gate treats them uniformly.
var ErrTokenMalformed = errors.New("token is malformed")
var ErrTokenSignatureInvalid = errors.New("token signature is invalid")
var ErrTokenExpired = errors.New("token has expired")

// User models an authenticated actor. Roles holds role names (RoleAdmin,
// RoleUser); the Role records themselves live in their own collection and
// are only referenced here.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user has been granted the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Role is a seeded, immutable role definition.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
