package ports

import (
	"context"

	"github.com/contactdesk/contact-management-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user and returns the stored copy with its ID.
	// Returns domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
}

// RoleRepository defines persistence operations for role definitions.
// Roles are seeded once at startup and never mutated afterwards.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	Save(ctx context.Context, role *domain.Role) (*domain.Role, error)
}
