package ports

import (
	"context"

	"github.com/contactdesk/contact-management-api/internal/core/domain"
)

// UserUpdateInput carries the fields an administrator may change on a user.
// An empty Password leaves the stored hash untouched.
type UserUpdateInput struct {
	Username string
	Password string
}

// UserService defines user-management use-cases.
type UserService interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
