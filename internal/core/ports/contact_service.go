package ports

import (
	"context"

	"github.com/contactdesk/contact-management-api/internal/core/domain"
)

// ContactInput carries the mutable contact fields from the transport layer.
type ContactInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Address     string
}

// ContactService defines CRUD use-cases over a contact collection.
type ContactService interface {
	Create(ctx context.Context, input ContactInput) (*domain.Contact, error)
	GetAll(ctx context.Context) ([]*domain.Contact, error)
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	// Update overwrites all five mutable fields unconditionally and
	// re-saves. Returns domain.ErrContactNotFound when id is absent.
	Update(ctx context.Context, id string, input ContactInput) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

// DuplicateContactService extends contact CRUD with the batch merge over
// the duplicate-prone record set.
type DuplicateContactService interface {
	ContactService
	// MergeDuplicates collapses records sharing a non-empty email or phone
	// number into canonical records, deletes the superseded ones, and
	// returns a human-readable confirmation message.
	MergeDuplicates(ctx context.Context) (string, error)
}
