package ports

import (
	"context"

	"github.com/contactdesk/contact-management-api/internal/core/domain"
)

// ContactRepository defines persistence operations for contact records.
// The same interface backs the plain contact collection and the
// duplicate-prone collection the merge engine works on.
type ContactRepository interface {
	// Save upserts the contact. A contact without an ID is inserted and the
	// returned copy carries the storage-assigned identifier; a contact with
	// an ID is replaced in place. Saving an unchanged record is a no-op.
	Save(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	FindAll(ctx context.Context) ([]*domain.Contact, error)
	FindByEmail(ctx context.Context, email string) (*domain.Contact, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Contact, error)
	// DeleteByID removes the record. Deleting an absent ID is not an error.
	DeleteByID(ctx context.Context, id string) error
}
