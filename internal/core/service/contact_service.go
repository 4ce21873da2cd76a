package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-management-api/internal/core/domain"
	"github.com/contactdesk/contact-management-api/internal/core/ports"
)

// ContactService implements CRUD over a contact collection. It is bound to
// a single repository, so one instance serves the plain contacts and a
// second serves the duplicate-prone set.
type ContactService struct {
	repo ports.ContactRepository
	log  zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, log zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, log: log}
}

func (s *ContactService) Create(ctx context.Context, input ports.ContactInput) (*domain.Contact, error) {
	contact := &domain.Contact{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
	}

	created, err := s.repo.Save(ctx, contact)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create contact")
		return nil, err
	}

	s.log.Info().Str("contact_id", created.ID).Msg("contact created")
	return created, nil
}

func (s *ContactService) GetAll(ctx context.Context) ([]*domain.Contact, error) {
	return s.repo.FindAll(ctx)
}

func (s *ContactService) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	return s.repo.FindByID(ctx, id)
}

// Update overwrites all five mutable fields unconditionally, unlike the
// merge engine which only takes non-empty values.
func (s *ContactService) Update(ctx context.Context, id string, input ports.ContactInput) (*domain.Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contact.FirstName = input.FirstName
	contact.LastName = input.LastName
	contact.Email = input.Email
	contact.PhoneNumber = input.PhoneNumber
	contact.Address = input.Address

	updated, err := s.repo.Save(ctx, contact)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("contact_id", id).Msg("contact updated")
	return updated, nil
}

// Delete removes the contact by ID. Deleting an absent ID succeeds.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("contact_id", id).Msg("contact deleted")
	return nil
}
