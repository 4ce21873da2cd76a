package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/contactdesk/contact-management-api/internal/core/domain"
)

// fakeDuplicateService adds a scripted merge outcome on top of the contact
// CRUD fake.
type fakeDuplicateService struct {
	fakeContactService
	message  string
	mergeErr error
}

func (f *fakeDuplicateService) MergeDuplicates(context.Context) (string, error) {
	if f.mergeErr != nil {
		return "", f.mergeErr
	}
	return f.message, nil
}

func TestDuplicateHandler_MergeDuplicates(t *testing.T) {
	svc := &fakeDuplicateService{message: "Contacts merged and duplicates deleted successfully."}
	h := NewDuplicateContactHandler(svc, "contacts_with_duplicates")
	c, rec := newJSONContext(http.MethodPost, "/api/duplicateContacts/mergeDuplicates", "")

	if err := h.MergeDuplicates(c); err != nil {
		t.Fatalf("MergeDuplicates: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != svc.message {
		t.Fatalf("expected the confirmation message verbatim, got %q", rec.Body.String())
	}
}

func TestDuplicateHandler_MergeLocked(t *testing.T) {
	h := NewDuplicateContactHandler(&fakeDuplicateService{mergeErr: domain.ErrMergeInProgress}, "contacts_with_duplicates")
	c, _ := newJSONContext(http.MethodPost, "/api/duplicateContacts/mergeDuplicates", "")

	if err := h.MergeDuplicates(c); !errors.Is(err, domain.ErrMergeInProgress) {
		t.Fatalf("expected ErrMergeInProgress, got %v", err)
	}
}
