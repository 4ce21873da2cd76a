package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-management-api/internal/api/metrics"
	"github.com/contactdesk/contact-management-api/internal/core/domain"
)

// stubContactRepo is an in-memory ports.ContactRepository preserving
// insertion order, so merge passes see records in a deterministic order.
type stubContactRepo struct {
	contacts  []domain.Contact
	nextID    int
	saveCalls int
	deleted   []string
}

func newStubContactRepo(contacts ...domain.Contact) *stubContactRepo {
	r := &stubContactRepo{}
	for _, c := range contacts {
		r.contacts = append(r.contacts, c)
	}
	return r
}

func (r *stubContactRepo) Save(_ context.Context, contact *domain.Contact) (*domain.Contact, error) {
	r.saveCalls++
	if contact.ID == "" {
		r.nextID++
		stored := *contact
		stored.ID = fmt.Sprintf("c-%d", r.nextID)
		r.contacts = append(r.contacts, stored)
		out := stored
		return &out, nil
	}
	for i := range r.contacts {
		if r.contacts[i].ID == contact.ID {
			r.contacts[i] = *contact
			out := *contact
			return &out, nil
		}
	}
	r.contacts = append(r.contacts, *contact)
	out := *contact
	return &out, nil
}

func (r *stubContactRepo) FindByID(_ context.Context, id string) (*domain.Contact, error) {
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			out := r.contacts[i]
			return &out, nil
		}
	}
	return nil, domain.ErrContactNotFound
}

func (r *stubContactRepo) FindAll(_ context.Context) ([]*domain.Contact, error) {
	all := make([]*domain.Contact, 0, len(r.contacts))
	for i := range r.contacts {
		out := r.contacts[i]
		all = append(all, &out)
	}
	return all, nil
}

func (r *stubContactRepo) FindByEmail(_ context.Context, email string) (*domain.Contact, error) {
	for i := range r.contacts {
		if r.contacts[i].Email == email {
			out := r.contacts[i]
			return &out, nil
		}
	}
	return nil, domain.ErrContactNotFound
}

func (r *stubContactRepo) FindByPhoneNumber(_ context.Context, phoneNumber string) (*domain.Contact, error) {
	for i := range r.contacts {
		if r.contacts[i].PhoneNumber == phoneNumber {
			out := r.contacts[i]
			return &out, nil
		}
	}
	return nil, domain.ErrContactNotFound
}

func (r *stubContactRepo) DeleteByID(_ context.Context, id string) error {
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			break
		}
	}
	r.deleted = append(r.deleted, id)
	return nil
}

// stubLocker is a MergeLocker with a scripted Acquire outcome.
type stubLocker struct {
	acquired bool
	err      error
	released int
}

func (l *stubLocker) Acquire(context.Context) (bool, error) { return l.acquired, l.err }
func (l *stubLocker) Release(context.Context) error {
	l.released++
	return nil
}

func openLocker() *stubLocker { return &stubLocker{acquired: true} }

func newTestDuplicateService(repo *stubContactRepo, lock MergeLocker) *DuplicateService {
	return NewDuplicateService(repo, lock, zerolog.Nop())
}

func TestMergeDuplicates_SharedEmail(t *testing.T) {
	repo := newStubContactRepo(
		domain.Contact{ID: "1", FirstName: "A", Email: "a@x.com", PhoneNumber: "+110000000000"},
		domain.Contact{ID: "2", FirstName: "B", Email: "a@x.com", Address: "12 Main St"},
	)
	lock := openLocker()
	svc := newTestDuplicateService(repo, lock)

	message, err := svc.MergeDuplicates(context.Background())
	if err != nil {
		t.Fatalf("MergeDuplicates: %v", err)
	}
	if message != "Contacts merged and duplicates deleted successfully." {
		t.Fatalf("unexpected message: %q", message)
	}

	if len(repo.contacts) != 1 {
		t.Fatalf("expected 1 surviving record, got %d", len(repo.contacts))
	}
	got := repo.contacts[0]
	if got.ID != "1" {
		t.Fatalf("expected record 1 to survive, got %q", got.ID)
	}
	// The later record's non-empty fields win; its empty phone does not
	// erase the canonical one.
	if got.FirstName != "B" {
		t.Fatalf("expected firstName B, got %q", got.FirstName)
	}
	if got.PhoneNumber != "+110000000000" {
		t.Fatalf("expected phone preserved, got %q", got.PhoneNumber)
	}
	if got.Address != "12 Main St" {
		t.Fatalf("expected address merged in, got %q", got.Address)
	}

	if len(repo.deleted) != 1 || repo.deleted[0] != "2" {
		t.Fatalf("expected record 2 deleted, got %v", repo.deleted)
	}
	if lock.released != 1 {
		t.Fatalf("expected lock released once, got %d", lock.released)
	}
}

func TestMergeDuplicates_SharedPhone(t *testing.T) {
	repo := newStubContactRepo(
		domain.Contact{ID: "1", FirstName: "A", Email: "a@x.com", PhoneNumber: "+919999999999"},
		domain.Contact{ID: "2", FirstName: "B", Email: "b@x.com", PhoneNumber: "+919999999999"},
	)
	svc := newTestDuplicateService(repo, openLocker())

	if _, err := svc.MergeDuplicates(context.Background()); err != nil {
		t.Fatalf("MergeDuplicates: %v", err)
	}

	if len(repo.contacts) != 1 {
		t.Fatalf("expected 1 surviving record, got %d", len(repo.contacts))
	}
	got := repo.contacts[0]
	if got.ID != "1" || got.Email != "b@x.com" || got.FirstName != "B" {
		t.Fatalf("unexpected canonical record: %+v", got)
	}
}

func TestMergeDuplicates_Idempotent(t *testing.T) {
	repo := newStubContactRepo(
		domain.Contact{ID: "1", FirstName: "A", Email: "a@x.com"},
		domain.Contact{ID: "2", FirstName: "B", Email: "a@x.com", Address: "12 Main St"},
		domain.Contact{ID: "3", FirstName: "C", PhoneNumber: "+120000000001"},
	)
	svc := newTestDuplicateService(repo, openLocker())

	ctx := context.Background()
	if _, err := svc.MergeDuplicates(ctx); err != nil {
		t.Fatalf("first merge: %v", err)
	}
	after := make([]domain.Contact, len(repo.contacts))
	copy(after, repo.contacts)
	repo.deleted = nil

	if _, err := svc.MergeDuplicates(ctx); err != nil {
		t.Fatalf("second merge: %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("second merge deleted records: %v", repo.deleted)
	}
	if len(repo.contacts) != len(after) {
		t.Fatalf("second merge changed record count: %d -> %d", len(after), len(repo.contacts))
	}
	for i := range after {
		if repo.contacts[i] != after[i] {
			t.Fatalf("second merge changed record %d: %+v -> %+v", i, after[i], repo.contacts[i])
		}
	}
}

func TestMergeDuplicates_EmptyKeysNeverMerge(t *testing.T) {
	repo := newStubContactRepo(
		domain.Contact{ID: "1", FirstName: "A"},
		domain.Contact{ID: "2", FirstName: "B"},
		domain.Contact{ID: "3", FirstName: "C"},
	)
	svc := newTestDuplicateService(repo, openLocker())

	if _, err := svc.MergeDuplicates(context.Background()); err != nil {
		t.Fatalf("MergeDuplicates: %v", err)
	}
	if len(repo.contacts) != 3 {
		t.Fatalf("records without email or phone must never merge, got %d left", len(repo.contacts))
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("expected no deletions, got %v", repo.deleted)
	}
}

func TestMergeDuplicates_EmailWinsOverPhone(t *testing.T) {
	// Record 3 matches record 1 by email and record 2 by phone. Only the
	// email match absorbs it; record 2 is left untouched in this pass.
	repo := newStubContactRepo(
		domain.Contact{ID: "1", FirstName: "A", Email: "a@x.com"},
		domain.Contact{ID: "2", FirstName: "B", PhoneNumber: "+120000000002"},
		domain.Contact{ID: "3", FirstName: "C", Email: "a@x.com", PhoneNumber: "+120000000002"},
	)
	svc := newTestDuplicateService(repo, openLocker())

	if _, err := svc.MergeDuplicates(context.Background()); err != nil {
		t.Fatalf("MergeDuplicates: %v", err)
	}

	if len(repo.deleted) != 1 || repo.deleted[0] != "3" {
		t.Fatalf("expected only record 3 deleted, got %v", repo.deleted)
	}
	if len(repo.contacts) != 2 {
		t.Fatalf("expected 2 surviving records, got %d", len(repo.contacts))
	}

	one, err := repo.FindByID(context.Background(), "1")
	if err != nil {
		t.Fatalf("record 1 missing: %v", err)
	}
	if one.FirstName != "C" || one.PhoneNumber != "+120000000002" {
		t.Fatalf("record 3 not absorbed into record 1: %+v", one)
	}

	two, err := repo.FindByID(context.Background(), "2")
	if err != nil {
		t.Fatalf("record 2 missing: %v", err)
	}
	if two.FirstName != "B" {
		t.Fatalf("phone-matched record must stay untouched, got %+v", two)
	}
}

func TestMergeDuplicates_TwoKeyRecordIndexedOnce(t *testing.T) {
	// A record carrying both keys is registered under each, but it is one
	// object: merges through either key land on the same record, and it is
	// saved exactly once.
	repo := newStubContactRepo(
		domain.Contact{ID: "1", FirstName: "A", Email: "a@x.com", PhoneNumber: "+120000000003"},
		domain.Contact{ID: "2", FirstName: "B", Email: "b@x.com", PhoneNumber: "+120000000003"},
		domain.Contact{ID: "3", LastName: "Smith", Email: "a@x.com"},
	)
	svc := newTestDuplicateService(repo, openLocker())

	if _, err := svc.MergeDuplicates(context.Background()); err != nil {
		t.Fatalf("MergeDuplicates: %v", err)
	}

	if len(repo.contacts) != 1 {
		t.Fatalf("expected 1 surviving record, got %d", len(repo.contacts))
	}
	got := repo.contacts[0]
	if got.ID != "1" || got.FirstName != "B" || got.LastName != "Smith" || got.Email != "a@x.com" {
		t.Fatalf("unexpected canonical record: %+v", got)
	}
	if repo.saveCalls != 1 {
		t.Fatalf("canonical record must be saved once, got %d saves", repo.saveCalls)
	}
}

func TestMergeDuplicates_CountsMergedRecords(t *testing.T) {
	repo := newStubContactRepo(
		domain.Contact{ID: "1", FirstName: "A", Email: "a@x.com"},
		domain.Contact{ID: "2", FirstName: "B", Email: "a@x.com"},
		domain.Contact{ID: "3", FirstName: "C", Email: "a@x.com"},
		domain.Contact{ID: "4", FirstName: "D", Email: "d@x.com"},
	)
	svc := newTestDuplicateService(repo, openLocker())

	before := testutil.ToFloat64(metrics.ContactsMergedTotal)
	if _, err := svc.MergeDuplicates(context.Background()); err != nil {
		t.Fatalf("MergeDuplicates: %v", err)
	}
	if got := testutil.ToFloat64(metrics.ContactsMergedTotal) - before; got != 2 {
		t.Fatalf("expected 2 merged-away records counted, got %v", got)
	}
}

func TestMergeDuplicates_LockHeld(t *testing.T) {
	repo := newStubContactRepo(domain.Contact{ID: "1", Email: "a@x.com"})
	lock := &stubLocker{acquired: false}
	svc := newTestDuplicateService(repo, lock)

	if _, err := svc.MergeDuplicates(context.Background()); !errors.Is(err, domain.ErrMergeInProgress) {
		t.Fatalf("expected ErrMergeInProgress, got %v", err)
	}
	if lock.released != 0 {
		t.Fatalf("lock must not be released when never acquired")
	}
	if repo.saveCalls != 0 || len(repo.deleted) != 0 {
		t.Fatalf("merge must not touch storage while locked out")
	}
}

func TestMergeDuplicates_LockBackendDown(t *testing.T) {
	// A failing lock backend degrades to an unguarded merge rather than
	// blocking the operation.
	repo := newStubContactRepo(
		domain.Contact{ID: "1", Email: "a@x.com"},
		domain.Contact{ID: "2", Email: "a@x.com"},
	)
	svc := newTestDuplicateService(repo, &stubLocker{err: errors.New("redis unavailable")})

	if _, err := svc.MergeDuplicates(context.Background()); err != nil {
		t.Fatalf("MergeDuplicates: %v", err)
	}
	if len(repo.contacts) != 1 {
		t.Fatalf("expected merge to run despite lock failure, got %d records", len(repo.contacts))
	}
}
