package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/freight-ops/internal/domain"
)

type fakeContactRepo struct {
	contacts []domain.Contact
	nextID   int
}

func (r *fakeContactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	r.nextID++
	contact.ID = "contact-" + strconv.Itoa(r.nextID)
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt
	r.contacts = append(r.contacts, *contact)
	return nil
}

func (r *fakeContactRepo) Update(ctx context.Context, contact *domain.Contact) error {
	for i := range r.contacts {
		if r.contacts[i].ID == contact.ID {
			r.contacts[i] = *contact
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeContactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			found := r.contacts[i]
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeContactRepo) List(ctx context.Context, salesperson *string, limit, offset int) ([]domain.Contact, error) {
	var out []domain.Contact
	for i := range r.contacts {
		if salesperson != nil && r.contacts[i].Salesperson != *salesperson {
			continue
		}
		out = append(out, r.contacts[i])
	}
	return out, nil
}

type fakeCallLogRepo struct {
	logs   []domain.CallLog
	nextID int
}

func (r *fakeCallLogRepo) Create(ctx context.Context, log *domain.CallLog) error {
	r.nextID++
	log.ID = "call-" + strconv.Itoa(r.nextID)
	log.CreatedAt = time.Now()
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeCallLogRepo) ListByContact(ctx context.Context, contactID string) ([]domain.CallLog, error) {
	var out []domain.CallLog
	for i := range r.logs {
		if r.logs[i].ContactID == contactID {
			out = append(out, r.logs[i])
		}
	}
	return out, nil
}

func newTestContactService() (*ContactService, *fakeContactRepo, *fakeCallLogRepo) {
	contacts := &fakeContactRepo{}
	calls := &fakeCallLogRepo{}
	return NewContactService(contacts, calls), contacts, calls
}

func TestContactCreateValidation(t *testing.T) {
	svc, _, _ := newTestContactService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, ContactCreateInput{Phone: "123"}); err == nil {
		t.Errorf("missing name should fail")
	}
	if _, err := svc.Create(ctx, ContactCreateInput{Name: "Lena"}); err == nil {
		t.Errorf("missing phone should fail")
	}

	contact, err := svc.Create(ctx, ContactCreateInput{Name: " Lena ", Phone: "123", Salesperson: "Amjad"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if contact.Name != "Lena" {
		t.Errorf("Name = %q, want trimmed Lena", contact.Name)
	}
	if contact.Status != domain.ContactStatusNew {
		t.Errorf("Status = %q, want new", contact.Status)
	}
}

func TestLogCallOutcomes(t *testing.T) {
	svc, contacts, _ := newTestContactService()
	ctx := context.Background()

	contact, err := svc.Create(ctx, ContactCreateInput{Name: "Lena", Phone: "123"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.LogCall(ctx, contact.ID, CallLogInput{Outcome: domain.CallOutcome("bogus")}); err == nil {
		t.Errorf("unknown outcome should fail")
	}
	if _, err := svc.LogCall(ctx, contact.ID, CallLogInput{Outcome: domain.OutcomeFollowUp}); err == nil {
		t.Errorf("follow_up without date should fail")
	}

	followUp := time.Now().Add(48 * time.Hour)
	if _, err := svc.LogCall(ctx, contact.ID, CallLogInput{Outcome: domain.OutcomeFollowUp, FollowUpAt: &followUp}); err != nil {
		t.Fatalf("LogCall follow_up: %v", err)
	}
	updated, err := contacts.GetByID(ctx, contact.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Status != domain.ContactStatusInProgress {
		t.Errorf("Status = %q, want in_progress after follow_up", updated.Status)
	}

	if _, err := svc.LogCall(ctx, contact.ID, CallLogInput{Outcome: domain.OutcomeConverted}); err != nil {
		t.Fatalf("LogCall converted: %v", err)
	}
	updated, _ = contacts.GetByID(ctx, contact.ID)
	if updated.Status != domain.ContactStatusConverted {
		t.Errorf("Status = %q, want converted", updated.Status)
	}
}

func TestLogCallNotInterestedDropsContact(t *testing.T) {
	svc, contacts, calls := newTestContactService()
	ctx := context.Background()

	contact, err := svc.Create(ctx, ContactCreateInput{Name: "Omar", Phone: "456"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.LogCall(ctx, contact.ID, CallLogInput{Outcome: domain.OutcomeNotInterested, Notes: "  no budget  "}); err != nil {
		t.Fatalf("LogCall: %v", err)
	}

	updated, _ := contacts.GetByID(ctx, contact.ID)
	if updated.Status != domain.ContactStatusDropped {
		t.Errorf("Status = %q, want dropped", updated.Status)
	}
	logs, _ := calls.ListByContact(ctx, contact.ID)
	if len(logs) != 1 || logs[0].Notes != "no budget" {
		t.Errorf("logs = %+v, want one trimmed note", logs)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	svc, _, _ := newTestContactService()
	ctx := context.Background()
	contact, err := svc.Create(ctx, ContactCreateInput{Name: "Lena", Phone: "123"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, contact.ID, domain.ContactStatus("archived")); err == nil {
		t.Fatalf("unknown status should fail")
	}
	updated, err := svc.UpdateStatus(ctx, contact.ID, domain.ContactStatusDropped)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.ContactStatusDropped {
		t.Fatalf("Status = %q, want dropped", updated.Status)
	}
}
