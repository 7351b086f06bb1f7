package services

import (
	"errors"
	"testing"
)

func TestEnsureCreatesAndUpdates(t *testing.T) {
	db := newTestDB(t)
	svc := NewParticipantService(db)

	const subject = "6f1e0cc2-9ad1-4c5e-a9cb-0de7b0380652"

	created, err := svc.Ensure(subject, "Ofek", "+972500000000")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("participant not assigned an id")
	}

	// A repeat call updates in place instead of duplicating the row.
	updated, err := svc.Ensure(subject, "Ofek L", "")
	if err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("Ensure duplicated the row: %d vs %d", updated.ID, created.ID)
	}
	if updated.DisplayName != "Ofek L" {
		t.Errorf("display name = %q, want updated value", updated.DisplayName)
	}
	if updated.PhoneNumber != "+972500000000" {
		t.Error("empty phone in the update must not clear the stored value")
	}

	if _, err := svc.Ensure("not-a-uuid", "x", ""); err == nil {
		t.Error("malformed external id accepted, want error")
	}
}

func TestParticipantLookups(t *testing.T) {
	db := newTestDB(t)
	svc := NewParticipantService(db)

	const subject = "2b0a8a80-53cd-4f6e-9f25-55b00cf17e30"
	created, err := svc.Ensure(subject, "Danny", "")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	byExternal, err := svc.GetByExternalID(subject)
	if err != nil {
		t.Fatalf("GetByExternalID: %v", err)
	}
	if byExternal.ID != created.ID {
		t.Error("external id lookup resolved the wrong row")
	}

	byID, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if byID.ExternalID != subject {
		t.Error("id lookup resolved the wrong row")
	}

	if _, err := svc.GetByExternalID("00000000-0000-4000-8000-000000000099"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown subject err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Get(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id err = %v, want ErrNotFound", err)
	}
}
