package services

import (
	"errors"
	"testing"
	"time"
)

func TestVerifyPollWindow(t *testing.T) {
	start := time.Now().Add(48 * time.Hour)

	if err := verifyPollWindow(start.Add(-time.Hour), start); err != nil {
		t.Errorf("poll closing before the event start rejected: %v", err)
	}
	if err := verifyPollWindow(start, start); !errors.Is(err, ErrInvalidPollWindow) {
		t.Errorf("poll closing exactly at start must be rejected, got %v", err)
	}
	if err := verifyPollWindow(start.Add(time.Minute), start); !errors.Is(err, ErrInvalidPollWindow) {
		t.Errorf("poll closing after start must be rejected, got %v", err)
	}
}

func TestPollActiveAndTimeRemaining(t *testing.T) {
	db := newTestDB(t)
	category, location := seedPair(t, db, "Soccer", "Bloomfield", "Tel-Aviv-Yaffo")
	creator := seedParticipant(t, db, "Ofek")
	event := mustCreateEvent(t, db, validInput(category, location, creator))

	svc := NewPollService(db)
	poll, err := svc.GetPoll(event.ID)
	if err != nil {
		t.Fatalf("GetPoll: %v", err)
	}

	active, err := svc.IsActive(poll.ID)
	if err != nil {
		t.Fatalf("IsActive: %v", err)
	}
	if !active {
		t.Error("freshly created poll should be active")
	}

	remaining, err := svc.TimeRemaining(poll.ID)
	if err != nil {
		t.Fatalf("TimeRemaining: %v", err)
	}
	if remaining <= 0 {
		t.Errorf("remaining = %v, want positive for an open poll", remaining)
	}

	// An expired window reports inactive with zero remaining.
	svc.now = func() time.Time { return poll.EndTime.Add(time.Minute) }
	active, err = svc.IsActive(poll.ID)
	if err != nil {
		t.Fatalf("IsActive after end: %v", err)
	}
	if active {
		t.Error("poll past its end time still active")
	}
	remaining, err = svc.TimeRemaining(poll.ID)
	if err != nil {
		t.Fatalf("TimeRemaining after end: %v", err)
	}
	if remaining != 0 {
		t.Errorf("remaining = %v after end, want 0", remaining)
	}
}

func TestClosePoll(t *testing.T) {
	db := newTestDB(t)
	category, location := seedPair(t, db, "Soccer", "Bloomfield", "Tel-Aviv-Yaffo")
	creator := seedParticipant(t, db, "Ofek")
	event := mustCreateEvent(t, db, validInput(category, location, creator))

	svc := NewPollService(db)
	poll, err := svc.GetPoll(event.ID)
	if err != nil {
		t.Fatalf("GetPoll: %v", err)
	}

	if err := svc.ClosePoll(poll.ID); err != nil {
		t.Fatalf("ClosePoll: %v", err)
	}

	active, err := svc.IsActive(poll.ID)
	if err != nil {
		t.Fatalf("IsActive: %v", err)
	}
	if active {
		t.Error("poll still active after close")
	}

	// Closing again is a no-op, not an error.
	if err := svc.ClosePoll(poll.ID); err != nil {
		t.Fatalf("second ClosePoll: %v", err)
	}

	if err := svc.ClosePoll(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for unknown poll", err)
	}
}

func TestAddSuggestion(t *testing.T) {
	db := newTestDB(t)
	category, location := seedPair(t, db, "Soccer", "Bloomfield", "Tel-Aviv-Yaffo")
	creator := seedParticipant(t, db, "Ofek")

	in := validInput(category, location, creator)
	in.PollMaxSuggestions = 2
	event := mustCreateEvent(t, db, in)

	svc := NewPollService(db)
	poll, err := svc.GetPoll(event.ID)
	if err != nil {
		t.Fatalf("GetPoll: %v", err)
	}

	first := in.StartTime.Add(24 * time.Hour)
	if _, err := svc.AddSuggestion(poll.ID, first); err != nil {
		t.Fatalf("AddSuggestion: %v", err)
	}

	// An already suggested time is a conflict.
	if _, err := svc.AddSuggestion(poll.ID, first); !errors.Is(err, ErrNameConflict) {
		t.Fatalf("duplicate time err = %v, want ErrNameConflict", err)
	}

	if _, err := svc.AddSuggestion(poll.ID, first.Add(time.Hour)); err != nil {
		t.Fatalf("second AddSuggestion: %v", err)
	}

	// The cap is hard.
	if _, err := svc.AddSuggestion(poll.ID, first.Add(2*time.Hour)); !errors.Is(err, ErrSuggestionLimit) {
		t.Fatalf("over-cap err = %v, want ErrSuggestionLimit", err)
	}

	loaded, err := svc.GetPoll(event.ID)
	if err != nil {
		t.Fatalf("GetPoll: %v", err)
	}
	if len(loaded.Suggestions) != 2 {
		t.Errorf("%d suggestions stored, want 2", len(loaded.Suggestions))
	}
}

func TestAddSuggestionClosedPoll(t *testing.T) {
	db := newTestDB(t)
	category, location := seedPair(t, db, "Soccer", "Bloomfield", "Tel-Aviv-Yaffo")
	creator := seedParticipant(t, db, "Ofek")
	event := mustCreateEvent(t, db, validInput(category, location, creator))

	svc := NewPollService(db)
	poll, err := svc.GetPoll(event.ID)
	if err != nil {
		t.Fatalf("GetPoll: %v", err)
	}
	if err := svc.ClosePoll(poll.ID); err != nil {
		t.Fatalf("ClosePoll: %v", err)
	}

	if _, err := svc.AddSuggestion(poll.ID, time.Now().Add(72*time.Hour)); !errors.Is(err, ErrPollClosed) {
		t.Fatalf("err = %v, want ErrPollClosed", err)
	}
}

func TestVoteSuggestion(t *testing.T) {
	db := newTestDB(t)
	category, location := seedPair(t, db, "Soccer", "Bloomfield", "Tel-Aviv-Yaffo")
	creator := seedParticipant(t, db, "Ofek")
	voter := seedParticipant(t, db, "Danny")
	event := mustCreateEvent(t, db, validInput(category, location, creator))

	svc := NewPollService(db)
	poll, err := svc.GetPoll(event.ID)
	if err != nil {
		t.Fatalf("GetPoll: %v", err)
	}
	suggestion, err := svc.AddSuggestion(poll.ID, time.Now().Add(72*time.Hour))
	if err != nil {
		t.Fatalf("AddSuggestion: %v", err)
	}

	if err := svc.VoteSuggestion(suggestion.ID, voter.ID); err != nil {
		t.Fatalf("VoteSuggestion: %v", err)
	}
	// One vote per participant per suggestion.
	if err := svc.VoteSuggestion(suggestion.ID, voter.ID); !errors.Is(err, ErrNameConflict) {
		t.Fatalf("repeat vote err = %v, want ErrNameConflict", err)
	}
	// A second participant may back the same time.
	if err := svc.VoteSuggestion(suggestion.ID, creator.ID); err != nil {
		t.Fatalf("second voter: %v", err)
	}

	if err := svc.VoteSuggestion(9999, voter.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown suggestion err = %v, want ErrNotFound", err)
	}
}
