package models

import (
	"testing"
	"time"
)

func TestPollIsActive(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	poll := Poll{EndTime: now.Add(time.Hour)}

	if !poll.IsActive(now) {
		t.Error("poll before its end time should be active")
	}
	if poll.IsActive(poll.EndTime) {
		t.Error("poll exactly at its end time should be closed")
	}
	if poll.IsActive(poll.EndTime.Add(time.Minute)) {
		t.Error("poll past its end time should be closed")
	}
}

func TestPollTimeRemaining(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	poll := Poll{EndTime: now.Add(90 * time.Minute)}

	if got := poll.TimeRemaining(now); got != 90*time.Minute {
		t.Errorf("remaining = %v, want 90m", got)
	}
	if got := poll.TimeRemaining(poll.EndTime); got != 0 {
		t.Errorf("remaining at end = %v, want 0", got)
	}
	if got := poll.TimeRemaining(poll.EndTime.Add(time.Hour)); got != 0 {
		t.Errorf("remaining past end = %v, want 0 (never negative)", got)
	}
}

func TestEventIsFull(t *testing.T) {
	cases := []struct {
		participants uint
		max          uint
		want         bool
	}{
		{1, 2, false},
		{2, 2, true},
		{19, 20, false},
		{20, 20, true},
	}
	for _, tc := range cases {
		event := Event{ParticipantsNum: tc.participants, MaxParticipants: tc.max}
		if got := event.IsFull(); got != tc.want {
			t.Errorf("IsFull with %d/%d = %v, want %v", tc.participants, tc.max, got, tc.want)
		}
	}
}
