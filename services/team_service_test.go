package services

import (
	"errors"
	"testing"

	"sportmate/models"
)

// teamFixture creates an event with the creator plus extra joined members.
func teamFixture(t *testing.T, extra int) (*TeamService, *EventService, models.Event, []models.Participant) {
	t.Helper()
	db := newTestDB(t)
	category, location := seedPair(t, db, "Soccer", "Bloomfield", "Tel-Aviv-Yaffo")
	creator := seedParticipant(t, db, "Ofek")

	event := mustCreateEvent(t, db, validInput(category, location, creator))
	eventSvc := NewEventService(db)

	joined := []models.Participant{creator}
	for i := 0; i < extra; i++ {
		p := seedParticipant(t, db, "Player")
		if !eventSvc.JoinEvent(p.ID, event.ID) {
			t.Fatalf("setup join %d failed", i)
		}
		joined = append(joined, p)
	}
	return NewTeamService(db), eventSvc, event, joined
}

func TestGenerateTeamsOddRoster(t *testing.T) {
	svc, _, event, members := teamFixture(t, 4) // five members total

	teams, err := svc.GenerateTeams(event.ID)
	if err != nil {
		t.Fatalf("GenerateTeams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("got %d teams, want 2", len(teams))
	}
	if teams[0].Name != "Team1" || teams[1].Name != "Team2" {
		t.Errorf("team names = %q, %q", teams[0].Name, teams[1].Name)
	}

	loaded, err := svc.TeamsFor(event.ID)
	if err != nil {
		t.Fatalf("TeamsFor: %v", err)
	}
	if len(loaded[0].Members) != 2 || len(loaded[1].Members) != 3 {
		t.Fatalf("split = %d/%d, want 2/3", len(loaded[0].Members), len(loaded[1].Members))
	}

	// Join order decides assignment: the earliest members fill Team1.
	if loaded[0].Members[0].ParticipantID != members[0].ID {
		t.Error("creator should open Team1")
	}
	if loaded[1].Members[len(loaded[1].Members)-1].ParticipantID != members[4].ID {
		t.Error("latest joiner should close Team2")
	}
}

func TestGenerateTeamsAssignsEveryMember(t *testing.T) {
	svc, _, event, _ := teamFixture(t, 5) // six members, even split

	if _, err := svc.GenerateTeams(event.ID); err != nil {
		t.Fatalf("GenerateTeams: %v", err)
	}

	loaded, err := svc.TeamsFor(event.ID)
	if err != nil {
		t.Fatalf("TeamsFor: %v", err)
	}
	if len(loaded[0].Members) != 3 || len(loaded[1].Members) != 3 {
		t.Errorf("split = %d/%d, want 3/3", len(loaded[0].Members), len(loaded[1].Members))
	}

	for _, team := range loaded {
		for _, m := range team.Members {
			if m.TeamID == nil || *m.TeamID != team.ID {
				t.Errorf("membership %d not pointing at its team", m.ID)
			}
		}
	}
}

func TestGenerateTeamsReplacesPreviousPair(t *testing.T) {
	svc, eventSvc, event, _ := teamFixture(t, 3)

	first, err := svc.GenerateTeams(event.ID)
	if err != nil {
		t.Fatalf("first GenerateTeams: %v", err)
	}

	// The roster changes, then a regenerate runs.
	db := svc.db
	late := seedParticipant(t, db, "Latecomer")
	if !eventSvc.JoinEvent(late.ID, event.ID) {
		t.Fatal("setup join failed")
	}

	second, err := svc.GenerateTeams(event.ID)
	if err != nil {
		t.Fatalf("second GenerateTeams: %v", err)
	}

	if second[0].ID == first[0].ID || second[1].ID == first[1].ID {
		t.Error("regenerate must create fresh team rows")
	}

	var total int64
	db.Model(&models.Team{}).Where("event_id = ?", event.ID).Count(&total)
	if total != 2 {
		t.Errorf("%d team rows after regenerate, want 2", total)
	}

	var unassigned int64
	db.Model(&models.Membership{}).Where("event_id = ? AND team_id IS NULL", event.ID).Count(&unassigned)
	if unassigned != 0 {
		t.Errorf("%d memberships left without a team after regenerate", unassigned)
	}
}

func TestGenerateTeamsTooFewMembers(t *testing.T) {
	svc, _, event, _ := teamFixture(t, 0) // creator alone

	if _, err := svc.GenerateTeams(event.ID); !errors.Is(err, ErrNotEnoughParticipants) {
		t.Fatalf("err = %v, want ErrNotEnoughParticipants", err)
	}
	if n := countRows(t, svc.db, &models.Team{}); n != 0 {
		t.Errorf("%d team rows persisted after rejected generation", n)
	}
}

func TestGenerateTeamsUnknownEvent(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	if _, err := svc.GenerateTeams(404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
