package domain

import (
	"errors"
	"testing"
)

func TestPhaseTransitions(t *testing.T) {
	cases := []struct {
		from, to Phase
		want     bool
	}{
		{PhaseWordEntry, PhaseDefinition, true},
		{PhaseDefinition, PhaseVoting, true},
		{PhaseVoting, PhaseResults, true},
		{PhaseResults, PhaseWordEntry, true},
		{PhaseWordEntry, PhaseVoting, false},
		{PhaseDefinition, PhaseResults, false},
		{PhaseVoting, PhaseWordEntry, false},
		{PhaseResults, PhaseVoting, false},
		{Phase("BOGUS"), PhaseWordEntry, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestRoleFromWire(t *testing.T) {
	cases := []struct {
		name      string
		role      string
		spectator bool
		want      Role
	}{
		{"explicit player", "PLAYER", false, RolePlayer},
		{"explicit spectator", "SPECTATOR", false, RoleSpectator},
		{"explicit role wins over flag", "PLAYER", true, RolePlayer},
		{"legacy spectator flag", "", true, RoleSpectator},
		{"no role no flag", "", false, RolePlayer},
		{"garbage role falls back to flag", "admin", true, RoleSpectator},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RoleFromWire(tc.role, tc.spectator); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{ErrGameNotFound, KindNotFound},
		{ErrPlayerNotFound, KindNotFound},
		{ErrSpectator, KindUnauthorized},
		{ErrNotAdmin, KindUnauthorized},
		{ErrEmptyWord, KindValidation},
		{ErrUnknownCommand, KindValidation},
		{ErrAlreadyVoted, KindConflict},
		{ErrSelfVote, KindConflict},
		{ErrInvalidTransition, KindConflict},
		{errors.New("disk on fire"), KindInternal},
	}

	for _, tc := range cases {
		if got := Kind(tc.err); got != tc.want {
			t.Errorf("Kind(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestWithCurrentPlayerSharesSlices(t *testing.T) {
	shared := &GameState{
		Game:    &Game{ID: "g1"},
		Players: []*Player{{ID: "p1"}, {ID: "p2"}},
	}

	ana := shared.WithCurrentPlayer(shared.Players[0])
	ben := shared.WithCurrentPlayer(shared.Players[1])

	if ana.CurrentPlayer.ID != "p1" || ben.CurrentPlayer.ID != "p2" {
		t.Error("personalization wrong")
	}
	if shared.CurrentPlayer != nil {
		t.Error("shared state mutated")
	}
	if &ana.Players[0] != &shared.Players[0] {
		t.Error("personalized copy duplicated the shared slice")
	}
}
