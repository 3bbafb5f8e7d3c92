package scoring

import (
	"testing"

	"fictionary/internal/domain"
)

func player(id string, role domain.Role) *domain.Player {
	return &domain.Player{ID: id, Name: id, Role: role}
}

func def(id, authorID string, correct bool) *domain.Definition {
	return &domain.Definition{ID: id, PlayerID: authorID, Round: 1, IsCorrect: correct}
}

func vote(voterID, defID string) *domain.Vote {
	return &domain.Vote{ID: voterID + ">" + defID, PlayerID: voterID, DefinitionID: defID, Round: 1}
}

func TestDeltas(t *testing.T) {
	cases := []struct {
		name    string
		defs    []*domain.Definition
		votes   []*domain.Vote
		players []*domain.Player
		want    map[string]int
	}{
		{
			name: "fake author earns one point per vote, correct voters earn flat bonus",
			defs: []*domain.Definition{
				def("d1", "p1", false),
				def("d2", "", true),
			},
			votes: []*domain.Vote{
				vote("p2", "d1"), vote("p3", "d1"), vote("p4", "d1"),
				vote("p5", "d2"), vote("p6", "d2"),
			},
			players: []*domain.Player{
				player("p1", domain.RolePlayer), player("p2", domain.RolePlayer),
				player("p3", domain.RolePlayer), player("p4", domain.RolePlayer),
				player("p5", domain.RolePlayer), player("p6", domain.RolePlayer),
			},
			want: map[string]int{"p1": 3, "p5": CorrectVotePoints, "p6": CorrectVotePoints},
		},
		{
			name: "no correct definition means no voter bonus",
			defs: []*domain.Definition{def("d1", "p1", false)},
			votes: []*domain.Vote{
				vote("p2", "d1"),
			},
			players: []*domain.Player{
				player("p1", domain.RolePlayer), player("p2", domain.RolePlayer),
			},
			want: map[string]int{"p1": 1},
		},
		{
			name: "spectator author and voter earn nothing",
			defs: []*domain.Definition{
				def("d1", "watcher", false),
				def("d2", "", true),
			},
			votes: []*domain.Vote{
				vote("p1", "d1"),
				vote("watcher", "d2"),
			},
			players: []*domain.Player{
				player("watcher", domain.RoleSpectator), player("p1", domain.RolePlayer),
			},
			want: map[string]int{},
		},
		{
			name: "dangling author and voter skipped silently",
			defs: []*domain.Definition{
				def("d1", "ghost", false),
				def("d2", "", true),
			},
			votes: []*domain.Vote{
				vote("p1", "d1"),
				vote("ghost", "d2"),
			},
			players: []*domain.Player{player("p1", domain.RolePlayer)},
			want:    map[string]int{},
		},
		{
			name: "unvoted fake definition earns nothing",
			defs: []*domain.Definition{def("d1", "p1", false)},
			players: []*domain.Player{
				player("p1", domain.RolePlayer),
			},
			want: map[string]int{},
		},
		{
			name: "empty round",
			want: map[string]int{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Deltas(tc.defs, tc.votes, tc.players)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for id, delta := range tc.want {
				if got[id] != delta {
					t.Errorf("delta[%s] = %d, want %d", id, got[id], delta)
				}
			}
		})
	}
}

func TestDeltasVotersOfFakeUnchanged(t *testing.T) {
	defs := []*domain.Definition{
		def("d1", "p1", false),
		def("d2", "", true),
	}
	votes := []*domain.Vote{vote("p2", "d1")}
	players := []*domain.Player{
		player("p1", domain.RolePlayer), player("p2", domain.RolePlayer),
	}

	got := Deltas(defs, votes, players)
	if _, ok := got["p2"]; ok {
		t.Errorf("voter of a fake definition should earn nothing, got %d", got["p2"])
	}
	if got["p1"] != 1 {
		t.Errorf("author delta = %d, want 1", got["p1"])
	}
}
