// Package scoring turns one round's definitions and votes into score
// deltas. It is a pure function of its inputs and depends only on the
// store's query shapes.
package scoring

import "fictionary/internal/domain"

const (
	// CorrectVotePoints is the flat award for voting the real definition
	CorrectVotePoints = 2

	// BonusPoints is the flat award for the admin's manual bonus
	BonusPoints = 3
)

// Deltas computes per-player score changes for a round.
//
// Authors of fake definitions earn one point per vote their definition
// received. If the round has a real definition, each player who voted for it
// earns a flat CorrectVotePoints. Spectators never earn points, and dangling
// references (an author or voter removed mid-round) are skipped silently
// rather than failing the round.
func Deltas(defs []*domain.Definition, votes []*domain.Vote, players []*domain.Player) map[string]int {
	byID := make(map[string]*domain.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	voteCounts := make(map[string]int)
	for _, v := range votes {
		voteCounts[v.DefinitionID]++
	}

	deltas := make(map[string]int)

	// Deceivers are rewarded per person fooled.
	var correct *domain.Definition
	for _, d := range defs {
		if d.IsCorrect {
			correct = d
			continue
		}
		count := voteCounts[d.ID]
		if count == 0 {
			continue
		}
		author, ok := byID[d.PlayerID]
		if !ok || author.IsSpectator() {
			continue
		}
		deltas[author.ID] += count
	}

	if correct == nil {
		return deltas
	}

	for _, v := range votes {
		if v.DefinitionID != correct.ID {
			continue
		}
		voter, ok := byID[v.PlayerID]
		if !ok || voter.IsSpectator() {
			continue
		}
		deltas[voter.ID] += CorrectVotePoints
	}

	return deltas
}
