package domain

import "time"

// Vote is a player's pick of which definition they believe is correct.
// At most one vote exists per (game, player, round), and the referenced
// definition always belongs to the same game and round.
type Vote struct {
	ID           string    `json:"id"`
	GameID       string    `json:"gameId"`
	PlayerID     string    `json:"playerId"`
	DefinitionID string    `json:"definitionId"`
	Round        int       `json:"round"`
	CreatedAt    time.Time `json:"createdAt"`
}
