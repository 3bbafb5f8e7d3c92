package domain

import "time"

// Definition is a submitted meaning for the round's word. Player-submitted
// definitions are always fakes; IsCorrect marks the single system-authored
// real definition when one is supplied. At most one definition exists per
// (game, player, round).
type Definition struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	PlayerID  string    `json:"playerId"`
	Round     int       `json:"round"`
	Text      string    `json:"text"`
	IsCorrect bool      `json:"isCorrect"`
	CreatedAt time.Time `json:"createdAt"`
}
