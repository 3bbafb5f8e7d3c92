package domain

import "time"

// Game represents one game session, identified by a shareable join code.
// A game cycles through rounds indefinitely and is never deleted; state
// lives in memory only and is lost on process restart.
type Game struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Phase        Phase     `json:"phase"`
	CurrentWord  string    `json:"currentWord"`
	CurrentRound int       `json:"currentRound"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewGame creates a new game in the word entry phase of round 1
func NewGame(id, code string) *Game {
	return &Game{
		ID:           id,
		Code:         code,
		Phase:        PhaseWordEntry,
		CurrentWord:  "",
		CurrentRound: 1,
		CreatedAt:    time.Now(),
	}
}
