package domain

import "time"

// Player represents a room member. SessionID is the per-connection token a
// client presents on join; it is stable across reconnects and never leaves
// the server in broadcasts.
type Player struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	Name      string    `json:"name"`
	SessionID string    `json:"-"`
	Role      Role      `json:"role"`
	IsAdmin   bool      `json:"isAdmin"`
	Score     int       `json:"score"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// NewPlayer creates a new player with a zero score
func NewPlayer(id, gameID, name, sessionID string, role Role) *Player {
	return &Player{
		ID:        id,
		GameID:    gameID,
		Name:      name,
		SessionID: sessionID,
		Role:      role,
		Score:     0,
		JoinedAt:  time.Now(),
	}
}

// IsSpectator returns true if the player cannot submit, vote, or score
func (p *Player) IsSpectator() bool {
	return p.Role.IsSpectator()
}
