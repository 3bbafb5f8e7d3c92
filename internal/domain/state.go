package domain

// GameState is the derived snapshot pushed to clients: the shared game data
// filtered to one round, plus the recipient's own player record. The shared
// fields are identical for every viewer of a broadcast; only CurrentPlayer
// differs per recipient.
type GameState struct {
	Game          *Game         `json:"game"`
	Players       []*Player     `json:"players"`
	Definitions   []*Definition `json:"definitions"`
	Votes         []*Vote       `json:"votes"`
	CurrentPlayer *Player       `json:"currentPlayer,omitempty"`
}

// WithCurrentPlayer returns a shallow copy of the state personalized for one
// recipient. The shared slices are reused, never copied per viewer.
func (s *GameState) WithCurrentPlayer(p *Player) *GameState {
	personalized := *s
	personalized.CurrentPlayer = p
	return &personalized
}
