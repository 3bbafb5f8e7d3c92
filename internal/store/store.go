// Package store holds every Game, Player, Definition, and Vote record in
// memory and exposes the round-scoped queries and mutation primitives the
// orchestrator is built on. It has no knowledge of networking; state is
// ephemeral and lost on process restart.
package store

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"fictionary/internal/domain"
)

const (
	// DefaultCodeLength is the default length for game join codes
	DefaultCodeLength = 6

	// CodeChars are characters used for join codes (no ambiguous chars)
	CodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Store is the single in-memory entity store shared by all connections.
// Its own mutex keeps the maps safe under concurrent access from different
// games; the per-game locks handed out by LockGame serialize all mutating
// command handling within one game.
type Store struct {
	mu          sync.RWMutex
	codeLength  int
	games       map[string]*domain.Game
	codes       map[string]string // join code -> game id
	players     map[string]*domain.Player
	definitions map[string]*domain.Definition
	votes       map[string]*domain.Vote

	// Insertion order per game, so snapshots list entities in arrival order
	// (the first player in playerOrder is the admin).
	playerOrder map[string][]string
	defOrder    map[string][]string
	voteOrder   map[string][]string

	locksMu   sync.Mutex
	gameLocks map[string]*sync.Mutex
}

// New creates an empty store
func New() *Store {
	return &Store{
		codeLength:  DefaultCodeLength,
		games:       make(map[string]*domain.Game),
		codes:       make(map[string]string),
		players:     make(map[string]*domain.Player),
		definitions: make(map[string]*domain.Definition),
		votes:       make(map[string]*domain.Vote),
		playerOrder: make(map[string][]string),
		defOrder:    make(map[string][]string),
		voteOrder:   make(map[string][]string),
		gameLocks:   make(map[string]*sync.Mutex),
	}
}

// LockGame acquires the mutating-command lock for one game and returns the
// release func. Commands for different games proceed in parallel; within one
// game everything that writes runs under this lock.
func (s *Store) LockGame(gameID string) func() {
	s.locksMu.Lock()
	l, ok := s.gameLocks[gameID]
	if !ok {
		l = &sync.Mutex{}
		s.gameLocks[gameID] = l
	}
	s.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// CreateGame creates a new game with a unique shareable join code
func (s *Store) CreateGame() (*domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var code string
	for {
		code = generateCode(s.codeLength)
		if _, exists := s.codes[code]; !exists {
			break
		}
	}

	game := domain.NewGame(uuid.New().String(), code)
	s.games[game.ID] = game
	s.codes[code] = game.ID

	return cloneGame(game), nil
}

// GameByID returns a game by its id
func (s *Store) GameByID(id string) (*domain.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return cloneGame(game), nil
}

// GameByCode returns a game by its join code
func (s *Store) GameByCode(code string) (*domain.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.codes[strings.ToUpper(code)]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return cloneGame(s.games[id]), nil
}

// UpdateGame writes back a game's mutable fields (phase, word, round)
func (s *Store) UpdateGame(g *domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.games[g.ID]
	if !ok {
		return domain.ErrGameNotFound
	}

	stored.Phase = g.Phase
	stored.CurrentWord = g.CurrentWord
	stored.CurrentRound = g.CurrentRound
	return nil
}

// GameCount returns the number of games held in memory
func (s *Store) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// CreatePlayer adds a player to a game. The first player created for a game
// becomes its admin and that assignment never moves. Creating a player for a
// session that already has one in the game returns the existing record, so
// joins are idempotent across reconnects.
func (s *Store) CreatePlayer(gameID, name, sessionID string, role domain.Role) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return nil, domain.ErrGameNotFound
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrEmptyName
	}
	if sessionID == "" {
		return nil, domain.ErrMissingSession
	}

	for _, id := range s.playerOrder[gameID] {
		if p := s.players[id]; p != nil && p.SessionID == sessionID {
			return clonePlayer(p), nil
		}
	}

	player := domain.NewPlayer(uuid.New().String(), gameID, strings.TrimSpace(name), sessionID, role)
	player.IsAdmin = len(s.playerOrder[gameID]) == 0
	s.players[player.ID] = player
	s.playerOrder[gameID] = append(s.playerOrder[gameID], player.ID)

	return clonePlayer(player), nil
}

// PlayerByID returns a player by id
func (s *Store) PlayerByID(id string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return clonePlayer(player), nil
}

// PlayerBySession resolves the acting player for a session within one game
func (s *Store) PlayerBySession(gameID, sessionID string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.playerOrder[gameID] {
		if p := s.players[id]; p != nil && p.SessionID == sessionID {
			return clonePlayer(p), nil
		}
	}
	return nil, domain.ErrPlayerNotFound
}

// PlayersByGame returns a game's players in arrival order
func (s *Store) PlayersByGame(gameID string) []*domain.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*domain.Player, 0, len(s.playerOrder[gameID]))
	for _, id := range s.playerOrder[gameID] {
		if p, ok := s.players[id]; ok {
			players = append(players, clonePlayer(p))
		}
	}
	return players
}

// AddScore adjusts a player's score by delta
func (s *Store) AddScore(playerID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok {
		return domain.ErrPlayerNotFound
	}
	player.Score += delta
	return nil
}

// RemovePlayer deletes a player and cascades to their definitions and votes.
// Votes cast by other players for a removed definition are left dangling;
// scoring skips them.
func (s *Store) RemovePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok {
		return domain.ErrPlayerNotFound
	}

	delete(s.players, playerID)
	s.playerOrder[player.GameID] = remove(s.playerOrder[player.GameID], playerID)

	s.deleteDefinitions(player.GameID, func(d *domain.Definition) bool {
		return d.PlayerID == playerID
	})
	s.deleteVotes(player.GameID, func(v *domain.Vote) bool {
		return v.PlayerID == playerID
	})

	return nil
}

// CreateDefinition records a player's definition for a round. An empty
// author marks the system-supplied real definition; the one-per-player-round
// invariant applies to player-authored definitions only.
func (s *Store) CreateDefinition(gameID, playerID string, round int, text string, correct bool) (*domain.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return nil, domain.ErrGameNotFound
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyDefinition
	}

	if playerID != "" {
		for _, id := range s.defOrder[gameID] {
			if d := s.definitions[id]; d != nil && d.PlayerID == playerID && d.Round == round {
				return nil, domain.ErrAlreadySubmitted
			}
		}
	}

	def := &domain.Definition{
		ID:        uuid.New().String(),
		GameID:    gameID,
		PlayerID:  playerID,
		Round:     round,
		Text:      strings.TrimSpace(text),
		IsCorrect: correct,
		CreatedAt: time.Now(),
	}
	s.definitions[def.ID] = def
	s.defOrder[gameID] = append(s.defOrder[gameID], def.ID)

	return cloneDefinition(def), nil
}

// DefinitionByID returns a definition by id
func (s *Store) DefinitionByID(id string) (*domain.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.definitions[id]
	if !ok {
		return nil, domain.ErrDefinitionNotFound
	}
	return cloneDefinition(def), nil
}

// DefinitionsFor returns one round's definitions in submission order
func (s *Store) DefinitionsFor(gameID string, round int) []*domain.Definition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	defs := make([]*domain.Definition, 0)
	for _, id := range s.defOrder[gameID] {
		if d, ok := s.definitions[id]; ok && d.Round == round {
			defs = append(defs, cloneDefinition(d))
		}
	}
	return defs
}

// CreateVote records a player's vote for a definition. The definition must
// belong to the same game and round as the vote.
func (s *Store) CreateVote(gameID, playerID, definitionID string, round int) (*domain.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return nil, domain.ErrGameNotFound
	}

	def, ok := s.definitions[definitionID]
	if !ok {
		return nil, domain.ErrDefinitionNotFound
	}
	if def.GameID != gameID || def.Round != round {
		return nil, domain.ErrWrongRound
	}

	for _, id := range s.voteOrder[gameID] {
		if v := s.votes[id]; v != nil && v.PlayerID == playerID && v.Round == round {
			return nil, domain.ErrAlreadyVoted
		}
	}

	vote := &domain.Vote{
		ID:           uuid.New().String(),
		GameID:       gameID,
		PlayerID:     playerID,
		DefinitionID: definitionID,
		Round:        round,
		CreatedAt:    time.Now(),
	}
	s.votes[vote.ID] = vote
	s.voteOrder[gameID] = append(s.voteOrder[gameID], vote.ID)

	return cloneVote(vote), nil
}

// VotesFor returns one round's votes in arrival order
func (s *Store) VotesFor(gameID string, round int) []*domain.Vote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	votes := make([]*domain.Vote, 0)
	for _, id := range s.voteOrder[gameID] {
		if v, ok := s.votes[id]; ok && v.Round == round {
			votes = append(votes, cloneVote(v))
		}
	}
	return votes
}

// ClearRound bulk-deletes a round's definitions and votes. Used by round
// cancellation; a normal new round preserves history.
func (s *Store) ClearRound(gameID string, round int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteDefinitions(gameID, func(d *domain.Definition) bool {
		return d.Round == round
	})
	s.deleteVotes(gameID, func(v *domain.Vote) bool {
		return v.Round == round
	})
}

// deleteDefinitions removes a game's definitions matching the predicate.
// Caller must hold s.mu.
func (s *Store) deleteDefinitions(gameID string, match func(*domain.Definition) bool) {
	kept := s.defOrder[gameID][:0]
	for _, id := range s.defOrder[gameID] {
		d := s.definitions[id]
		if d != nil && match(d) {
			delete(s.definitions, id)
			continue
		}
		kept = append(kept, id)
	}
	s.defOrder[gameID] = kept
}

// deleteVotes removes a game's votes matching the predicate. Caller must
// hold s.mu.
func (s *Store) deleteVotes(gameID string, match func(*domain.Vote) bool) {
	kept := s.voteOrder[gameID][:0]
	for _, id := range s.voteOrder[gameID] {
		v := s.votes[id]
		if v != nil && match(v) {
			delete(s.votes, id)
			continue
		}
		kept = append(kept, id)
	}
	s.voteOrder[gameID] = kept
}

func remove(ids []string, id string) []string {
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return kept
}

func cloneGame(g *domain.Game) *domain.Game {
	c := *g
	return &c
}

func clonePlayer(p *domain.Player) *domain.Player {
	c := *p
	return &c
}

func cloneDefinition(d *domain.Definition) *domain.Definition {
	c := *d
	return &c
}

func cloneVote(v *domain.Vote) *domain.Vote {
	c := *v
	return &c
}

// generateCode generates a random join code
func generateCode(length int) string {
	b := make([]byte, length)
	rand.Read(b)

	code := make([]byte, length)
	for i := range code {
		code[i] = CodeChars[int(b[i])%len(CodeChars)]
	}
	return string(code)
}
