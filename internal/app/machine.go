// Package app holds the orchestration core: the phase machine driving round
// lifecycle, the registry of live connections, and the broadcast engine that
// keeps every viewer's screen consistent with server state.
package app

import (
	"strings"

	"fictionary/internal/domain"
	"fictionary/internal/scoring"
	"fictionary/internal/store"
)

// Machine encodes the legal phase transitions and round lifecycle of a game.
// Every method that mutates expects to run under the game's store lock;
// transitions are always triggered by commands, never by timers.
type Machine struct {
	store *store.Store
}

// NewMachine creates a phase machine over the shared store
func NewMachine(st *store.Store) *Machine {
	return &Machine{store: st}
}

// SubmitWord sets the round's word and advances WORD_ENTRY to DEFINITION.
// When the submitter also supplies the word's real definition it is recorded
// as the round's single correct, system-authored entry; the phase guard
// ensures there can never be a second one for the same round.
func (m *Machine) SubmitWord(gameID, word, realDefinition string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return domain.ErrEmptyWord
	}

	game, err := m.store.GameByID(gameID)
	if err != nil {
		return err
	}
	if !game.Phase.CanTransitionTo(domain.PhaseDefinition) {
		return domain.ErrInvalidTransition
	}

	if realDefinition = strings.TrimSpace(realDefinition); realDefinition != "" {
		if _, err := m.store.CreateDefinition(gameID, "", game.CurrentRound, realDefinition, true); err != nil {
			return err
		}
	}

	game.CurrentWord = word
	game.Phase = domain.PhaseDefinition
	return m.store.UpdateGame(game)
}

// SubmitDefinition records a player's fake definition for a round
func (m *Machine) SubmitDefinition(gameID, playerID string, round int, text string) (*domain.Definition, error) {
	return m.store.CreateDefinition(gameID, playerID, round, text, false)
}

// EndSubmissions advances DEFINITION to VOTING. No minimum submission count
// is enforced.
func (m *Machine) EndSubmissions(gameID string) error {
	game, err := m.store.GameByID(gameID)
	if err != nil {
		return err
	}
	if !game.Phase.CanTransitionTo(domain.PhaseVoting) {
		return domain.ErrInvalidTransition
	}

	game.Phase = domain.PhaseVoting
	return m.store.UpdateGame(game)
}

// SubmitVote records a player's vote. Voting for your own definition is
// rejected as a conflict.
func (m *Machine) SubmitVote(gameID, playerID, definitionID string, round int) (*domain.Vote, error) {
	def, err := m.store.DefinitionByID(definitionID)
	if err != nil {
		return nil, err
	}
	if def.PlayerID == playerID {
		return nil, domain.ErrSelfVote
	}

	return m.store.CreateVote(gameID, playerID, definitionID, round)
}

// EndVoting advances VOTING to RESULTS, running the scoring pass
// synchronously before the new state is published. A score write for a
// player removed mid-round is skipped, never fails the transition.
func (m *Machine) EndVoting(gameID string) error {
	game, err := m.store.GameByID(gameID)
	if err != nil {
		return err
	}
	if !game.Phase.CanTransitionTo(domain.PhaseResults) {
		return domain.ErrInvalidTransition
	}

	defs := m.store.DefinitionsFor(gameID, game.CurrentRound)
	votes := m.store.VotesFor(gameID, game.CurrentRound)
	players := m.store.PlayersByGame(gameID)

	for playerID, delta := range scoring.Deltas(defs, votes, players) {
		_ = m.store.AddScore(playerID, delta)
	}

	game.Phase = domain.PhaseResults
	return m.store.UpdateGame(game)
}

// NewRound advances RESULTS to the next round's WORD_ENTRY. The finished
// round's definitions and votes stay addressable by round number.
func (m *Machine) NewRound(gameID string) error {
	game, err := m.store.GameByID(gameID)
	if err != nil {
		return err
	}
	if !game.Phase.CanTransitionTo(domain.PhaseWordEntry) {
		return domain.ErrInvalidTransition
	}

	game.CurrentRound++
	game.CurrentWord = ""
	game.Phase = domain.PhaseWordEntry
	return m.store.UpdateGame(game)
}

// CancelRound restarts the current round from WORD_ENTRY, deleting the
// round's definitions and votes. Legal from any phase.
func (m *Machine) CancelRound(gameID string) error {
	game, err := m.store.GameByID(gameID)
	if err != nil {
		return err
	}

	m.store.ClearRound(gameID, game.CurrentRound)

	game.CurrentWord = ""
	game.Phase = domain.PhaseWordEntry
	return m.store.UpdateGame(game)
}

// AwardBonus grants the flat manual bonus to a player in the game.
// Spectators are rejected; the award is independent of round state.
func (m *Machine) AwardBonus(gameID, playerID string) error {
	player, err := m.store.PlayerByID(playerID)
	if err != nil {
		return err
	}
	if player.GameID != gameID {
		return domain.ErrPlayerNotFound
	}
	if player.IsSpectator() {
		return domain.ErrSpectator
	}

	return m.store.AddScore(playerID, scoring.BonusPoints)
}
