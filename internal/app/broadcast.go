package app

import (
	"log/slog"

	"fictionary/internal/domain"
	"fictionary/internal/store"
)

// Broadcaster renders personalized state snapshots and pushes them through
// the registry. Delivery is best effort: a dead or slow recipient is skipped
// without affecting delivery to the others.
type Broadcaster struct {
	store    *store.Store
	registry *Registry
	logger   *slog.Logger
}

// NewBroadcaster creates a broadcaster over the shared store and registry
func NewBroadcaster(st *store.Store, registry *Registry, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{store: st, registry: registry, logger: logger}
}

// Snapshot builds the shared game state for one round: game, players,
// definitions, and votes, without a recipient identity attached
func (b *Broadcaster) Snapshot(gameID string, round int) (*domain.GameState, error) {
	game, err := b.store.GameByID(gameID)
	if err != nil {
		return nil, err
	}

	return &domain.GameState{
		Game:        game,
		Players:     b.store.PlayersByGame(gameID),
		Definitions: b.store.DefinitionsFor(gameID, round),
		Votes:       b.store.VotesFor(gameID, round),
	}, nil
}

// SendSnapshot sends one session a personalized snapshot of the given round.
// Used on join, where the joining connection gets a direct snapshot before
// the room-wide broadcast.
func (b *Broadcaster) SendSnapshot(gameID, sessionID string, round int) error {
	shared, err := b.Snapshot(gameID, round)
	if err != nil {
		return err
	}

	conn, ok := b.registry.Conn(sessionID)
	if !ok {
		return nil
	}
	b.send(conn, sessionID, shared)
	return nil
}

// Broadcast computes the current round's shared state once and pushes a
// personalized copy to every session in the game room
func (b *Broadcaster) Broadcast(gameID string) {
	game, err := b.store.GameByID(gameID)
	if err != nil {
		b.logger.Debug("broadcast skipped", "gameID", gameID, "error", err)
		return
	}

	shared, err := b.Snapshot(gameID, game.CurrentRound)
	if err != nil {
		b.logger.Debug("broadcast skipped", "gameID", gameID, "error", err)
		return
	}

	for _, sessionID := range b.registry.Sessions(gameID) {
		conn, ok := b.registry.Conn(sessionID)
		if !ok {
			continue
		}
		b.send(conn, sessionID, shared)
	}
}

// send personalizes the shared state for one recipient and delivers it.
// Send failures are logged and swallowed.
func (b *Broadcaster) send(conn Conn, sessionID string, shared *domain.GameState) {
	var current *domain.Player
	if p, err := b.store.PlayerBySession(shared.Game.ID, sessionID); err == nil {
		current = p
	}

	msg := domain.NewServerMessage(domain.MsgGameState, shared.WithCurrentPlayer(current))
	if err := conn.Send(msg); err != nil {
		b.logger.Debug("failed to send to client", "sessionID", sessionID, "error", err)
	}
}
