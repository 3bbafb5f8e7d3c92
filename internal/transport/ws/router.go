package ws

import (
	"encoding/json"
	"errors"
	"log/slog"

	"fictionary/internal/app"
	"fictionary/internal/domain"
	"fictionary/internal/store"
)

// Router is the top-level dispatcher for inbound commands: it validates the
// envelope, authorizes by role, applies the command through the store and
// phase machine, and triggers a room-wide broadcast. All mutating commands
// for one game run under that game's lock, so commands from different
// connections to the same game are serialized while different games proceed
// in parallel.
type Router struct {
	store     *store.Store
	machine   *app.Machine
	registry  *app.Registry
	broadcast *app.Broadcaster
	logger    *slog.Logger
}

// NewRouter creates the command router
func NewRouter(st *store.Store, machine *app.Machine, registry *app.Registry, broadcast *app.Broadcaster, logger *slog.Logger) *Router {
	return &Router{
		store:     st,
		machine:   machine,
		registry:  registry,
		broadcast: broadcast,
		logger:    logger,
	}
}

// HandleMessage processes one inbound message. A failure of any kind is
// converted to an error reply on the originating connection; it never takes
// down the connection or affects other viewers.
func (r *Router) HandleMessage(c *Client, data []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic while handling message", "sessionID", c.sessionID, "panic", rec)
			c.sendError(errors.New("internal error"))
		}
	}()

	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(domain.ErrInvalidMessage)
		return
	}

	switch msg.Type {
	case CmdJoin:
		r.handleJoin(c, msg.Payload)
	case CmdSubmitWord:
		r.handleSubmitWord(c, msg.Payload)
	case CmdSubmitDefinition:
		r.handleSubmitDefinition(c, msg.Payload)
	case CmdEndSubmissions:
		r.handleEndSubmissions(c, msg.Payload)
	case CmdSubmitVote:
		r.handleSubmitVote(c, msg.Payload)
	case CmdEndVoting:
		r.handleEndVoting(c, msg.Payload)
	case CmdNewRound:
		r.handleNewRound(c, msg.Payload)
	case CmdCancelRound:
		r.handleCancelRound(c, msg.Payload)
	case CmdAwardBonus:
		r.handleAwardBonus(c, msg.Payload)
	case CmdRemovePlayer:
		r.handleRemovePlayer(c, msg.Payload)
	default:
		c.sendError(domain.ErrUnknownCommand)
	}
}

// handleDisconnect removes a closed connection from the registry. Committed
// mutations are never rolled back; the player record stays in the store for
// rejoin.
func (r *Router) handleDisconnect(c *Client) {
	if c.gameID == "" {
		return
	}
	r.registry.Unregister(c.gameID, c.sessionID)
	r.logger.Debug("websocket disconnected", "gameID", c.gameID, "sessionID", c.sessionID)
}

// handleJoin attaches a connection to a game room. An unknown session gets a
// player created for it; the first player of a game becomes admin. The
// joining connection receives a direct personalized snapshot, then the whole
// room is rebroadcast so every viewer sees the new roster.
func (r *Router) handleJoin(c *Client, raw json.RawMessage) {
	var p JoinPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		c.sendError(domain.ErrInvalidMessage)
		return
	}
	if p.GameID == "" {
		c.sendError(domain.ErrMissingGame)
		return
	}
	if p.SessionID == "" {
		c.sendError(domain.ErrMissingSession)
		return
	}

	unlock := r.store.LockGame(p.GameID)
	defer unlock()

	game, err := r.store.GameByID(p.GameID)
	if err != nil {
		c.sendError(err)
		return
	}

	if _, err := r.store.PlayerBySession(p.GameID, p.SessionID); errors.Is(err, domain.ErrPlayerNotFound) {
		name := p.Name
		if name == "" {
			name = "Anonymous"
		}
		role := domain.RoleFromWire(p.Role, p.Spectator)
		if _, err := r.store.CreatePlayer(p.GameID, name, p.SessionID, role); err != nil {
			c.sendError(err)
			return
		}
	}

	c.sessionID = p.SessionID
	c.gameID = p.GameID
	r.registry.Register(p.GameID, p.SessionID, c)

	round := game.CurrentRound
	if p.Round != nil {
		round = *p.Round
	}
	if err := r.broadcast.SendSnapshot(p.GameID, p.SessionID, round); err != nil {
		c.sendError(err)
		return
	}
	r.broadcast.Broadcast(p.GameID)
}

// withActor runs a mutating command under the game's lock as the resolved
// acting player, then broadcasts the new state to the room
func (r *Router) withActor(c *Client, gameID string, fn func(actor *domain.Player) error) {
	if gameID == "" {
		c.sendError(domain.ErrMissingGame)
		return
	}

	unlock := r.store.LockGame(gameID)
	defer unlock()

	actor, err := r.store.PlayerBySession(gameID, c.sessionID)
	if err != nil {
		c.sendError(err)
		return
	}

	if err := fn(actor); err != nil {
		c.sendError(err)
		return
	}

	r.broadcast.Broadcast(gameID)
}

func (r *Router) handleSubmitWord(c *Client, raw json.RawMessage) {
	var p SubmitWordPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		c.sendError(domain.ErrInvalidMessage)
		return
	}

	r.withActor(c, p.GameID, func(actor *domain.Player) error {
		if actor.IsSpectator() {
			return domain.ErrSpectator
		}
		return r.machine.SubmitWord(p.GameID, p.Word, p.Definition)
	})
}

func (r *Router) handleSubmitDefinition(c *Client, raw json.RawMessage) {
	var p SubmitDefinitionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		c.sendError(domain.ErrInvalidMessage)
		return
	}

	r.withActor(c, p.GameID, func(actor *domain.Player) error {
		if actor.IsSpectator() {
			return domain.ErrSpectator
		}
		_, err := r.machine.SubmitDefinition(p.GameID, actor.ID, p.Round, p.Text)
		return err
	})
}

func (r *Router) handleEndSubmissions(c *Client, raw json.RawMessage) {
	var p RoundPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		c.sendError(domain.ErrInvalidMessage)
		return
	}

	r.withActor(c, p.GameID, func(actor *domain.Player) error {
		if actor.IsSpectator() {
			return domain.ErrSpectator
		}
		return r.machine.EndSubmissions(p.GameID)
	})
}

func (r *Router) handleSubmitVote(c *Client, raw json.RawMessage) {
	var p SubmitVotePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		c.sendError(domain.ErrInvalidMessage)
		return
	}

	r.withActor(c, p.GameID, func(actor *domain.Player) error {
		if actor.IsSpectator() {
			return domain.ErrSpectator
		}
		_, err := r.machine.SubmitVote(p.GameID, actor.ID, p.DefinitionID, p.Round)
		return err
	})
}

func (r *Router) handleEndVoting(c *Client, raw json.RawMessage) {
	var p RoundPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		c.sendError(domain.ErrInvalidMessage)
		return
	}

	r.withActor(c, p.GameID, func(actor *domain.Player) error {
		if actor.IsSpectator() {
			return domain.ErrSpectator
		}
		return r.machine.EndVoting(p.GameID)
	})
}

func (r *Router) handleNewRound(c *Client, raw json.RawMessage) {
	var p GamePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		c.sendError(domain.ErrInvalidMessage)
		return
	}

	r.withActor(c, p.GameID, func(actor *domain.Player) error {
		if actor.IsSpectator() {
			return domain.ErrSpectator
		}
		return r.machine.NewRound(p.GameID)
	})
}

func (r *Router) handleCancelRound(c *Client, raw json.RawMessage) {
	var p GamePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		c.sendError(domain.ErrInvalidMessage)
		return
	}

	r.withActor(c, p.GameID, func(actor *domain.Player) error {
		if !actor.IsAdmin {
			return domain.ErrNotAdmin
		}
		return r.machine.CancelRound(p.GameID)
	})
}

func (r *Router) handleAwardBonus(c *Client, raw json.RawMessage) {
	var p TargetPlayerPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		c.sendError(domain.ErrInvalidMessage)
		return
	}

	r.withActor(c, p.GameID, func(actor *domain.Player) error {
		if !actor.IsAdmin {
			return domain.ErrNotAdmin
		}
		return r.machine.AwardBonus(p.GameID, p.PlayerID)
	})
}

// handleRemovePlayer deletes the target player with their definitions and
// votes, evicts their connection with a final notice, and rebroadcasts to
// the remaining room
func (r *Router) handleRemovePlayer(c *Client, raw json.RawMessage) {
	var p TargetPlayerPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		c.sendError(domain.ErrInvalidMessage)
		return
	}

	r.withActor(c, p.GameID, func(actor *domain.Player) error {
		if !actor.IsAdmin {
			return domain.ErrNotAdmin
		}

		target, err := r.store.PlayerByID(p.PlayerID)
		if err != nil {
			return err
		}
		if target.GameID != p.GameID {
			return domain.ErrPlayerNotFound
		}

		if err := r.store.RemovePlayer(target.ID); err != nil {
			return err
		}

		if conn, ok := r.registry.Evict(p.GameID, target.SessionID); ok {
			_ = conn.Send(domain.NewServerMessage(domain.MsgError, &domain.ErrorPayload{
				Code:    domain.KindUnauthorized,
				Message: "you have been removed from the game",
			}))
			_ = conn.Close()
		}
		return nil
	})
}
