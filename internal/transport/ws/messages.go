package ws

import "encoding/json"

// CommandType represents the type of a client-to-server command
type CommandType string

// Client → Server command types
const (
	CmdJoin             CommandType = "join"
	CmdSubmitWord       CommandType = "submitWord"
	CmdSubmitDefinition CommandType = "submitDefinition"
	CmdEndSubmissions   CommandType = "endSubmissions"
	CmdSubmitVote       CommandType = "submitVote"
	CmdEndVoting        CommandType = "endVoting"
	CmdNewRound         CommandType = "newRound"
	CmdCancelRound      CommandType = "cancelRound"
	CmdAwardBonus       CommandType = "awardBonus"
	CmdRemovePlayer     CommandType = "removePlayer"
)

// ClientMessage is the envelope for every inbound command
type ClientMessage struct {
	Type    CommandType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// JoinPayload is the payload for the join command. Spectator is the legacy
// boolean flag older clients send instead of the role field; it is collapsed
// into the role enum on parse and never stored. Round, when present, selects
// which round the direct join snapshot covers.
type JoinPayload struct {
	GameID    string `json:"gameId"`
	SessionID string `json:"sessionId"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	Spectator bool   `json:"spectator,omitempty"`
	Round     *int   `json:"round,omitempty"`
}

// SubmitWordPayload is the payload for submitWord. Definition, when present,
// is the word's real definition and becomes the round's single correct entry.
type SubmitWordPayload struct {
	GameID     string `json:"gameId"`
	Word       string `json:"word"`
	Definition string `json:"definition,omitempty"`
}

// SubmitDefinitionPayload is the payload for submitDefinition
type SubmitDefinitionPayload struct {
	GameID string `json:"gameId"`
	Text   string `json:"text"`
	Round  int    `json:"round"`
}

// RoundPayload is the payload for endSubmissions and endVoting
type RoundPayload struct {
	GameID string `json:"gameId"`
	Round  int    `json:"round"`
}

// SubmitVotePayload is the payload for submitVote
type SubmitVotePayload struct {
	GameID       string `json:"gameId"`
	DefinitionID string `json:"definitionId"`
	Round        int    `json:"round"`
}

// GamePayload is the payload for newRound and cancelRound
type GamePayload struct {
	GameID string `json:"gameId"`
}

// TargetPlayerPayload is the payload for awardBonus and removePlayer
type TargetPlayerPayload struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}
