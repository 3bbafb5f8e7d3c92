package domain

import "errors"

// Domain errors. Every error a command can produce falls into one of four
// recoverable kinds (see ErrorKind); the worst outcome of any failure is a
// single rejected command.
var (
	// Not found
	ErrGameNotFound       = errors.New("game not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrDefinitionNotFound = errors.New("definition not found")

	// Unauthorized
	ErrSpectator = errors.New("spectators cannot perform this action")
	ErrNotAdmin  = errors.New("only the admin can perform this action")

	// Validation
	ErrEmptyWord       = errors.New("word cannot be empty")
	ErrEmptyDefinition = errors.New("definition cannot be empty")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrMissingSession  = errors.New("session id is required")
	ErrMissingGame     = errors.New("game id is required")
	ErrInvalidMessage  = errors.New("invalid message format")
	ErrUnknownCommand  = errors.New("unknown message type")

	// Conflict
	ErrAlreadySubmitted  = errors.New("already submitted a definition this round")
	ErrAlreadyVoted      = errors.New("already voted this round")
	ErrSelfVote          = errors.New("cannot vote for your own definition")
	ErrWrongRound        = errors.New("definition does not belong to this round")
	ErrInvalidTransition = errors.New("invalid phase transition")
)

// ErrorKind is the wire-level classification of a rejected command
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindValidation   ErrorKind = "VALIDATION"
	KindConflict     ErrorKind = "CONFLICT"
	KindInternal     ErrorKind = "INTERNAL"
)

// Kind classifies an error into its recoverable kind. Unknown errors are
// internal: they are reported generically and never crash the connection.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrGameNotFound),
		errors.Is(err, ErrPlayerNotFound),
		errors.Is(err, ErrDefinitionNotFound):
		return KindNotFound
	case errors.Is(err, ErrSpectator),
		errors.Is(err, ErrNotAdmin):
		return KindUnauthorized
	case errors.Is(err, ErrEmptyWord),
		errors.Is(err, ErrEmptyDefinition),
		errors.Is(err, ErrEmptyName),
		errors.Is(err, ErrMissingSession),
		errors.Is(err, ErrMissingGame),
		errors.Is(err, ErrInvalidMessage),
		errors.Is(err, ErrUnknownCommand):
		return KindValidation
	case errors.Is(err, ErrAlreadySubmitted),
		errors.Is(err, ErrAlreadyVoted),
		errors.Is(err, ErrSelfVote),
		errors.Is(err, ErrWrongRound),
		errors.Is(err, ErrInvalidTransition):
		return KindConflict
	default:
		return KindInternal
	}
}
