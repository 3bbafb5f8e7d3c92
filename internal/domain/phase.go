package domain

// Phase represents the stage a game's current round is in
type Phase string

const (
	PhaseWordEntry  Phase = "WORD_ENTRY" // Waiting for a player to supply the round's word
	PhaseDefinition Phase = "DEFINITION" // Players writing fake definitions
	PhaseVoting     Phase = "VOTING"     // Everyone votes on the shown definitions
	PhaseResults    Phase = "RESULTS"    // Scores revealed
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo checks if a transition from current phase to target phase is valid.
// Cancelling a round jumps to WORD_ENTRY from any phase and is validated separately.
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseWordEntry:  {PhaseDefinition},
		PhaseDefinition: {PhaseVoting},
		PhaseVoting:     {PhaseResults},
		PhaseResults:    {PhaseWordEntry}, // New round
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}
