package wit

import "context"

// Converser is the NLU planning interface consumed by the dialogue engine.
type Converser interface {
	// Converse asks the backend for the next step of the turn. The first
	// call of a turn carries the user's message; follow-up calls carry an
	// empty message and the context accumulated so far.
	Converse(ctx context.Context, sessionID, message string, state map[string]interface{}) (ConverseResponse, error)
}
