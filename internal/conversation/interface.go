package conversation

import (
	"context"

	"messenger-dialogue-gateway/internal/model"
)

// UseCase drives complete dialogue turns.
type UseCase interface {
	// ProcessMessage runs one turn for the sender: resolve or create the
	// session, run the dialogue engine, and commit the final context.
	// Turns for the same session are serialized; turn N+1 always observes
	// the context committed by turn N.
	ProcessMessage(ctx context.Context, sc model.Scope, input ProcessMessageInput) (ProcessMessageOutput, error)
}
