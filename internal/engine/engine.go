package engine

import (
	"context"
	"fmt"

	"messenger-dialogue-gateway/internal/action"
	"messenger-dialogue-gateway/internal/model"
	"messenger-dialogue-gateway/pkg/wit"
)

// RunTurn processes a single utterance against the session's current
// context and returns the final context for the caller to commit.
//
// A backend planning failure aborts the turn with an error; the caller must
// then leave the session's context at its pre-turn value. A failure inside a
// single action is logged, its context update dropped, and the plan
// continues.
func (e *Engine) RunTurn(ctx context.Context, sessionID, text string, state model.Context) (model.Context, error) {
	current := state.Clone()

	// The first converse call carries the utterance; follow-ups carry none.
	message := text

	for step := 0; step < e.maxSteps; step++ {
		resp, err := e.nlu.Converse(ctx, sessionID, message, current)
		if err != nil {
			return nil, fmt.Errorf("engine: planning step %d failed: %w", step+1, err)
		}
		message = ""

		switch resp.Type {
		case wit.StepTypeStop:
			return current, nil

		case wit.StepTypeMsg:
			current = e.execute(ctx, action.Invocation{
				SessionID: sessionID,
				Context:   current,
				Entities:  resp.Entities,
				Message:   resp.Msg,
			}, action.SendActionName)

		case wit.StepTypeAction:
			if resp.Action == "" {
				e.l.Warnf(ctx, "engine: backend returned action step without a name, stopping turn")
				return current, nil
			}
			current = e.execute(ctx, action.Invocation{
				SessionID: sessionID,
				Context:   current,
				Entities:  resp.Entities,
			}, resp.Action)

		default:
			e.l.Warnf(ctx, "engine: unknown step type %q, stopping turn", resp.Type)
			return current, nil
		}
	}

	e.l.Warnf(ctx, "engine: session %s exceeded max steps (%d), returning context as of last action", sessionID, e.maxSteps)
	return current, nil
}

// execute dispatches one action and merges its result. The handler's return
// replaces the context entirely when present; nil means no change. Handler
// failures never abort the turn.
func (e *Engine) execute(ctx context.Context, inv action.Invocation, name string) model.Context {
	handler, ok := e.registry.Get(name)
	if !ok {
		e.l.Errorf(ctx, "engine: action %q not registered, skipping", name)
		return inv.Context
	}

	next, err := handler.Execute(ctx, inv)
	if err != nil {
		e.l.Errorf(ctx, "engine: action %q failed: %v", name, err)
		return inv.Context
	}
	if next == nil {
		return inv.Context
	}
	return next
}
