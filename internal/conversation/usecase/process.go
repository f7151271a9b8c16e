package usecase

import (
	"context"
	"fmt"

	"messenger-dialogue-gateway/internal/conversation"
	"messenger-dialogue-gateway/internal/model"
)

// ProcessMessage runs one complete turn. The session's lock is held from
// context read to commit, so two turns for the same session never interleave
// and the later one always observes the earlier one's committed context.
func (uc *implUseCase) ProcessMessage(ctx context.Context, sc model.Scope, input conversation.ProcessMessageInput) (conversation.ProcessMessageOutput, error) {
	if input.ExternalUserID == "" {
		return conversation.ProcessMessageOutput{}, conversation.ErrEmptyUserID
	}

	sessionID := uc.store.ResolveOrCreate(input.ExternalUserID)

	mu := uc.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, ok := uc.store.Get(sessionID)
	if !ok {
		// Session vanished between resolve and lock; recreate rather than fail.
		sessionID = uc.store.ResolveOrCreate(input.ExternalUserID)
		sess, _ = uc.store.Get(sessionID)
	}

	finalContext, err := uc.engine.RunTurn(ctx, sessionID, input.Text, sess.Context)
	if err != nil {
		// Pre-turn context stays committed; nothing partial is written.
		return conversation.ProcessMessageOutput{}, fmt.Errorf("%w: %v", conversation.ErrTurnFailed, err)
	}

	uc.store.SetContext(sessionID, finalContext)

	uc.l.Debugf(ctx, "conversation: turn committed for session %s (user %s)", sessionID, sc.UserID)

	return conversation.ProcessMessageOutput{
		SessionID: sessionID,
		Context:   finalContext,
	}, nil
}
