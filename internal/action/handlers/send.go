package handlers

import (
	"context"

	"messenger-dialogue-gateway/internal/action"
	"messenger-dialogue-gateway/internal/conversation/repository"
	"messenger-dialogue-gateway/internal/model"
	pkgLog "messenger-dialogue-gateway/pkg/log"
)

// TextSender abstracts the outbound message transport for mocking.
type TextSender interface {
	SendText(ctx context.Context, recipientID, text string) error
}

// SendHandler is the built-in reply-delivery action. Delivery failures are
// logged and recovered; a turn never aborts merely because a send failed.
type SendHandler struct {
	store  repository.SessionStore
	sender TextSender
	l      pkgLog.Logger
}

func NewSendHandler(store repository.SessionStore, sender TextSender, l pkgLog.Logger) *SendHandler {
	return &SendHandler{
		store:  store,
		sender: sender,
		l:      l,
	}
}

func (h *SendHandler) Name() string {
	return action.SendActionName
}

func (h *SendHandler) Execute(ctx context.Context, inv action.Invocation) (model.Context, error) {
	sess, ok := h.store.Get(inv.SessionID)
	if !ok || sess.ExternalUserID == "" {
		h.l.Errorf(ctx, "send action: could not find user for session %s", inv.SessionID)
		return nil, nil
	}

	if err := h.sender.SendText(ctx, sess.ExternalUserID, inv.Message); err != nil {
		h.l.Errorf(ctx, "send action: failed to forward reply to %s: %v", sess.ExternalUserID, err)
	}

	return nil, nil
}
