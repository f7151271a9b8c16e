package messenger

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"messenger-dialogue-gateway/internal/conversation"
	"messenger-dialogue-gateway/internal/model"
	pkgMessenger "messenger-dialogue-gateway/pkg/messenger"
	pkgResponse "messenger-dialogue-gateway/pkg/response"
)

const attachmentReply = "Sorry I can only process text messages for now."

// turnTimeout bounds one background turn (NLU + actions + sends).
const turnTimeout = 2 * time.Minute

// HandleVerify answers the subscription handshake. It echoes the challenge
// iff the verify token matches; no session or dialogue state is touched.
func (h *handler) HandleVerify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")

	if mode == "subscribe" && token == h.cfg.VerifyToken {
		c.String(http.StatusOK, c.Query("hub.challenge"))
		return
	}

	c.Status(http.StatusForbidden)
}

// HandleWebhook processes inbound message events. The signature gate runs
// over the raw body before anything else; an unverified request is rejected
// without creating or mutating any session state. Events are processed in
// background goroutines and the batch is acknowledged immediately, so
// processing failures never feed the platform's redelivery machinery.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "messenger handler: failed to read webhook body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	signature := c.GetHeader("X-Hub-Signature-256")
	if signature == "" {
		signature = c.GetHeader("X-Hub-Signature")
	}
	if err := h.security.ValidateSignature(body, signature); err != nil {
		h.l.Errorf(ctx, "messenger handler: signature verification failed: %v", err)
		pkgResponse.Unauthorized(c)
		return
	}

	var event pkgMessenger.Event
	if err := json.Unmarshal(body, &event); err != nil {
		h.l.Errorf(ctx, "messenger handler: failed to parse webhook payload: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if event.Object == "page" {
		for _, entry := range event.Entry {
			for _, msg := range entry.Messaging {
				h.dispatchEvent(ctx, msg)
			}
		}
	}

	pkgResponse.OK(c, gin.H{"status": "accepted"})
}

// dispatchEvent fans one messaging event out to a background goroutine.
// Snapshots are taken before spawning to avoid races on the gin context.
func (h *handler) dispatchEvent(ctx context.Context, event pkgMessenger.MessagingEvent) {
	if event.Message == nil || event.Message.IsEcho {
		h.l.Debugf(ctx, "messenger handler: skipping non-message or echo event")
		return
	}
	if event.Sender == nil || event.Sender.ID == "" {
		h.l.Warnf(ctx, "messenger handler: event without sender, skipping")
		return
	}

	if mid := event.Message.MID; mid != "" {
		if _, dup := h.seen.Get(mid); dup {
			h.l.Debugf(ctx, "messenger handler: duplicate delivery of %s, skipping", mid)
			return
		}
		h.seen.Add(mid, struct{}{})
	}

	sender := event.Sender.ID
	msg := *event.Message

	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()

		// Detach from the request context, which dies with the ack.
		bgCtx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		defer cancel()

		h.processMessage(bgCtx, sender, msg)
	}()
}

// processMessage handles a single inbound message end to end.
func (h *handler) processMessage(ctx context.Context, sender string, msg pkgMessenger.ReceivedMessage) {
	if len(msg.Attachments) > 0 {
		if err := h.sender.SendText(ctx, sender, attachmentReply); err != nil {
			h.l.Errorf(ctx, "messenger handler: failed to send attachment reply to %s: %v", sender, err)
		}
		return
	}
	if msg.Text == "" {
		return
	}

	sc := model.Scope{UserID: sender}
	output, err := h.uc.ProcessMessage(ctx, sc, conversation.ProcessMessageInput{
		ExternalUserID: sender,
		Text:           msg.Text,
	})
	if err != nil {
		h.l.Errorf(ctx, "messenger handler: turn failed for %s: %v", sender, err)
		return
	}

	h.l.Debugf(ctx, "messenger handler: turn done for session %s, waiting for next user message", output.SessionID)
}

// Wait blocks until all dispatched events have finished processing.
func (h *handler) Wait() {
	h.inflight.Wait()
}
