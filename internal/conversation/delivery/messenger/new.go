package messenger

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"messenger-dialogue-gateway/internal/conversation"
	"messenger-dialogue-gateway/internal/webhook"
	pkgLog "messenger-dialogue-gateway/pkg/log"
)

// Handler is the interface for the Messenger delivery handler.
type Handler interface {
	HandleVerify(c *gin.Context)
	HandleWebhook(c *gin.Context)
}

// TextSender delivers the canned reply for unsupported attachments.
type TextSender interface {
	SendText(ctx context.Context, recipientID, text string) error
}

// Config holds the delivery handler settings.
type Config struct {
	// VerifyToken is the pre-shared subscription handshake token.
	VerifyToken string

	// Security configures inbound signature verification.
	Security webhook.SecurityConfig
}

type handler struct {
	l        pkgLog.Logger
	uc       conversation.UseCase
	sender   TextSender
	security *webhook.SecurityValidator
	cfg      Config

	// seen dedupes redelivered message ids across webhook retries.
	seen *expirable.LRU[string, struct{}]

	// inflight tracks background event processing for tests and shutdown.
	inflight sync.WaitGroup
}

// New creates a new Messenger delivery handler.
func New(l pkgLog.Logger, uc conversation.UseCase, sender TextSender, cfg Config) Handler {
	return &handler{
		l:        l,
		uc:       uc,
		sender:   sender,
		security: webhook.NewSecurityValidator(cfg.Security),
		cfg:      cfg,
		seen:     expirable.NewLRU[string, struct{}](1024, nil, 10*time.Minute),
	}
}
