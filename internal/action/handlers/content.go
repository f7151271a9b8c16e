package handlers

import (
	"context"

	"messenger-dialogue-gateway/internal/action"
	"messenger-dialogue-gateway/internal/conversation/repository"
	"messenger-dialogue-gateway/internal/model"
	pkgLog "messenger-dialogue-gateway/pkg/log"
	"messenger-dialogue-gateway/pkg/messenger"
)

// AttachmentSender abstracts structured template delivery for mocking.
type AttachmentSender interface {
	SendAttachment(ctx context.Context, recipientID string, attachment messenger.Attachment) error
}

// contentHandler pushes a fixed template payload to the user as a side
// effect and leaves the context unchanged.
type contentHandler struct {
	name       string
	attachment messenger.Attachment
	store      repository.SessionStore
	sender     AttachmentSender
	l          pkgLog.Logger
}

func (h *contentHandler) Name() string {
	return h.name
}

func (h *contentHandler) Execute(ctx context.Context, inv action.Invocation) (model.Context, error) {
	sess, ok := h.store.Get(inv.SessionID)
	if !ok || sess.ExternalUserID == "" {
		h.l.Errorf(ctx, "%s action: could not find user for session %s", h.name, inv.SessionID)
		return inv.Context, nil
	}

	if err := h.sender.SendAttachment(ctx, sess.ExternalUserID, h.attachment); err != nil {
		h.l.Errorf(ctx, "%s action: failed to push content to %s: %v", h.name, sess.ExternalUserID, err)
	}

	return inv.Context, nil
}

// NewNewsHandler returns the getNews action: a generic template with the
// latest announcements.
func NewNewsHandler(store repository.SessionStore, sender AttachmentSender, l pkgLog.Logger) action.Handler {
	return &contentHandler{
		name:       "getNews",
		attachment: newsAttachment,
		store:      store,
		sender:     sender,
		l:          l,
	}
}

// NewMerchHandler returns the getMerch action: a list template with store
// items.
func NewMerchHandler(store repository.SessionStore, sender AttachmentSender, l pkgLog.Logger) action.Handler {
	return &contentHandler{
		name:       "getMerch",
		attachment: merchAttachment,
		store:      store,
		sender:     sender,
		l:          l,
	}
}

// NewMusicHandler returns the getMusic action: a list template with current
// releases.
func NewMusicHandler(store repository.SessionStore, sender AttachmentSender, l pkgLog.Logger) action.Handler {
	return &contentHandler{
		name:       "getMusic",
		attachment: musicAttachment,
		store:      store,
		sender:     sender,
		l:          l,
	}
}

var newsAttachment = messenger.Attachment{
	Type: "template",
	Payload: &messenger.TemplatePayload{
		TemplateType: "generic",
		Elements: []messenger.Element{
			{
				Title:    "ARTIST NEWS",
				Subtitle: "New album available for a limited time!",
				ItemURL:  "https://example-artist.com/news",
				Buttons: []messenger.Button{
					{Type: "web_url", URL: "https://example-artist.com/news/album-release", Title: "READ MORE"},
				},
			},
			{
				Title:    "ARTIST NEWS",
				Subtitle: "Catch the live late-night TV performance tonight!",
				ItemURL:  "https://example-artist.com/news",
				Buttons: []messenger.Button{
					{Type: "web_url", URL: "https://example-artist.com/news/tv-performance", Title: "READ MORE"},
				},
			},
		},
	},
}

var merchAttachment = messenger.Attachment{
	Type: "template",
	Payload: &messenger.TemplatePayload{
		TemplateType: "list",
		Elements: []messenger.Element{
			{
				Title:    "Tour T-Shirt",
				Subtitle: "Official tour merchandise",
				DefaultAction: &messenger.Button{
					Type: "web_url", URL: "https://store.example-artist.com/tour-tshirt", WebviewHeightRatio: "tall",
				},
				Buttons: []messenger.Button{
					{Type: "web_url", URL: "https://store.example-artist.com/tour-tshirt", Title: "Shop Now", WebviewHeightRatio: "tall"},
				},
			},
			{
				Title:    "Signed CD",
				Subtitle: "Limited signed edition",
				DefaultAction: &messenger.Button{
					Type: "web_url", URL: "https://store.example-artist.com/signed-cd", WebviewHeightRatio: "tall",
				},
				Buttons: []messenger.Button{
					{Type: "web_url", URL: "https://store.example-artist.com/signed-cd", Title: "Shop Now", WebviewHeightRatio: "tall"},
				},
			},
		},
		Buttons: []messenger.Button{
			{Type: "web_url", URL: "https://store.example-artist.com", Title: "View More"},
		},
	},
}

var musicAttachment = messenger.Attachment{
	Type: "template",
	Payload: &messenger.TemplatePayload{
		TemplateType: "list",
		Elements: []messenger.Element{
			{
				Title: "KISS THE SKY",
				DefaultAction: &messenger.Button{
					Type: "web_url", URL: "https://music.example-artist.com/kiss-the-sky", WebviewHeightRatio: "tall",
				},
				Buttons: []messenger.Button{
					{Type: "web_url", URL: "https://music.example-artist.com/kiss-the-sky", Title: "Buy Now", WebviewHeightRatio: "tall"},
				},
			},
			{
				Title: "PLATINUM HITS",
				DefaultAction: &messenger.Button{
					Type: "web_url", URL: "https://music.example-artist.com/platinum-hits", WebviewHeightRatio: "tall",
				},
				Buttons: []messenger.Button{
					{Type: "web_url", URL: "https://music.example-artist.com/platinum-hits", Title: "Buy Now", WebviewHeightRatio: "tall"},
				},
			},
		},
		Buttons: []messenger.Button{
			{Type: "web_url", URL: "https://music.example-artist.com", Title: "View More"},
		},
	},
}
