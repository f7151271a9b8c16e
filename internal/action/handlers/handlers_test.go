package handlers

import (
	"context"
	"errors"
	"testing"

	"messenger-dialogue-gateway/internal/action"
	"messenger-dialogue-gateway/internal/model"
	"messenger-dialogue-gateway/pkg/messenger"
	"messenger-dialogue-gateway/pkg/weather"
	"messenger-dialogue-gateway/pkg/wit"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

type mockStore struct {
	sessions map[string]model.Session
}

func (m *mockStore) ResolveOrCreate(externalUserID string) string { return "" }
func (m *mockStore) Get(sessionID string) (model.Session, bool) {
	sess, ok := m.sessions[sessionID]
	return sess, ok
}
func (m *mockStore) SetContext(sessionID string, newContext model.Context) {}

type mockSender struct {
	texts       []string
	recipients  []string
	attachments []messenger.Attachment
	err         error
}

func (m *mockSender) SendText(ctx context.Context, recipientID, text string) error {
	m.recipients = append(m.recipients, recipientID)
	m.texts = append(m.texts, text)
	return m.err
}

func (m *mockSender) SendAttachment(ctx context.Context, recipientID string, attachment messenger.Attachment) error {
	m.recipients = append(m.recipients, recipientID)
	m.attachments = append(m.attachments, attachment)
	return m.err
}

type mockForecastSource struct {
	obs      weather.Observation
	err      error
	requests []string
}

func (m *mockForecastSource) Current(ctx context.Context, location string) (weather.Observation, error) {
	m.requests = append(m.requests, location)
	return m.obs, m.err
}

func storeWith(sessionID, userID string) *mockStore {
	return &mockStore{sessions: map[string]model.Session{
		sessionID: {ID: sessionID, ExternalUserID: userID, Context: model.Context{}},
	}}
}

// ── Send ───────────────────────────────────────────────────────────────────

func TestSendHandler_DeliversReply(t *testing.T) {
	sender := &mockSender{}
	h := NewSendHandler(storeWith("s1", "user-1"), sender, &mockLogger{})

	next, err := h.Execute(context.Background(), action.Invocation{
		SessionID: "s1",
		Message:   "hello!",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != nil {
		t.Fatal("send must signal no context change")
	}
	if len(sender.texts) != 1 || sender.texts[0] != "hello!" || sender.recipients[0] != "user-1" {
		t.Fatalf("unexpected delivery: %+v", sender)
	}
}

func TestSendHandler_UnresolvedSessionCompletesWithoutError(t *testing.T) {
	sender := &mockSender{}
	h := NewSendHandler(&mockStore{sessions: map[string]model.Session{}}, sender, &mockLogger{})

	if _, err := h.Execute(context.Background(), action.Invocation{SessionID: "gone", Message: "x"}); err != nil {
		t.Fatalf("unresolved recipient must not error: %v", err)
	}
	if len(sender.texts) != 0 {
		t.Fatal("expected no delivery attempt")
	}
}

func TestSendHandler_DeliveryFailureRecovered(t *testing.T) {
	sender := &mockSender{err: errors.New("network down")}
	h := NewSendHandler(storeWith("s1", "user-1"), sender, &mockLogger{})

	if _, err := h.Execute(context.Background(), action.Invocation{SessionID: "s1", Message: "x"}); err != nil {
		t.Fatalf("delivery failure must be swallowed: %v", err)
	}
}

// ── Forecast ───────────────────────────────────────────────────────────────

func TestForecastHandler_EnrichesContext(t *testing.T) {
	source := &mockForecastSource{obs: weather.Observation{TempC: 21.5}}
	h := NewForecastHandler(source, &mockLogger{})

	next, err := h.Execute(context.Background(), action.Invocation{
		SessionID: "s1",
		Context:   model.Context{},
		Entities:  wit.Entities{"location": {{Value: "Berlin"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next[ContextKeyLocation] != "Berlin" {
		t.Fatalf("expected location in context, got %v", next)
	}
	if next[ContextKeyForecast] != "21.5 C" {
		t.Fatalf("expected forecast in context, got %v", next[ContextKeyForecast])
	}
	if len(source.requests) != 1 || source.requests[0] != "Berlin" {
		t.Fatalf("unexpected source requests: %v", source.requests)
	}
}

func TestForecastHandler_MissingLocationClearsForecast(t *testing.T) {
	source := &mockForecastSource{}
	h := NewForecastHandler(source, &mockLogger{})

	next, err := h.Execute(context.Background(), action.Invocation{
		SessionID: "s1",
		Context:   model.Context{ContextKeyForecast: "stale"},
		Entities:  wit.Entities{},
	})
	if err != nil {
		t.Fatalf("missing entity is not an error: %v", err)
	}
	if _, ok := next[ContextKeyForecast]; ok {
		t.Fatal("expected stale forecast cleared")
	}
	if len(source.requests) != 0 {
		t.Fatal("expected no lookup without a location")
	}
}

func TestForecastHandler_LookupFailure(t *testing.T) {
	source := &mockForecastSource{err: errors.New("upstream 500")}
	h := NewForecastHandler(source, &mockLogger{})

	next, err := h.Execute(context.Background(), action.Invocation{
		SessionID: "s1",
		Context:   model.Context{},
		Entities:  wit.Entities{"location": {{Value: "Berlin"}}},
	})
	if err == nil {
		t.Fatal("expected lookup failure to surface so the engine drops the update")
	}
	if next != nil {
		t.Fatal("failed action must not return a context")
	}
}

func TestForecastHandler_NestedEntityValue(t *testing.T) {
	source := &mockForecastSource{obs: weather.Observation{TempC: 3}}
	h := NewForecastHandler(source, &mockLogger{})

	next, err := h.Execute(context.Background(), action.Invocation{
		SessionID: "s1",
		Context:   model.Context{},
		Entities: wit.Entities{"location": {{
			Value: map[string]interface{}{"value": "Oslo"},
		}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next[ContextKeyLocation] != "Oslo" {
		t.Fatalf("expected nested value unwrapped, got %v", next[ContextKeyLocation])
	}
}

// ── Content pushes ─────────────────────────────────────────────────────────

func TestContentHandlers_PushTemplatesAndKeepContext(t *testing.T) {
	store := storeWith("s1", "user-1")
	sender := &mockSender{}

	for _, h := range []action.Handler{
		NewNewsHandler(store, sender, &mockLogger{}),
		NewMerchHandler(store, sender, &mockLogger{}),
		NewMusicHandler(store, sender, &mockLogger{}),
	} {
		in := model.Context{"k": 1}
		next, err := h.Execute(context.Background(), action.Invocation{SessionID: "s1", Context: in})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", h.Name(), err)
		}
		if next["k"] != 1 {
			t.Fatalf("%s: expected context returned unchanged, got %v", h.Name(), next)
		}
	}

	if len(sender.attachments) != 3 {
		t.Fatalf("expected 3 template pushes, got %d", len(sender.attachments))
	}
	if sender.attachments[0].Payload.TemplateType != "generic" {
		t.Fatalf("getNews must push a generic template, got %q", sender.attachments[0].Payload.TemplateType)
	}
	if sender.attachments[1].Payload.TemplateType != "list" {
		t.Fatalf("getMerch must push a list template, got %q", sender.attachments[1].Payload.TemplateType)
	}
}

func TestContentHandler_UnresolvedSessionKeepsContext(t *testing.T) {
	sender := &mockSender{}
	h := NewNewsHandler(&mockStore{sessions: map[string]model.Session{}}, sender, &mockLogger{})

	in := model.Context{"k": 1}
	next, err := h.Execute(context.Background(), action.Invocation{SessionID: "gone", Context: in})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next["k"] != 1 {
		t.Fatalf("expected context passthrough, got %v", next)
	}
	if len(sender.attachments) != 0 {
		t.Fatal("expected no push for unresolved session")
	}
}
