package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"messenger-dialogue-gateway/internal/conversation"
	"messenger-dialogue-gateway/internal/conversation/repository/memory"
	"messenger-dialogue-gateway/internal/model"
)

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

// fnEngine adapts a function to the TurnRunner interface.
type fnEngine struct {
	fn func(ctx context.Context, sessionID, text string, state model.Context) (model.Context, error)
}

func (e *fnEngine) RunTurn(ctx context.Context, sessionID, text string, state model.Context) (model.Context, error) {
	return e.fn(ctx, sessionID, text, state)
}

func TestProcessMessage_SequentialTurnsThreadContext(t *testing.T) {
	store := memory.New()

	engine := &fnEngine{fn: func(ctx context.Context, sessionID, text string, state model.Context) (model.Context, error) {
		next := state.Clone()
		switch text {
		case "turn-1":
			next["k"] = 1
		case "turn-2":
			// Turn 2 must observe turn 1's committed context.
			if state["k"] != 1 {
				t.Errorf("turn 2 expected k=1 in input context, got %v", state["k"])
			}
			next["k"] = 2
		}
		return next, nil
	}}

	uc := New(&mockLogger{}, store, engine)
	sc := model.Scope{UserID: "user-1"}

	out1, err := uc.ProcessMessage(context.Background(), sc, conversation.ProcessMessageInput{
		ExternalUserID: "user-1", Text: "turn-1",
	})
	if err != nil {
		t.Fatalf("turn 1 failed: %v", err)
	}

	out2, err := uc.ProcessMessage(context.Background(), sc, conversation.ProcessMessageInput{
		ExternalUserID: "user-1", Text: "turn-2",
	})
	if err != nil {
		t.Fatalf("turn 2 failed: %v", err)
	}

	if out1.SessionID != out2.SessionID {
		t.Fatalf("expected same session across turns, got %q and %q", out1.SessionID, out2.SessionID)
	}
	if out2.Context["k"] != 2 {
		t.Fatalf("expected k=2 after turn 2, got %v", out2.Context["k"])
	}

	sess, _ := store.Get(out2.SessionID)
	if sess.Context["k"] != 2 {
		t.Fatalf("expected committed context k=2, got %v", sess.Context["k"])
	}
}

func TestProcessMessage_ConcurrentSameSessionTurnsSerialized(t *testing.T) {
	store := memory.New()

	// The engine sleeps mid-turn to widen the race window; with per-session
	// serialization each turn still observes the previous increment.
	engine := &fnEngine{fn: func(ctx context.Context, sessionID, text string, state model.Context) (model.Context, error) {
		count, _ := state["count"].(int)
		time.Sleep(5 * time.Millisecond)
		next := state.Clone()
		next["count"] = count + 1
		return next, nil
	}}

	uc := New(&mockLogger{}, store, engine)
	sc := model.Scope{UserID: "user-1"}

	const turns = 10
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ProcessMessage(context.Background(), sc, conversation.ProcessMessageInput{
				ExternalUserID: "user-1", Text: "count",
			})
			if err != nil {
				t.Errorf("turn failed: %v", err)
			}
		}()
	}
	wg.Wait()

	sessionID := store.ResolveOrCreate("user-1")
	sess, _ := store.Get(sessionID)
	if sess.Context["count"] != turns {
		t.Fatalf("lost updates: expected count=%d, got %v", turns, sess.Context["count"])
	}
}

func TestProcessMessage_DistinctUsersGetDistinctSessions(t *testing.T) {
	store := memory.New()
	engine := &fnEngine{fn: func(ctx context.Context, sessionID, text string, state model.Context) (model.Context, error) {
		return state, nil
	}}
	uc := New(&mockLogger{}, store, engine)

	var wg sync.WaitGroup
	results := make([]conversation.ProcessMessageOutput, 2)
	for i, user := range []string{"user-a", "user-b"} {
		wg.Add(1)
		go func(i int, user string) {
			defer wg.Done()
			out, err := uc.ProcessMessage(context.Background(), model.Scope{UserID: user}, conversation.ProcessMessageInput{
				ExternalUserID: user, Text: "hi",
			})
			if err != nil {
				t.Errorf("turn failed: %v", err)
			}
			results[i] = out
		}(i, user)
	}
	wg.Wait()

	if results[0].SessionID == results[1].SessionID {
		t.Fatal("distinct users must not share a session")
	}
	sessA, _ := store.Get(results[0].SessionID)
	sessB, _ := store.Get(results[1].SessionID)
	if sessA.ExternalUserID != "user-a" || sessB.ExternalUserID != "user-b" {
		t.Fatalf("cross-assigned sessions: %q / %q", sessA.ExternalUserID, sessB.ExternalUserID)
	}
}

func TestProcessMessage_EngineFailurePreservesContext(t *testing.T) {
	store := memory.New()

	calls := 0
	engine := &fnEngine{fn: func(ctx context.Context, sessionID, text string, state model.Context) (model.Context, error) {
		calls++
		if calls == 1 {
			return model.Context{"k": 1}, nil
		}
		return nil, errors.New("wit unavailable")
	}}

	uc := New(&mockLogger{}, store, engine)
	sc := model.Scope{UserID: "user-1"}

	if _, err := uc.ProcessMessage(context.Background(), sc, conversation.ProcessMessageInput{
		ExternalUserID: "user-1", Text: "ok",
	}); err != nil {
		t.Fatalf("turn 1 failed: %v", err)
	}

	_, err := uc.ProcessMessage(context.Background(), sc, conversation.ProcessMessageInput{
		ExternalUserID: "user-1", Text: "boom",
	})
	if !errors.Is(err, conversation.ErrTurnFailed) {
		t.Fatalf("expected ErrTurnFailed, got %v", err)
	}

	sessionID := store.ResolveOrCreate("user-1")
	sess, _ := store.Get(sessionID)
	if sess.Context["k"] != 1 {
		t.Fatalf("failed turn must not touch committed context, got %v", sess.Context)
	}
}

func TestProcessMessage_EmptyUserRejected(t *testing.T) {
	uc := New(&mockLogger{}, memory.New(), &fnEngine{fn: func(ctx context.Context, sessionID, text string, state model.Context) (model.Context, error) {
		return state, nil
	}})

	_, err := uc.ProcessMessage(context.Background(), model.Scope{}, conversation.ProcessMessageInput{Text: "hi"})
	if !errors.Is(err, conversation.ErrEmptyUserID) {
		t.Fatalf("expected ErrEmptyUserID, got %v", err)
	}
}
