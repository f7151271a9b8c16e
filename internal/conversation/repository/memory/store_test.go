package memory

import (
	"fmt"
	"sync"
	"testing"

	"messenger-dialogue-gateway/internal/model"
)

func TestResolveOrCreate_Idempotent(t *testing.T) {
	store := New()

	first := store.ResolveOrCreate("user-1")
	second := store.ResolveOrCreate("user-1")

	if first != second {
		t.Fatalf("expected same session id, got %q and %q", first, second)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", store.Len())
	}
}

func TestResolveOrCreate_DistinctUsers(t *testing.T) {
	store := New()

	a := store.ResolveOrCreate("user-a")
	b := store.ResolveOrCreate("user-b")

	if a == b {
		t.Fatal("expected distinct sessions for distinct users")
	}

	sessA, _ := store.Get(a)
	sessB, _ := store.Get(b)
	if sessA.ExternalUserID != "user-a" || sessB.ExternalUserID != "user-b" {
		t.Fatalf("cross-assigned sessions: %q / %q", sessA.ExternalUserID, sessB.ExternalUserID)
	}
}

func TestResolveOrCreate_ConcurrentUsersNoCrossAssignment(t *testing.T) {
	store := New()

	const users = 50
	var wg sync.WaitGroup
	ids := make([]string, users)

	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = store.ResolveOrCreate(fmt.Sprintf("user-%d", i))
		}(i)
	}
	wg.Wait()

	for i := 0; i < users; i++ {
		sess, ok := store.Get(ids[i])
		if !ok {
			t.Fatalf("session %d missing", i)
		}
		if want := fmt.Sprintf("user-%d", i); sess.ExternalUserID != want {
			t.Fatalf("session %d assigned to %q, want %q", i, sess.ExternalUserID, want)
		}
	}
	if store.Len() != users {
		t.Fatalf("expected %d sessions, got %d", users, store.Len())
	}
}

func TestGet_MissingSession(t *testing.T) {
	store := New()

	if _, ok := store.Get("nope"); ok {
		t.Fatal("expected absent session")
	}
}

func TestGet_ReturnsSnapshot(t *testing.T) {
	store := New()
	id := store.ResolveOrCreate("user-1")
	store.SetContext(id, model.Context{"k": 1})

	snap, _ := store.Get(id)
	snap.Context["k"] = 2

	again, _ := store.Get(id)
	if again.Context["k"] != 1 {
		t.Fatalf("snapshot mutation leaked into store: %v", again.Context["k"])
	}
}

func TestSetContext_ReplacesWholesale(t *testing.T) {
	store := New()
	id := store.ResolveOrCreate("user-1")

	store.SetContext(id, model.Context{"a": 1, "b": 2})
	store.SetContext(id, model.Context{"c": 3})

	sess, _ := store.Get(id)
	if _, ok := sess.Context["a"]; ok {
		t.Fatal("expected old keys dropped on wholesale replace")
	}
	if sess.Context["c"] != 3 {
		t.Fatalf("expected c=3, got %v", sess.Context["c"])
	}
}

func TestSetContext_VanishedSessionIsNoOp(t *testing.T) {
	store := New()

	// Must not panic or create state.
	store.SetContext("gone", model.Context{"k": 1})

	if store.Len() != 0 {
		t.Fatalf("expected no sessions, got %d", store.Len())
	}
}
