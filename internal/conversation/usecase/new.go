package usecase

import (
	"context"
	"sync"

	"messenger-dialogue-gateway/internal/conversation"
	"messenger-dialogue-gateway/internal/conversation/repository"
	"messenger-dialogue-gateway/internal/model"
	pkgLog "messenger-dialogue-gateway/pkg/log"
)

// TurnRunner is the dialogue engine interface consumed by the usecase.
type TurnRunner interface {
	RunTurn(ctx context.Context, sessionID, text string, state model.Context) (model.Context, error)
}

type implUseCase struct {
	l      pkgLog.Logger
	store  repository.SessionStore
	engine TurnRunner

	// locks serializes turns per session id.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

var _ conversation.UseCase = (*implUseCase)(nil)

// New creates the conversation usecase.
func New(l pkgLog.Logger, store repository.SessionStore, engine TurnRunner) conversation.UseCase {
	return &implUseCase{
		l:      l,
		store:  store,
		engine: engine,
		locks:  make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the mutex owned by the given session, creating it on
// first use. Lock entries live as long as their session (process lifetime).
func (uc *implUseCase) sessionLock(sessionID string) *sync.Mutex {
	uc.locksMu.Lock()
	defer uc.locksMu.Unlock()

	mu, ok := uc.locks[sessionID]
	if !ok {
		mu = &sync.Mutex{}
		uc.locks[sessionID] = mu
	}
	return mu
}
