package repository

import "messenger-dialogue-gateway/internal/model"

// SessionStore maps external user identities to dialogue sessions. A single
// live session exists per external user; implementations must be safe for
// concurrent use.
type SessionStore interface {
	// ResolveOrCreate returns the session id for the given external user,
	// creating a session with empty context on first contact.
	ResolveOrCreate(externalUserID string) string

	// Get returns a snapshot of the session, if it exists.
	Get(sessionID string) (model.Session, bool)

	// SetContext replaces the session's context wholesale. It is a no-op
	// if the session no longer exists.
	SetContext(sessionID string, newContext model.Context)
}
