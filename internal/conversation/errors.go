package conversation

import "errors"

var (
	// ErrEmptyUserID is returned when an event carries no sender identity.
	ErrEmptyUserID = errors.New("conversation: external user id is required")

	// ErrTurnFailed wraps an NLU planning failure; the session context is
	// left at its pre-turn value.
	ErrTurnFailed = errors.New("conversation: turn failed")
)
