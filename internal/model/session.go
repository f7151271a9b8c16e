package model

import "time"

// Context is the evolving key-value state of a conversation. Keys are
// introduced and removed by actions; each completed turn replaces the
// session's context wholesale.
type Context map[string]interface{}

// Clone returns a shallow copy so callers can mutate freely.
func (c Context) Clone() Context {
	if c == nil {
		return Context{}
	}
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Session pairs an external user identity with its dialogue context.
type Session struct {
	ID             string
	ExternalUserID string
	Context        Context
	CreatedAt      time.Time
}
