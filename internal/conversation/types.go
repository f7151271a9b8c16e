package conversation

import "messenger-dialogue-gateway/internal/model"

// ProcessMessageInput is one inbound utterance.
type ProcessMessageInput struct {
	ExternalUserID string
	Text           string
}

// ProcessMessageOutput reports the committed turn result.
type ProcessMessageOutput struct {
	SessionID string
	Context   model.Context
}
