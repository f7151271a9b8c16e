package engine

import (
	"messenger-dialogue-gateway/internal/action"
	pkgLog "messenger-dialogue-gateway/pkg/log"
	"messenger-dialogue-gateway/pkg/wit"
)

// DefaultMaxSteps bounds the number of planned actions per turn so a cyclic
// plan cannot loop forever.
const DefaultMaxSteps = 10

// Engine drives one dialogue turn: it repeatedly asks the NLU backend for
// the next action, executes it through the registry, and folds the result
// back into the turn's context.
type Engine struct {
	nlu      wit.Converser
	registry *action.Registry
	l        pkgLog.Logger
	maxSteps int
}

// New creates a dialogue engine. maxSteps <= 0 selects DefaultMaxSteps.
func New(nlu wit.Converser, registry *action.Registry, l pkgLog.Logger, maxSteps int) *Engine {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Engine{
		nlu:      nlu,
		registry: registry,
		l:        l,
		maxSteps: maxSteps,
	}
}
