package handlers

import (
	"context"
	"fmt"

	"messenger-dialogue-gateway/internal/action"
	"messenger-dialogue-gateway/internal/model"
	pkgLog "messenger-dialogue-gateway/pkg/log"
	"messenger-dialogue-gateway/pkg/weather"
	"messenger-dialogue-gateway/pkg/wit"
)

// Context keys written by the forecast action.
const (
	ContextKeyLocation = "location"
	ContextKeyForecast = "forecast"
)

// ForecastSource abstracts the weather data source for mocking.
type ForecastSource interface {
	Current(ctx context.Context, location string) (weather.Observation, error)
}

// ForecastHandler enriches context with current conditions for the location
// entity extracted from the utterance.
type ForecastHandler struct {
	source ForecastSource
	l      pkgLog.Logger
}

func NewForecastHandler(source ForecastSource, l pkgLog.Logger) *ForecastHandler {
	return &ForecastHandler{
		source: source,
		l:      l,
	}
}

func (h *ForecastHandler) Name() string {
	return "getForecast"
}

func (h *ForecastHandler) Execute(ctx context.Context, inv action.Invocation) (model.Context, error) {
	next := inv.Context.Clone()

	location, ok := wit.FirstEntityValue(inv.Entities, "location")
	if !ok {
		delete(next, ContextKeyForecast)
		return next, nil
	}

	next[ContextKeyLocation] = location

	obs, err := h.source.Current(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("getForecast: lookup for %q failed: %w", location, err)
	}

	next[ContextKeyForecast] = fmt.Sprintf("%g C", obs.TempC)
	return next, nil
}
