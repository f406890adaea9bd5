package cli

import (
	"context"

	"github.com/alexanderramin/itinera/internal/service"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App
	Ctx context.Context

	Flow service.PlanningFlow
	// Progress is the session of the newest itinerary view; nil before one
	// opens.
	Progress service.ProgressService

	// Destination names offered as input suggestions.
	Suggestions []string

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(ctx context.Context, app *App) *SharedState {
	return &SharedState{
		App:  app,
		Ctx:  ctx,
		Flow: app.newFlow(),
	}
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
