package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/spf13/cobra"
)

// ProgressReporter returns the server's view of a trip's progress.
type ProgressReporter interface {
	FetchProgressReport(ctx context.Context, tripID string) (*app.ProgressReport, error)
}

// Server is a blocking API server.
type Server interface {
	Run(ctx context.Context) error
}

// App holds the services and collaborators used by CLI commands and the TUI.
// The remote collaborators are nil when the trip API is disabled.
type App struct {
	Itineraries service.ItineraryService
	Catalog     service.CatalogService
	Completions repository.CompletionRepo

	Registrar app.TripRegistrar
	Remote    app.ProgressRemote
	Reports   ProgressReporter
	Shared    app.SharedTripLookup

	// NewServer builds the API server bound to addr.
	NewServer func(addr string) Server

	Logger          *slog.Logger
	Observer        service.UseCaseObserver
	RegisterTimeout time.Duration
	ProgressTimeout time.Duration

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewRootCmd creates the top-level "itinera" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "itinera",
		Short:         "Plan a trip, pick a budget and check off your itinerary",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runPlanTUI(cmd.Context(), app, planPrefill{})
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newPlanCmd(app),
		newDestinationsCmd(app),
		newItineraryCmd(app),
		newProgressCmd(app),
		newTripCmd(app),
		newCatalogCmd(app),
		newServeCmd(app),
	)

	return root
}

// today is the current date at midnight UTC, the form dates' reference.
func (a *App) today() time.Time {
	now := time.Now()
	if a.Now != nil {
		now = a.Now()
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// spin shows a spinner on out while interactive. The returned function
// stops it.
func (a *App) spin(out io.Writer, message string) func() {
	if !a.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(out, message)
}

func (a *App) newFlow() service.PlanningFlow {
	opts := []service.FlowOption{service.WithFlowLogger(a.Logger)}
	if a.RegisterTimeout > 0 {
		opts = append(opts, service.WithRegisterTimeout(a.RegisterTimeout))
	}
	if a.Observer != nil {
		opts = append(opts, service.WithFlowObserver(a.Observer))
	}
	return service.NewPlanningFlow(a.Registrar, opts...)
}

func (a *App) newProgress() service.ProgressService {
	opts := []service.ProgressOption{service.WithProgressLogger(a.Logger)}
	if a.ProgressTimeout > 0 {
		opts = append(opts, service.WithProgressTimeout(a.ProgressTimeout))
	}
	if a.Observer != nil {
		opts = append(opts, service.WithProgressObserver(a.Observer))
	}
	return service.NewProgressService(a.Completions, a.Remote, opts...)
}
