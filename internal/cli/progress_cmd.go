package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/spf13/cobra"
)

// errAPIDisabled is returned by commands that need the trip API.
var errAPIDisabled = errors.New("the trip API is disabled (set api.enabled in config.yaml or ITINERA_API_ENABLED)")

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Check off activities and inspect progress",
	}

	cmd.AddCommand(
		newProgressToggleCmd(app),
		newProgressShowCmd(app),
		newProgressScopesCmd(app),
	)

	return cmd
}

func newProgressToggleCmd(app *App) *cobra.Command {
	var budget tierFlag
	var tripID string

	cmd := &cobra.Command{
		Use:   "toggle DESTINATION KEY...",
		Short: "Flip the done flag of one or more activities",
		Long: `Flips activities addressed by <day>-<activity> keys, both zero-based.
The keys are shown next to each activity by "itinera itinerary show".`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			plan, err := app.Itineraries.LoadPlan(ctx, args[0], budget.tier)
			if err != nil {
				return err
			}

			keys := make([]domain.ActivityKey, 0, len(args)-1)
			for _, raw := range args[1:] {
				k, err := domain.ParseActivityKey(raw)
				if err != nil {
					return err
				}
				if !plan.Contains(k) {
					return fmt.Errorf("no activity at %s in the %s plan for %s", k, budget.tier.Label(), args[0])
				}
				keys = append(keys, k)
			}

			progress := app.newProgress()
			defer progress.Close()
			state, err := progress.Initialize(ctx, tripID)
			if err != nil {
				return err
			}

			for _, k := range keys {
				state, err = progress.Toggle(ctx, k)
				if err != nil {
					return err
				}
				act, _ := plan.ActivityAt(k)
				fmt.Fprintln(out, formatter.FormatActivity(k, act, state.Done(k)))
			}

			if err := flushProgress(ctx, app, progress); err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s  %s\n", formatter.RenderStats(domain.ComputeStats(plan, state), 20), formatter.SyncIndicator(progress.SyncStatus()))
			return nil
		},
	}

	registerTierFlag(cmd, &budget, "Budget tier: backpacker, travelEnthusiast or luxury")
	cmd.Flags().StringVar(&tripID, "trip", "", "Trip ID to sync progress to (default: local only)")
	_ = cmd.MarkFlagRequired("budget")

	return cmd
}

// flushProgress waits for the pending remote write so the process does not
// exit before it lands.
func flushProgress(ctx context.Context, app *App, progress service.ProgressService) error {
	timeout := app.ProgressTimeout
	if timeout <= 0 {
		timeout = service.DefaultProgressTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout+time.Second)
	defer cancel()
	return progress.Flush(ctx)
}

func newProgressShowCmd(app *App) *cobra.Command {
	var tripID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a trip's progress as recorded by the trip service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Reports == nil {
				return errAPIDisabled
			}
			report, err := app.Reports.FetchProgressReport(cmd.Context(), tripID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProgressReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&tripID, "trip", "", "Trip ID")
	_ = cmd.MarkFlagRequired("trip")

	return cmd
}

func newProgressScopesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List locally stored progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			scopes, err := app.Completions.ListScopes(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(scopes) == 0 {
				fmt.Fprintln(out, formatter.Dim("No progress recorded yet."))
				return nil
			}

			rows := make([][]string, 0, len(scopes))
			for _, s := range scopes {
				scope := s.ScopeKey
				if scope == domain.LocalScope {
					scope = "local (no trip)"
				}
				rows = append(rows, []string{scope, strconv.Itoa(s.DoneCount), s.UpdatedAt})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"SCOPE", "DONE", "UPDATED"}, rows))
			return nil
		},
	}
}
