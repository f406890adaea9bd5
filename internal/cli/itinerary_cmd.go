package cli

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newItineraryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "itinerary",
		Short: "Show itineraries",
	}

	cmd.AddCommand(newItineraryShowCmd(app))

	return cmd
}

func newItineraryShowCmd(app *App) *cobra.Command {
	var budget tierFlag
	var tripID string

	cmd := &cobra.Command{
		Use:   "show DESTINATION",
		Short: "Show a destination's plan with completion marks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			plan, err := app.Itineraries.LoadPlan(ctx, args[0], budget.tier)
			if err != nil {
				return err
			}

			progress := app.newProgress()
			defer progress.Close()
			state, err := progress.Initialize(ctx, tripID)
			if err != nil {
				return err
			}

			fmt.Fprint(out, formatter.FormatItinerary(args[0], budget.tier, plan, state))
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.SyncIndicator(progress.SyncStatus()))
			return nil
		},
	}

	registerTierFlag(cmd, &budget, "Budget tier: backpacker, travelEnthusiast or luxury")
	cmd.Flags().StringVar(&tripID, "trip", "", "Trip ID whose progress to show (default: local progress)")
	_ = cmd.MarkFlagRequired("budget")

	return cmd
}
