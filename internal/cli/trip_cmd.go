package cli

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTripCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Look up registered trips",
	}

	cmd.AddCommand(newTripSharedCmd(app))

	return cmd
}

func newTripSharedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shared TOKEN",
		Short: "Show the trip a share token points to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Shared == nil {
				return errAPIDisabled
			}
			trip, err := app.Shared.GetSharedTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTrip(trip))
			return nil
		},
	}
}
