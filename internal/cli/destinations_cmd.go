package cli

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDestinationsCmd(app *App) *cobra.Command {
	var popular bool

	cmd := &cobra.Command{
		Use:     "destinations",
		Aliases: []string{"dest"},
		Short:   "List destinations with travel plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Itineraries.ListDestinations(cmd.Context(), popular)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDestinations(list.Destinations, list.Fallback))
			return nil
		},
	}

	cmd.Flags().BoolVar(&popular, "popular", false, "Only show popular destinations")

	return cmd
}
