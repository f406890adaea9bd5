package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the local destination catalog",
	}

	cmd.AddCommand(
		newCatalogSeedCmd(app),
		newCatalogImportCmd(app),
	)

	return cmd
}

func newCatalogSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in destinations and travel plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Catalog.Seed(cmd.Context())
			if err != nil {
				return err
			}
			printImportResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newCatalogImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import destinations and travel plans from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Catalog.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printImportResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func printImportResult(out io.Writer, res *app.CatalogImportResult) {
	fmt.Fprintf(out, "%s Imported %d destinations and %d travel plans\n",
		formatter.StyleGreen.Render("✔"), res.Destinations, res.Plans)
	if len(res.Skipped) > 0 {
		fmt.Fprintf(out, "%s %s\n", formatter.Dim("Already present:"), strings.Join(res.Skipped, "; "))
	}
}
