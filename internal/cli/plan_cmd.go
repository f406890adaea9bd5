package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// tierFlag is a pflag.Value accepting the budget tier spellings.
type tierFlag struct {
	tier domain.BudgetTier
}

var _ pflag.Value = (*tierFlag)(nil)

func (f *tierFlag) String() string { return string(f.tier) }
func (f *tierFlag) Type() string   { return "tier" }

func (f *tierFlag) Set(s string) error {
	t, err := domain.ParseBudgetTier(s)
	if err != nil {
		return err
	}
	f.tier = t
	return nil
}

func registerTierFlag(cmd *cobra.Command, f *tierFlag, usage string) {
	cmd.Flags().Var(f, "budget", usage)
	_ = cmd.RegisterFlagCompletionFunc("budget", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(domain.BudgetTiers))
		for _, t := range domain.BudgetTiers {
			names = append(names, string(t)+"\t"+t.Tagline())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// planPrefill carries flag values into the destination form.
type planPrefill struct {
	destination string
	from        string
	to          string
	travelers   int
}

func (p planPrefill) fields() destinationFields {
	f := destinationFields{Destination: p.destination, From: p.from, To: p.to}
	if p.travelers > 0 {
		f.Travelers = strconv.Itoa(p.travelers)
	}
	return f
}

func newPlanCmd(app *App) *cobra.Command {
	var prefill planPrefill
	var budget tierFlag
	var noTUI bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a trip: destination, budget, itinerary",
		Long: `Walks through the three planning screens. With --budget (or when stdin
is not a terminal) the flow runs headless from flags and prints the itinerary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if budget.tier == "" && !noTUI && app.interactive() {
				return runPlanTUI(cmd.Context(), app, prefill)
			}
			if budget.tier == "" {
				return fmt.Errorf("--budget is required when running without the TUI")
			}
			return runPlanHeadless(cmd.Context(), app, cmd.OutOrStdout(), prefill.fields(), budget.tier)
		},
	}

	cmd.Flags().StringVar(&prefill.destination, "destination", "", "Destination, e.g. \"Paris, France\"")
	cmd.Flags().StringVar(&prefill.from, "from", "", "Arrival date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&prefill.to, "to", "", "Departure date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&prefill.travelers, "travelers", 1, "Number of travelers")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Run without the interactive screens")
	registerTierFlag(cmd, &budget, "Budget tier: backpacker, travelEnthusiast or luxury")

	return cmd
}

// runPlanTUI starts the interactive planning flow.
func runPlanTUI(ctx context.Context, app *App, prefill planPrefill) error {
	m := newAppModel(ctx, app, prefill)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// runPlanHeadless drives the same flow as the TUI from flag values and
// prints the resulting itinerary.
func runPlanHeadless(ctx context.Context, app *App, out io.Writer, fields destinationFields, tier domain.BudgetTier) error {
	flow := app.newFlow()
	if _, err := applyDestination(flow, fields, app.today()); err != nil {
		return err
	}

	stop := app.spin(out, "Saving your trip…")
	stage, err := flow.SelectBudget(ctx, tier)
	stop()
	if err != nil {
		return err
	}

	plan, err := app.Itineraries.LoadPlan(ctx, stage.Params.Destination, stage.Tier)
	if err != nil {
		return err
	}

	progress := app.newProgress()
	defer progress.Close()
	state, err := progress.Initialize(ctx, stage.TripID)
	if err != nil {
		return err
	}

	fmt.Fprint(out, formatter.FormatItinerary(stage.Params.Destination, stage.Tier, plan, state))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s  %s\n", formatter.Dim("Dates:"), formatter.TripDates(stage.Params.DateRange), formatter.Travelers(stage.Params.Travelers))
	if stage.TripID != "" {
		fmt.Fprintf(out, "%s %s\n", formatter.Dim("Trip:"), stage.TripID)
	}
	if stage.ShareURL != "" {
		fmt.Fprintf(out, "%s %s\n", formatter.Dim("Share:"), stage.ShareURL)
	}
	fmt.Fprintln(out, formatter.SyncIndicator(progress.SyncStatus()))
	return nil
}
