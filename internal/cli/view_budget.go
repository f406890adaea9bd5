package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// budgetSelectedMsg carries the result of an asynchronous SelectBudget call.
type budgetSelectedMsg struct {
	stage service.ItineraryStage
	err   error
}

// budgetView lets the user pick one of the budget tiers.
type budgetView struct {
	state     *SharedState
	cursor    int
	selecting bool
	spinner   spinner.Model
	err       error
}

func newBudgetView(state *SharedState) *budgetView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleHeader
	return &budgetView{state: state, spinner: sp}
}

func (v *budgetView) Init() tea.Cmd { return nil }

func (v *budgetView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case budgetSelectedMsg:
		v.selecting = false
		switch {
		case errors.Is(msg.err, service.ErrStaleTransition):
			return v, nil
		case msg.err != nil:
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		return v, pushView(newItineraryView(v.state, msg.stage))

	case spinner.TickMsg:
		if !v.selecting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case viewResumedMsg:
		v.selecting = false
		v.err = nil
	}
	return v, nil
}

func (v *budgetView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		// Going back invalidates an in-flight selection.
		v.state.Flow.BackToDestination()
		v.selecting = false
		return v, popView()
	}
	if v.selecting {
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(domain.BudgetTiers)-1 {
			v.cursor++
		}
	case "1", "2", "3":
		v.cursor = int(msg.Runes[0] - '1')
		return v.selectTier()
	case "enter":
		return v.selectTier()
	}
	return v, nil
}

func (v *budgetView) selectTier() (tea.Model, tea.Cmd) {
	tier := domain.BudgetTiers[v.cursor]
	v.selecting = true
	v.err = nil
	flow := v.state.Flow
	ctx := v.state.Ctx
	return v, tea.Batch(v.spinner.Tick, func() tea.Msg {
		stage, err := flow.SelectBudget(ctx, tier)
		return budgetSelectedMsg{stage: stage, err: err}
	})
}

func (v *budgetView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if budget, ok := v.state.Flow.State().(service.BudgetStage); ok {
		p := budget.Params
		b.WriteString(formatter.Header(p.Destination))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s  %s\n\n", formatter.TripDates(p.DateRange), formatter.Dim(formatter.Travelers(p.Travelers)))
	}

	b.WriteString(formatter.Bold("Choose your budget"))
	b.WriteString("\n\n")
	for i, tier := range domain.BudgetTiers {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleHeader.Render("› ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, formatter.Dim(fmt.Sprintf("%d.", i+1)), formatter.TierBadge(tier))
	}

	if v.selecting {
		b.WriteString("\n")
		b.WriteString(v.spinner.View() + " " + formatter.Dim("Saving your trip…"))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(formatter.StyleRed.Render("✗ " + v.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *budgetView) ID() ViewID    { return ViewBudget }
func (v *budgetView) Title() string { return "Budget" }
func (v *budgetView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}
