package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

const dateLayout = "2006-01-02"

// destinationFields holds the raw form input of the destination screen.
type destinationFields struct {
	Destination string
	From        string
	To          string
	Travelers   string
}

// destinationEnteredMsg is sent when the destination form completes.
type destinationEnteredMsg struct {
	fields destinationFields
}

// parseDestination converts form input into trip parameters. Parse failures
// are reported as validation errors on the offending field.
func parseDestination(f destinationFields, today time.Time) (domain.TripParameters, error) {
	from, err := parseDate(f.From)
	if err != nil {
		return domain.TripParameters{}, &domain.ValidationError{Field: "dates", Message: "start date: " + err.Error()}
	}
	if from.Before(today) {
		return domain.TripParameters{}, &domain.ValidationError{Field: "dates", Message: "start date can't be in the past"}
	}
	to, err := parseDate(f.To)
	if err != nil {
		return domain.TripParameters{}, &domain.ValidationError{Field: "dates", Message: "end date: " + err.Error()}
	}
	travelers := 1
	if s := strings.TrimSpace(f.Travelers); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return domain.TripParameters{}, &domain.ValidationError{Field: "travelers", Message: "must be a number"}
		}
		travelers = n
	}
	return domain.TripParameters{
		Destination: f.Destination,
		DateRange:   domain.DateRange{From: from, To: to},
		Travelers:   travelers,
	}, nil
}

// applyDestination validates the form input and advances the flow to the
// budget stage.
func applyDestination(flow service.PlanningFlow, f destinationFields, today time.Time) (service.BudgetStage, error) {
	params, err := parseDestination(f, today)
	if err != nil {
		return service.BudgetStage{}, err
	}
	return flow.SubmitDestination(params)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("is required")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("use YYYY-MM-DD")
	}
	return t, nil
}

func validateDate(s string) error {
	_, err := parseDate(s)
	return err
}

func validateTravelers(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("enter at least 1")
	}
	return nil
}

// destinationView collects the trip parameters with a huh form.
type destinationView struct {
	state  *SharedState
	fields *destinationFields
	form   *huh.Form
	err    error
}

func newDestinationView(state *SharedState, prefill destinationFields) *destinationView {
	if prefill.Travelers == "" {
		prefill.Travelers = "1"
	}
	v := &destinationView{state: state, fields: &prefill}
	v.form = v.buildForm()
	return v
}

func (v *destinationView) buildForm() *huh.Form {
	dest := huh.NewInput().
		Title("Where to?").
		Placeholder("Paris, France").
		Value(&v.fields.Destination).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("destination is required")
			}
			return nil
		})
	if len(v.state.Suggestions) > 0 {
		dest = dest.Suggestions(v.state.Suggestions)
	}

	return huh.NewForm(
		huh.NewGroup(
			dest,
			huh.NewInput().
				Title("Arriving").
				Placeholder(dateLayout).
				Value(&v.fields.From).
				Validate(validateDate),
			huh.NewInput().
				Title("Leaving").
				Placeholder(dateLayout).
				Value(&v.fields.To).
				Validate(validateDate),
			huh.NewInput().
				Title("Travelers").
				Value(&v.fields.Travelers).
				Validate(validateTravelers),
		),
	).WithTheme(itineraHuhTheme()).WithShowHelp(false)
}

func (v *destinationView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *destinationView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case destinationEnteredMsg:
		*v.fields = msg.fields
		if _, err := applyDestination(v.state.Flow, msg.fields, v.state.App.today()); err != nil {
			v.err = err
			v.form = v.buildForm()
			return v, v.form.Init()
		}
		v.err = nil
		return v, pushView(newBudgetView(v.state))

	case viewResumedMsg:
		v.form = v.buildForm()
		return v, v.form.Init()
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		fields := *v.fields
		return v, tea.Batch(cmd, func() tea.Msg { return destinationEnteredMsg{fields: fields} })
	}

	return v, cmd
}

func (v *destinationView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(formatter.Header("Plan your trip"))
	b.WriteString("\n\n")
	if v.err != nil {
		b.WriteString(formatter.StyleRed.Render("✗ " + v.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(v.form.View())
	return b.String()
}

func (v *destinationView) ID() ViewID    { return ViewDestination }
func (v *destinationView) Title() string { return "Destination" }
func (v *destinationView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}
