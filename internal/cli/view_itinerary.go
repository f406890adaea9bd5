package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const syncPollInterval = 250 * time.Millisecond

// itineraryLoadedMsg and activityToggledMsg name the view and load that
// produced them; results for any other view or an older load are dropped.
type itineraryLoadedMsg struct {
	view     *itineraryView
	seq      int
	plan     *domain.ItineraryPlan
	state    domain.CompletionState
	err      error
	stateErr error
}

type activityToggledMsg struct {
	view *itineraryView
	err  error
}

type syncTickMsg struct{}

// itineraryView shows the chosen plan and lets the user check off
// activities.
type itineraryView struct {
	state *SharedState
	stage service.ItineraryStage

	// Each view owns its progress session. ctx is cancelled when the view
	// is left so pending loads never initialise it.
	ctx         context.Context
	cancel      context.CancelFunc
	progress    service.ProgressService
	updates     <-chan domain.CompletionState
	unsubscribe func()
	loadSeq     int

	loading  bool
	plan     *domain.ItineraryPlan
	done     domain.CompletionState
	keys     []domain.ActivityKey
	cursor   int
	loadErr  error
	stateErr error

	sync     domain.SyncStatus
	spinner  spinner.Model
	viewport viewport.Model
}

func newItineraryView(state *SharedState, stage service.ItineraryStage) *itineraryView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleHeader

	ctx, cancel := context.WithCancel(state.Ctx)
	progress := state.App.newProgress()
	updates, unsubscribe := progress.Subscribe()
	state.Progress = progress
	return &itineraryView{
		state:       state,
		stage:       stage,
		ctx:         ctx,
		cancel:      cancel,
		progress:    progress,
		updates:     updates,
		unsubscribe: unsubscribe,
		spinner:     sp,
		viewport:    viewport.New(0, 0),
		sync:        domain.SyncLocalOnly,
	}
}

func (v *itineraryView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.load())
}

// load starts a new plan load; any earlier load still running is
// superseded.
func (v *itineraryView) load() tea.Cmd {
	v.loading = true
	v.loadErr = nil
	v.loadSeq++
	view, seq := v, v.loadSeq
	ctx := v.ctx
	itineraries := v.state.App.Itineraries
	progress := v.progress
	stage := v.stage
	return func() tea.Msg {
		plan, err := itineraries.LoadPlan(ctx, stage.Params.Destination, stage.Tier)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return itineraryLoadedMsg{view: view, seq: seq, err: err}
		}
		state, err := progress.Initialize(ctx, stage.TripID)
		if errors.Is(err, service.ErrStaleScope) {
			return nil
		}
		return itineraryLoadedMsg{view: view, seq: seq, plan: plan, state: state, stateErr: err}
	}
}

// close ends the view's progress session and abandons pending loads.
func (v *itineraryView) close() {
	v.cancel()
	v.unsubscribe()
	v.progress.Close()
}

// latest installs the newest state published by the progress session.
func (v *itineraryView) latest() {
	select {
	case state, ok := <-v.updates:
		if ok {
			v.done = state
		}
	default:
	}
}

func (v *itineraryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.refresh()
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case itineraryLoadedMsg:
		if msg.view != v || msg.seq != v.loadSeq {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.loadErr = msg.err
			return v, nil
		}
		v.plan = msg.plan
		v.done = msg.state
		v.latest()
		v.stateErr = msg.stateErr
		v.keys = activityKeys(msg.plan)
		v.cursor = 0
		v.sync = v.progress.SyncStatus()
		v.refresh()
		return v, v.pollSync()

	case activityToggledMsg:
		if msg.view != v {
			return v, nil
		}
		v.latest()
		v.stateErr = msg.err
		v.sync = v.progress.SyncStatus()
		v.refresh()
		return v, v.pollSync()

	case syncTickMsg:
		v.sync = v.progress.SyncStatus()
		return v, v.pollSync()

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}
	return v, nil
}

// pollSync schedules a status refresh while a remote write is pending.
func (v *itineraryView) pollSync() tea.Cmd {
	if v.sync != domain.SyncPending {
		return nil
	}
	return tea.Tick(syncPollInterval, func(time.Time) tea.Msg { return syncTickMsg{} })
}

func (v *itineraryView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		v.close()
		if _, err := v.state.Flow.BackToBudget(); err != nil {
			v.stateErr = err
			return v, nil
		}
		return v, popView()
	}

	if v.loadErr != nil {
		if msg.String() == "r" {
			return v, tea.Batch(v.spinner.Tick, v.load())
		}
		return v, nil
	}
	if v.loading || len(v.keys) == 0 {
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
			v.refresh()
		}
	case "down", "j":
		if v.cursor < len(v.keys)-1 {
			v.cursor++
			v.refresh()
		}
	case " ", "space", "enter", "x":
		return v, v.toggle(v.keys[v.cursor])
	}
	return v, nil
}

func (v *itineraryView) toggle(k domain.ActivityKey) tea.Cmd {
	view, ctx, progress := v, v.ctx, v.progress
	return func() tea.Msg {
		_, err := progress.Toggle(ctx, k)
		return activityToggledMsg{view: view, err: err}
	}
}

// refresh re-renders the activity list into the viewport and keeps the
// cursor row visible.
func (v *itineraryView) refresh() {
	v.viewport.Width = v.state.Width
	v.viewport.Height = max(v.state.ContentHeight()-v.summaryHeight(), 3)
	if v.plan == nil {
		return
	}

	var lines []string
	cursorLine := 0
	idx := 0
	dayStats := domain.DayStats(v.plan, v.done)
	for d, day := range v.plan.Days {
		if d > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, formatter.FormatDayHeader(day, dayStats[d]))
		for a, act := range day.Activities {
			k := domain.ActivityKey{Day: d, Activity: a}
			prefix := "  "
			if idx == v.cursor {
				prefix = formatter.StyleHeader.Render("› ")
				cursorLine = len(lines)
			}
			lines = append(lines, prefix+formatter.FormatActivity(k, act, v.done.Done(k)))
			idx++
		}
	}
	v.viewport.SetContent(strings.Join(lines, "\n"))

	switch {
	case cursorLine < v.viewport.YOffset:
		v.viewport.SetYOffset(cursorLine)
	case cursorLine >= v.viewport.YOffset+v.viewport.Height:
		v.viewport.SetYOffset(cursorLine - v.viewport.Height + 1)
	}
}

func (v *itineraryView) summaryHeight() int {
	if v.plan == nil {
		return 0
	}
	return strings.Count(v.renderSummary(), "\n") + 1
}

func (v *itineraryView) renderSummary() string {
	var b strings.Builder
	b.WriteString(formatter.FormatPlanSummary(v.stage.Params.Destination, v.stage.Tier, v.plan))
	fmt.Fprintf(&b, "%s  %s\n", formatter.TripDates(v.stage.Params.DateRange), formatter.Dim(formatter.Travelers(v.stage.Params.Travelers)))
	if v.stage.ShareURL != "" {
		fmt.Fprintf(&b, "%s %s\n", formatter.Dim("Share:"), formatter.StyleBlue.Render(v.stage.ShareURL))
	}
	b.WriteString("\n")
	b.WriteString(formatter.RenderStats(domain.ComputeStats(v.plan, v.done), 20))
	b.WriteString("  ")
	b.WriteString(formatter.SyncIndicator(v.sync))
	if v.stateErr != nil {
		b.WriteString("\n")
		b.WriteString(formatter.StyleYellow.Render("! " + v.stateErr.Error()))
	}
	b.WriteString("\n")
	return b.String()
}

func (v *itineraryView) View() string {
	switch {
	case v.loading:
		return fmt.Sprintf("\n%s Loading the %s plan for %s…\n",
			v.spinner.View(), v.stage.Tier.Label(), v.stage.Params.Destination)
	case v.loadErr != nil:
		msg := fmt.Sprintf("Couldn't load the %s plan for %s.", v.stage.Tier.Label(), v.stage.Params.Destination)
		body := formatter.StyleRed.Render(msg) + "\n" + formatter.Dim(v.loadErr.Error()) + "\n\n" +
			formatter.Dim("Press r to try again or esc to pick another budget.")
		return "\n" + formatter.RenderBox("Itinerary unavailable", body)
	}
	return "\n" + v.renderSummary() + "\n" + v.viewport.View()
}

func (v *itineraryView) ID() ViewID    { return ViewItinerary }
func (v *itineraryView) Title() string { return "Itinerary" }
func (v *itineraryView) ShortHelp() []key.Binding {
	if v.loadErr != nil {
		return []key.Binding{
			key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check off")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// activityKeys lists every activity of plan in display order.
func activityKeys(plan *domain.ItineraryPlan) []domain.ActivityKey {
	keys := make([]domain.ActivityKey, 0, plan.ActivityCount())
	for d, day := range plan.Days {
		for a := range day.Activities {
			keys = append(keys, domain.ActivityKey{Day: d, Activity: a})
		}
	}
	return keys
}
