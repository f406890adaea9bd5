package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/domain"
)

// FormatPlanSummary renders the plan header: tier, budget, stay and
// highlights.
func FormatPlanSummary(destination string, tier domain.BudgetTier, plan *domain.ItineraryPlan) string {
	var b strings.Builder
	b.WriteString(Header(destination))
	b.WriteString("\n")
	b.WriteString(TierBadge(tier))
	b.WriteString("\n\n")
	writeField(&b, "Budget", plan.TotalBudget)
	writeField(&b, "Duration", plan.Duration)
	writeField(&b, "Stay", plan.Accommodation)
	writeField(&b, "Getting around", plan.Transport)
	if len(plan.Highlights) > 0 {
		writeField(&b, "Highlights", strings.Join(plan.Highlights, ", "))
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s %s\n", Dim(fmt.Sprintf("%-15s", label+":")), value)
}

// FormatActivity renders one activity line. The key is shown so it can be
// passed to `itinera progress toggle`.
func FormatActivity(key domain.ActivityKey, a domain.Activity, done bool) string {
	check := Dim("[ ]")
	task := a.Task
	if done {
		check = StyleGreen.Render("[✓]")
		task = StyleDim.Strikethrough(true).Render(a.Task)
	}
	icon := ActivityStyle(a.Type).Render(ActivityIcon(a.Type))
	return fmt.Sprintf("%s %s  %s %s %s", check, Dim(fmt.Sprintf("%-5s", key.String())), StyleBlue.Render(a.Time), icon, task)
}

// FormatDayHeader renders "Day 2 · Title" with the day's progress.
func FormatDayHeader(day domain.Day, stats domain.ProgressStats) string {
	title := StyleBold.Render(fmt.Sprintf("Day %d", day.Day))
	if day.Title != "" {
		title += " " + Dim("·") + " " + StyleFg.Render(day.Title)
	}
	return title + "  " + RenderProgress(stats.Percentage, 8)
}

// FormatItinerary renders the full plan with completion marks.
func FormatItinerary(destination string, tier domain.BudgetTier, plan *domain.ItineraryPlan, state domain.CompletionState) string {
	var b strings.Builder
	b.WriteString(FormatPlanSummary(destination, tier, plan))
	b.WriteString("\n")
	b.WriteString(RenderStats(domain.ComputeStats(plan, state), 20))
	b.WriteString("\n")

	dayStats := domain.DayStats(plan, state)
	for d, day := range plan.Days {
		b.WriteString("\n")
		b.WriteString(FormatDayHeader(day, dayStats[d]))
		b.WriteString("\n")
		for a, act := range day.Activities {
			key := domain.ActivityKey{Day: d, Activity: a}
			b.WriteString("  ")
			b.WriteString(FormatActivity(key, act, state.Done(key)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatDestinations renders the destination catalog as a table.
func FormatDestinations(dests []*domain.Destination, fallback bool) string {
	if len(dests) == 0 {
		return Dim("No destinations available.") + "\n"
	}
	rows := make([][]string, 0, len(dests))
	for _, d := range dests {
		popular := ""
		if d.Popular {
			popular = StyleYellow.Render("★")
		}
		rows = append(rows, []string{d.Name, d.Country, popular})
	}
	out := RenderTable([]string{"DESTINATION", "COUNTRY", "POPULAR"}, rows)
	if fallback {
		out += "\n" + StyleYellow.Render("Trip service unreachable, showing the built-in list.") + "\n"
	}
	return out
}

// FormatProgressReport renders the server's view of a trip's progress.
func FormatProgressReport(r *app.ProgressReport) string {
	var b strings.Builder
	b.WriteString(Header(r.Destination))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("Trip:"), r.TripID)
	fmt.Fprintf(&b, "%s %s\n", Dim("Budget:"), TierBadge(r.BudgetTier))
	fmt.Fprintf(&b, "%s %s\n", Dim("Progress:"), RenderProgress(r.ProgressPercentage, 20))
	return b.String()
}

// FormatTrip renders a shared trip record.
func FormatTrip(t *domain.TripRecord) string {
	var b strings.Builder
	b.WriteString(Header(t.Destination))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("Dates:"), TripDates(t.DateRange))
	fmt.Fprintf(&b, "%s %s\n", Dim("Party:"), Travelers(t.Travelers))
	fmt.Fprintf(&b, "%s %s\n", Dim("Budget:"), TierBadge(t.BudgetTier))
	done := 0
	for _, v := range t.CompletedActivities {
		if v {
			done++
		}
	}
	fmt.Fprintf(&b, "%s %d activities checked off\n", Dim("Progress:"), done)
	return b.String()
}
