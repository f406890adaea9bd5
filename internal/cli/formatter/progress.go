package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░]  45%.
// The bar is colored by percentage: green from 66, yellow from 33, red below.
func RenderProgress(pct int, width int) string {
	pct = max(0, min(pct, 100))
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 33 {
		style = StyleRed
	} else if pct < 66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// RenderStats renders a bar followed by the completed/total count.
func RenderStats(stats domain.ProgressStats, width int) string {
	return RenderProgress(stats.Percentage, width) + " " + Dim(fmt.Sprintf("%d/%d activities", stats.Completed, stats.Total))
}
