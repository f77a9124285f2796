// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/activity-log-dashboard/internal/models"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/styles"
)

// NoDataText is shown in place of a chart with nothing to draw.
const NoDataText = "No data available"

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render(NoDataText)
	}

	width = max(width, 20)
	height = max(height, 3)

	// A lone point still needs a segment to draw.
	if len(data) == 1 {
		data = []float64{data[0], data[0]}
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Cyan),
	)
}

// RenderMonthlyChart plots activity per month with the first and last period
// labelled under the x axis.
func RenderMonthlyChart(periods []models.PeriodCount, width, height int) string {
	if len(periods) == 0 {
		return styles.HelpStyle.Render(NoDataText)
	}

	data := make([]float64, len(periods))
	for i, p := range periods {
		data[i] = float64(p.Count)
	}

	graph := RenderLineChart(data, width, height, "Activity Count Over Time")

	first, last := periods[0].Period, periods[len(periods)-1].Period
	axis := first
	if last != first {
		gap := max(lipgloss.Width(graph)-len(first)-len(last), 1)
		axis = first + strings.Repeat(" ", gap) + last
	}
	return lipgloss.JoinVertical(lipgloss.Left, graph, styles.HelpStyle.Render(axis))
}

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label     string
	Value     int
	Highlight bool
}

// HourBars converts hourly bars into chart rows labelled by hour.
func HourBars(bars []models.HourBar) []Bar {
	out := make([]Bar, len(bars))
	for i, b := range bars {
		out[i] = Bar{Label: fmt.Sprintf("%02d:00", b.Hour), Value: b.Count, Highlight: b.Highlight}
	}
	return out
}

// HourCountBars converts hour counts into chart rows, highlighting every
// row that reaches peak. A zero peak highlights nothing.
func HourCountBars(counts []models.HourCount, peak int) []Bar {
	out := make([]Bar, len(counts))
	for i, c := range counts {
		out[i] = Bar{Label: fmt.Sprintf("%02d:00", c.Hour), Value: c.Count, Highlight: peak > 0 && c.Count == peak}
	}
	return out
}

// WeekdayBars converts weekday counts into chart rows, highlighting every
// row that reaches peak. A zero peak highlights nothing.
func WeekdayBars(counts []models.WeekdayCount, peak int) []Bar {
	out := make([]Bar, len(counts))
	for i, c := range counts {
		out[i] = Bar{Label: c.Day, Value: c.Count, Highlight: peak > 0 && c.Count == peak}
	}
	return out
}

// RenderBarChart creates a horizontal bar chart. Highlighted rows are drawn
// in the highlight colour.
func RenderBarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return styles.HelpStyle.Render(NoDataText)
	}

	maxVal, labelWidth, valueWidth := 0, 0, 1
	for _, b := range bars {
		maxVal = max(maxVal, b.Value)
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
		valueWidth = max(valueWidth, len(fmt.Sprint(b.Value)))
	}

	barWidth := max(width-labelWidth-valueWidth-4, 10)

	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		n := 0
		if maxVal > 0 {
			n = b.Value * barWidth / maxVal
		}
		if b.Value > 0 && n == 0 {
			n = 1
		}

		style := styles.BarStyle
		if b.Highlight {
			style = styles.HighlightStyle
		}

		label := fmt.Sprintf("%*s", labelWidth, b.Label)
		bar := style.Render(strings.Repeat("█", n))
		lines = append(lines, fmt.Sprintf("%s │%s %*d", label, bar, valueWidth, b.Value))
	}

	return strings.Join(lines, "\n")
}
