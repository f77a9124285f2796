package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-log-dashboard/internal/ui/styles"
)

// DeltaTone selects how the delta line of a metric card is coloured.
type DeltaTone int

const (
	// DeltaNeutral renders the delta as muted text.
	DeltaNeutral DeltaTone = iota
	// DeltaGood renders the delta in the success colour.
	DeltaGood
	// DeltaBad renders the delta in the error colour.
	DeltaBad
)

// Metric is a scalar display: a label, a value and an optional annotation.
type Metric struct {
	Label string
	Value string
	Delta string
	Tone  DeltaTone
}

// RenderMetric renders a single metric card of the given outer width.
func RenderMetric(m Metric, width int) string {
	lines := []string{
		styles.MetricLabelStyle.Render(m.Label),
		styles.MetricValueStyle.Render(m.Value),
	}
	if m.Delta != "" {
		lines = append(lines, deltaStyle(m.Tone).Render(m.Delta))
	}

	// The border takes one column.
	inner := max(width-1, 10)
	return styles.MetricCardStyle.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderMetricRow lays metrics out side by side, sharing width evenly. When
// the width is too narrow the cards stack vertically instead.
func RenderMetricRow(metrics []Metric, width int) string {
	if len(metrics) == 0 {
		return ""
	}

	// MarginRight on each card.
	cardWidth := width/len(metrics) - 1
	if cardWidth < 18 {
		cards := make([]string, len(metrics))
		for i, m := range metrics {
			cards[i] = RenderMetric(m, max(width-1, 18))
		}
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}

	cards := make([]string, len(metrics))
	for i, m := range metrics {
		cards[i] = RenderMetric(m, cardWidth)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func deltaStyle(tone DeltaTone) lipgloss.Style {
	switch tone {
	case DeltaGood:
		return styles.SuccessTextStyle
	case DeltaBad:
		return styles.ErrorTextStyle
	default:
		return styles.HelpStyle
	}
}
