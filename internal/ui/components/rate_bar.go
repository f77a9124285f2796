package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-log-dashboard/internal/ui/styles"
)

// RateBar renders a success rate as a progress bar with label and percentage.
type RateBar struct {
	progress progress.Model
}

// NewRateBar creates a new rate bar with a red-to-green gradient.
func NewRateBar() RateBar {
	p := progress.New(
		progress.WithScaledGradient("#ff6b6b", "#51cf66"),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)
	return RateBar{progress: p}
}

// View renders the bar for a success rate in percent, with the label on the
// left and the counts on the right.
func (r RateBar) View(rate float64, label, detail string, width int) string {
	labelWidth := 16
	detailWidth := lipgloss.Width(detail)

	r.progress.Width = max(width-labelWidth-detailWidth-10, 10)
	bar := r.progress.ViewAs(clampPercent(rate) / 100)

	percentStr := styles.GetRateStyle(rate).
		Width(7).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.1f%%", rate))

	labelStr := styles.ProgressLabelStyle.Width(labelWidth).Render(truncate(label, labelWidth-1))

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		labelStr,
		bar,
		" ",
		percentStr,
		"  ",
		styles.HelpStyle.Render(detail),
	)
}

// ViewCompact renders the bar and percentage without label.
func (r RateBar) ViewCompact(rate float64, width int) string {
	r.progress.Width = max(width-8, 5)
	bar := r.progress.ViewAs(clampPercent(rate) / 100)
	percentStr := styles.GetRateStyle(rate).Render(fmt.Sprintf("%.0f%%", rate))
	return lipgloss.JoinHorizontal(lipgloss.Center, bar, " ", percentStr)
}

func clampPercent(p float64) float64 {
	return max(0, min(p, 100))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
