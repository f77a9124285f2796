package failures

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-log-dashboard/internal/analytics"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/components"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/styles"
)

// View renders the failures tab.
func (m *Model) View() string {
	sections := []string{m.renderTitle()}

	report := m.state.Report()
	switch {
	case m.state.IsInitialLoading():
		sections = append(sections, styles.HelpStyle.Render("Loading activity log..."))
	case report.Empty():
		sections = append(sections, styles.HelpStyle.Render("The activity log contains no records."))
	default:
		width := m.contentWidth()
		sections = append(sections,
			components.RenderMetricRow(OverallMetrics(report), width),
			"",
			m.renderBreakdown(report, width),
			m.renderRates(report, width),
			m.renderDistribution(report, width),
		)
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Failure Analysis")
	subtitle := styles.HelpStyle.Render("Status 0 counts as success, status 1 as failure")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// OverallMetrics builds the success and failure rate cards.
func OverallMetrics(report *analytics.Report) []components.Metric {
	o := report.Overall
	return []components.Metric{
		{
			Label: "Success Rate",
			Value: fmt.Sprintf("%.2f%%", o.SuccessRate),
			Delta: fmt.Sprintf("%d successful operations", o.Successes),
			Tone:  components.DeltaGood,
		},
		{
			Label: "Failure/Error Rate",
			Value: fmt.Sprintf("%.2f%%", o.FailureRate),
			Delta: fmt.Sprintf("%d failed operations", o.Failures),
			Tone:  components.DeltaBad,
		},
	}
}

func (m *Model) renderBreakdown(report *analytics.Report, width int) string {
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Failed Activities by Type"),
		components.RenderShareBars(report.Breakdown, width-4),
	))
}

func (m *Model) renderRates(report *analytics.Report, width int) string {
	lines := []string{styles.CardTitleStyle.Render("Success Rate by Activity Type")}
	if len(report.Rates) == 0 {
		lines = append(lines, styles.HelpStyle.Render("No activity with a known status"))
	}
	for _, r := range report.Rates {
		detail := fmt.Sprintf("%d ok · %d failed · %d total", r.Successes, r.Failures, r.Total)
		lines = append(lines, m.rateBar.View(r.SuccessRate, r.Mode, detail, width-4))
	}
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderDistribution(report *analytics.Report, width int) string {
	dist := report.Failures

	sideBySide := width >= 100
	cardWidth := width
	if sideBySide {
		cardWidth = (width - 1) / 2
	}

	byDay := styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Failures by Day of the Week"),
		components.RenderBarChart(components.WeekdayBars(dist.ByWeekday[:], dist.MaxWeekday), cardWidth-4),
	))

	hourChart := styles.HelpStyle.Render("No failures with a valid timestamp")
	if len(dist.ByHour) > 0 {
		hourChart = components.RenderBarChart(components.HourCountBars(dist.ByHour, dist.MaxHour), cardWidth-4)
	}
	byHour := styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Failures by Time of the Day"),
		hourChart,
	))

	if sideBySide {
		return lipgloss.JoinHorizontal(lipgloss.Top, byDay, " ", byHour)
	}
	return lipgloss.JoinVertical(lipgloss.Left, byDay, byHour)
}

func (m *Model) contentWidth() int {
	return max(m.width-6, 40)
}
