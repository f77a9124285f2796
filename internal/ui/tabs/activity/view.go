package activity

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-log-dashboard/internal/analytics"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/components"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/styles"
)

// heatmapCardWidth fits the 48-column grid, row labels and card frame.
const heatmapCardWidth = 60

// View renders the activity tab.
func (m *Model) View() string {
	sections := []string{m.renderTitle()}

	report := m.state.Report()
	switch {
	case m.state.IsInitialLoading():
		sections = append(sections, styles.HelpStyle.Render("Loading activity log..."))
	case report.Empty():
		sections = append(sections, styles.HelpStyle.Render("The activity log contains no records."))
	default:
		sections = append(sections, m.renderBody(report))
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Activity Patterns")
	subtitle := styles.HelpStyle.Render("When activity happens, by weekday and hour of the day")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderBody(report *analytics.Report) string {
	heatmap := styles.CardStyle.Width(heatmapCardWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Activity Levels by Time of Day and Day of the Week"),
		components.RenderHeatmap(&report.Heatmap),
		"",
		components.RenderHeatmapLegend(report.Heatmap.Max()),
	))

	contentWidth := max(m.width-6, 40)
	barsWidth := contentWidth
	sideBySide := contentWidth >= heatmapCardWidth+2+50
	if sideBySide {
		barsWidth = contentWidth - heatmapCardWidth - 3
	}

	var skipped string
	if report.InvalidTimestamps > 0 {
		skipped = styles.WarningTextStyle.Render(
			fmt.Sprintf("%d of %d rows have no valid timestamp and are not shown", report.InvalidTimestamps, report.Rows),
		)
	}

	barLines := []string{
		styles.CardTitleStyle.Render("Hourly Activity Count"),
		components.RenderBarChart(components.HourBars(report.HourlyBars.Bars), barsWidth-8),
		"",
		styles.HighlightStyle.Render("█") + styles.HelpStyle.Render(" top 5 hours"),
	}
	if skipped != "" {
		barLines = append(barLines, skipped)
	}
	bars := styles.CardStyle.Width(barsWidth).Render(lipgloss.JoinVertical(lipgloss.Left, barLines...))

	if sideBySide {
		return lipgloss.JoinHorizontal(lipgloss.Top, heatmap, " ", bars)
	}
	return lipgloss.JoinVertical(lipgloss.Left, heatmap, bars)
}
