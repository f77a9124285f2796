package overview

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/activity-log-dashboard/internal/analytics"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/components"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/styles"
)

// sideBySideWidth is the narrowest width that fits chart and table in one row.
const sideBySideWidth = 110

// View renders the overview tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	report := m.state.Report()

	sections := []string{m.renderTitle(report)}
	if report.Empty() {
		sections = append(sections, styles.CardStyle.Width(m.contentWidth()).Render(
			styles.HelpStyle.Render("The activity log contains no records."),
		))
	} else {
		sections = append(sections, components.RenderMetricRow(TopLineMetrics(report), m.contentWidth()), "")
		sections = append(sections, m.renderBody(report))
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle(report *analytics.Report) string {
	title := styles.TitleStyle.Render("Activity Overview")
	subtitle := "No log loaded"
	if report != nil {
		subtitle = fmt.Sprintf("%s · %s records", report.Source, humanize.Comma(int64(report.Rows)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

// TopLineMetrics builds the four headline metric cards.
func TopLineMetrics(report *analytics.Report) []components.Metric {
	top := report.TopLine

	peakHour := components.Metric{Label: "Activity Peak Hour", Value: "n/a", Delta: "no valid timestamps"}
	busiestDay := components.Metric{Label: "Busiest Day of the Week", Value: "n/a", Delta: "no valid timestamps"}
	if top.HasPeak {
		peakHour.Value = fmt.Sprintf("%d:00", top.PeakHour)
		peakHour.Delta = fmt.Sprintf("%d recorded activity", top.PeakHourCount)
		busiestDay.Value = top.PeakWeekdayName
		busiestDay.Delta = fmt.Sprintf("%d recorded activity", top.PeakWeekdayCount)
	}

	return []components.Metric{
		{Label: "All Activity", Value: humanize.Comma(int64(top.TotalCount)), Delta: "Total records in dataset"},
		{Label: "Activity Mode", Value: humanize.Comma(int64(top.DistinctModes)), Delta: "Types of activity in dataset"},
		peakHour,
		busiestDay,
	}
}

func (m *Model) renderBody(report *analytics.Report) string {
	chartWidth := m.chartWidth()

	chartCard := styles.CardStyle.Width(chartWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Activity Count Over Time"),
		components.RenderMonthlyChart(report.Monthly, chartWidth-14, 10),
	))

	tableCard := styles.CardStyle.Width(m.tableWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Activity Count by Mode"),
		m.table.View(),
		"",
		styles.HelpStyle.Render(fmt.Sprintf("%s · press s to toggle", m.order)),
	))

	if m.contentWidth() >= sideBySideWidth {
		return lipgloss.JoinHorizontal(lipgloss.Top, chartCard, " ", tableCard)
	}
	return lipgloss.JoinVertical(lipgloss.Left, chartCard, tableCard)
}

func (m *Model) contentWidth() int {
	// DocStyle margin and padding.
	return max(m.width-6, 40)
}

func (m *Model) chartWidth() int {
	if m.contentWidth() >= sideBySideWidth {
		return m.contentWidth() * 7 / 10
	}
	return m.contentWidth()
}

func (m *Model) tableWidth() int {
	if m.contentWidth() >= sideBySideWidth {
		return m.contentWidth() - m.chartWidth() - 1
	}
	return m.contentWidth()
}
