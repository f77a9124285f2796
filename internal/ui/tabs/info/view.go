package info

import (
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/activity-log-dashboard/internal/ui/styles"
	"github.com/j-veylop/activity-log-dashboard/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderLoadCard(),
		m.renderAboutCard(),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, load report and build information")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 90)
}

func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration")}

	if m.config != nil {
		watch := "off"
		if m.config.Watch {
			watch = "on"
		}
		alert := "disabled"
		if m.config.FailureAlertThreshold > 0 {
			alert = fmt.Sprintf("%.0f%% failure rate", m.config.FailureAlertThreshold)
		}
		zone := "as written (Local if none)"
		if m.config.Location != nil {
			zone = m.config.Location.String()
		}

		rows = append(rows,
			renderRow("Log File", m.config.LogPath),
			renderRow("Watch", watch),
			renderRow("Timezone", zone),
			renderRow("Alert Threshold", alert),
			renderRow("Diagnostics", m.config.DiagnosticsPath),
			renderRow("Log Level", m.config.LogLevel),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderLoadCard() string {
	rows := []string{styles.CardTitleStyle.Render("Load Report")}

	load := m.state.LoadReport()
	if load == nil {
		rows = append(rows, styles.HelpStyle.Render("No log loaded yet"))
		return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	loaded := "never"
	if t := m.state.LastUpdated(); !t.IsZero() {
		loaded = fmt.Sprintf("%s (%s)", t.Format(time.DateTime), humanize.Time(t))
	}

	rows = append(rows,
		renderRow("Format", load.Format),
		renderRow("Rows", humanize.Comma(int64(load.Rows))),
		renderRow("Bad Timestamps", countText(load.InvalidTimestamps)),
		renderRow("Bad Statuses", countText(load.InvalidStatuses)),
		renderRow("Skipped Lines", countText(load.SkippedLines)),
		renderRow("Last Loaded", loaded),
	)

	if len(load.Warnings) > 0 {
		rows = append(rows, "", styles.SubTitleStyle.Render("Warnings"))
		for _, w := range load.Warnings {
			rows = append(rows, styles.WarningTextStyle.Render("  "+w.String()))
		}
		if hidden := load.WarningCount() - len(load.Warnings); hidden > 0 {
			rows = append(rows, styles.HelpStyle.Render(fmt.Sprintf("  ... and %d more", hidden)))
		}
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About logdash"),
		renderRow("Version", version.GetVersion()),
		renderRow("Commit", version.GetCommit()),
		renderRow("Build Date", version.GetDate()),
		renderRow("Go Version", runtime.Version()),
		renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func countText(n int) string {
	if n == 0 {
		return "none"
	}
	return styles.WarningTextStyle.Render(humanize.Comma(int64(n)))
}
