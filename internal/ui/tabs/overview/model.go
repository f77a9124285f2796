// Package overview provides the overview tab: headline metrics, activity over
// time and the mode counts table.
package overview

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-log-dashboard/internal/app"
	"github.com/j-veylop/activity-log-dashboard/internal/models"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/components"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/styles"
)

// keyMap defines the key bindings specific to the overview tab.
type keyMap struct {
	Sort key.Binding
	Up   key.Binding
	Down key.Binding
}

// defaultKeyMap returns the default key bindings for the overview tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle sort"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev mode"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next mode"),
		),
	}
}

const (
	countColumnWidth = 16
	maxTableRows     = 12
)

// Model represents the overview tab state.
type Model struct {
	state    *app.State
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	table    table.Model
	order    models.SortOrder
	width    int
	height   int

	// headerHeight is the rendered height of the table header, border included.
	headerHeight int
}

// New creates a new overview model.
func New(state *app.State) *Model {
	t := table.New(
		table.WithColumns(modeColumns(20, models.SortDescending)),
		table.WithFocused(true),
		table.WithHeight(maxTableRows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	m := &Model{
		state:    state,
		spinner:  components.NewSpinner("Loading activity log..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		table:    t,
		order:    models.SortDescending,

		headerHeight: lipgloss.Height(s.Header.Render("Mode")),
	}
	m.syncTable()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.ReportLoadedMsg:
		m.syncTable()

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))

	case spinner.TickMsg:
		if m.state.IsInitialLoading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Sort):
		m.order = m.order.Toggle()
		m.syncTable()
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		m.table, cmd = m.table.Update(msg)
	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return cmd
}

// Order returns the current sort order of the mode table.
func (m *Model) Order() models.SortOrder {
	return m.order
}

// syncTable rebuilds the mode table rows from the current report.
func (m *Model) syncTable() {
	modes := m.state.Report().SortedModes(m.order)

	rows := make([]table.Row, 0, len(modes))
	for _, mc := range modes {
		rows = append(rows, table.Row{mc.Mode, strconv.Itoa(mc.Count)})
	}

	m.table.SetColumns(modeColumns(m.modeColumnWidth(), m.order))
	m.table.SetRows(rows)
	m.table.SetHeight(min(max(len(rows), 1), maxTableRows) + m.headerHeight)
	m.table.GotoTop()
}

func (m *Model) modeColumnWidth() int {
	return max(m.tableWidth()-countColumnWidth-6, 12)
}

func modeColumns(modeWidth int, order models.SortOrder) []table.Column {
	arrow := "▼"
	if order == models.SortAscending {
		arrow = "▲"
	}
	return []table.Column{
		{Title: "Mode", Width: modeWidth},
		{Title: "Activity Count " + arrow, Width: countColumnWidth},
	}
}

// SetSize sets the available size for the overview.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.table.SetColumns(modeColumns(m.modeColumnWidth(), m.order))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Sort,
		m.keys.Up,
		m.keys.Down,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Sort},
		{m.keys.Up, m.keys.Down},
	}
}
