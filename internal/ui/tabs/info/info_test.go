package info

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-log-dashboard/internal/activitylog"
	"github.com/j-veylop/activity-log-dashboard/internal/analytics"
	"github.com/j-veylop/activity-log-dashboard/internal/app"
	"github.com/j-veylop/activity-log-dashboard/internal/config"
	"github.com/j-veylop/activity-log-dashboard/internal/version"
)

func init() {
	version.Version = "v1.2.3"
	version.Commit = "abc1234"
	version.Date = "2024-01-01"
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), &config.Config{})
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_Update(t *testing.T) {
	m := New(app.NewState(), &config.Config{})
	if updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown}); updated != m {
		t.Error("Update should return the same model")
	}
	if updated, _ := m.Update(nil); updated == nil {
		t.Error("Update returned nil model")
	}
}

func TestModel_ViewConfig(t *testing.T) {
	cfg := &config.Config{
		LogPath:               "/var/log/activity.csv",
		Watch:                 true,
		Location:              time.UTC,
		FailureAlertThreshold: 25,
		DiagnosticsPath:       "/tmp/logdash.log",
		LogLevel:              "debug",
	}
	m := New(app.NewState(), cfg)
	m.SetSize(100, 60)

	view := m.View()
	for _, want := range []string{"/var/log/activity.csv", "UTC", "25% failure rate", "debug", "No log loaded yet", "v1.2.3", "abc1234"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestModel_ViewWithoutConfig(t *testing.T) {
	m := New(app.NewState(), nil)
	m.SetSize(100, 60)
	if !strings.Contains(m.View(), "Configuration not loaded") {
		t.Error("View should say configuration is missing")
	}
}

func TestModel_ViewLoadReport(t *testing.T) {
	load := &activitylog.Report{
		Format:            "csv",
		Rows:              4,
		InvalidTimestamps: 25,
		Warnings: []activitylog.ParseWarning{
			{Field: "timestamp", Value: "yesterday", Line: 3},
		},
	}
	state := app.NewState()
	state.SetReport(&analytics.Report{Rows: 4}, load)

	m := New(state, &config.Config{})
	m.SetSize(100, 60)

	view := m.View()
	for _, want := range []string{"csv", "Warnings", `line 3: unparseable timestamp "yesterday"`, "and 24 more"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(), &config.Config{})
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help should list the scroll keys")
	}
}

func TestModel_ViewLargeCounts(t *testing.T) {
	state := app.NewState()
	state.SetReport(&analytics.Report{Rows: 1234567}, &activitylog.Report{Format: "jsonl", Rows: 1234567, SkippedLines: 2500})

	m := New(state, &config.Config{})
	m.SetSize(100, 60)

	view := m.View()
	for _, want := range []string{"1,234,567", "2,500", "(now)"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}
