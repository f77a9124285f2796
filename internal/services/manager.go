// Package services provides service orchestration for the TUI.
package services

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/activity-log-dashboard/internal/activitylog"
	"github.com/j-veylop/activity-log-dashboard/internal/analytics"
	"github.com/j-veylop/activity-log-dashboard/internal/config"
	"github.com/j-veylop/activity-log-dashboard/internal/logger"
	"github.com/j-veylop/activity-log-dashboard/internal/models"
	"github.com/j-veylop/activity-log-dashboard/internal/services/logfile"
)

type (
	// TableLoadedEvent is emitted when a table has been loaded or reloaded.
	TableLoadedEvent struct {
		Report     *analytics.Report
		LoadReport *activitylog.Report
		Reloaded   bool
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}

	// AlertEvent is emitted when the overall failure rate crosses the alert
	// threshold upwards.
	AlertEvent struct {
		FailureRate float64
		Threshold   float64
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (TableLoadedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()       {}
func (AlertEvent) isServiceEvent()       {}

// Notifier shows a desktop notification.
type Notifier func(title, body string) error

func desktopNotify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Manager orchestrates the log source, analytics and event routing.
type Manager struct {
	mu           sync.RWMutex
	cfg          *config.Config
	source       *logfile.Service
	report       *analytics.Report
	loadReport   *activitylog.Report
	notify       Notifier
	stopChan     chan struct{}
	subscribers  []chan<- ServiceEvent
	lastRate     float64
	haveLastRate bool
	closeOnce    sync.Once
}

// NewManager loads the configured log file and starts routing its events.
// A failed initial load is returned unchanged.
func NewManager(cfg *config.Config) (*Manager, error) {
	source, err := logfile.New(logfile.Options{
		Path:     cfg.LogPath,
		Location: cfg.Location,
		Watch:    cfg.Watch,
	})
	if err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:      cfg,
		source:   source,
		notify:   desktopNotify,
		stopChan: make(chan struct{}),
	}
	m.apply(source.Table(), source.LoadReport())

	go m.routeEvents()

	return m, nil
}

// routeEvents converts log source events into service events.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.source.Events():
			m.handleSourceEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleSourceEvent(event logfile.Event) {
	switch event.Type {
	case logfile.EventLoaded:
		// NewManager applied the initial table already.

	case logfile.EventReloaded:
		report := m.apply(event.Table, event.Report)
		m.broadcast(TableLoadedEvent{
			Report:     report,
			LoadReport: event.Report,
			Reloaded:   true,
		})

	case logfile.EventError:
		m.broadcast(ErrorEvent{
			Service: "logfile",
			Error:   event.Error,
		})
	}
}

// apply computes the analytics report for a table and makes it current.
func (m *Manager) apply(table *models.ActivityTable, load *activitylog.Report) *analytics.Report {
	report := analytics.New(table).Report()

	m.mu.Lock()
	m.report = report
	m.loadReport = load
	m.mu.Unlock()

	logger.Info("analytics report computed",
		"rows", report.Rows,
		"modes", report.TopLine.DistinctModes,
		"failures", report.Overall.Failures,
	)

	m.checkAlert(report.Overall)
	return report
}

// checkAlert notifies when the failure rate rises past the threshold. Only
// upward crossings between two loads count.
func (m *Manager) checkAlert(rates models.OverallRates) {
	threshold := m.cfg.FailureAlertThreshold
	if threshold <= 0 || rates.Total == 0 {
		return
	}

	m.mu.Lock()
	prev, havePrev := m.lastRate, m.haveLastRate
	m.lastRate, m.haveLastRate = rates.FailureRate, true
	notify := m.notify
	m.mu.Unlock()

	if !havePrev || prev >= threshold || rates.FailureRate < threshold {
		return
	}

	logger.Warn("failure rate crossed alert threshold", "rate", rates.FailureRate, "threshold", threshold)
	title := "Activity failure rate high"
	body := fmt.Sprintf("Failure rate is %.1f%% (threshold %.0f%%)", rates.FailureRate, threshold)
	if notify != nil {
		if err := notify(title, body); err != nil {
			logger.Debug("desktop notification failed", "error", err)
		}
	}
	m.broadcast(AlertEvent{FailureRate: rates.FailureRate, Threshold: threshold})
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Report returns the analytics report of the current table.
func (m *Manager) Report() *analytics.Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.report
}

// LoadReport returns the load report of the current table.
func (m *Manager) LoadReport() *activitylog.Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadReport
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Source returns the log file service.
func (m *Manager) Source() *logfile.Service {
	return m.source
}

// Refresh reloads the log file. The result is delivered as an event; a
// failure leaves the current report in place.
func (m *Manager) Refresh() error {
	return m.source.Reload()
}

// Close closes the manager and its log source.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		err = m.source.Close()
	})
	return err
}
