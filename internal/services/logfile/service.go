// Package logfile loads an activity log and reloads it when the file changes.
package logfile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/activity-log-dashboard/internal/activitylog"
	"github.com/j-veylop/activity-log-dashboard/internal/logger"
	"github.com/j-veylop/activity-log-dashboard/internal/models"
)

// DefaultDebounce is the quiet period after the last write before a reload.
const DefaultDebounce = 250 * time.Millisecond

// A watcher-triggered reload retries while the file is empty, which is what
// writers that truncate before rewriting leave behind for a moment.
const (
	reloadAttempts = 3
	reloadDelay    = 50 * time.Millisecond
)

// Event represents a log source event.
type Event struct {
	Type   EventType
	Error  error
	Table  *models.ActivityTable
	Report *activitylog.Report
}

// EventType defines the type of log source event.
type EventType int

const (
	EventLoaded EventType = iota
	EventReloaded
	EventError
)

// Options configures a Service.
type Options struct {
	Location *time.Location
	Path     string
	Debounce time.Duration
	Watch    bool
}

// Service holds the most recently loaded table for one log file.
type Service struct {
	mu            sync.RWMutex
	table         *models.ActivityTable
	report        *activitylog.Report
	path          string
	location      *time.Location
	debounce      time.Duration
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	ctx           context.Context
	cancel        context.CancelFunc
	debounceTimer *time.Timer
	closeOnce     sync.Once
}

// New loads the log file and, if requested, starts watching it. A failed
// initial load is returned as is so the caller can treat it as fatal.
func New(opts Options) (*Service, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		path:      opts.Path,
		location:  opts.Location,
		debounce:  opts.Debounce,
		eventChan: make(chan Event, 100),
		ctx:       ctx,
		cancel:    cancel,
	}

	table, report, err := activitylog.Load(s.path, s.location)
	if err != nil {
		cancel()
		return nil, err
	}
	s.table = table
	s.report = report

	if opts.Watch {
		if err := s.startWatcher(); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	s.sendEvent(Event{Type: EventLoaded, Table: table, Report: report})

	return s, nil
}

// Events returns the event channel for subscribing to reloads.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Table returns the current table.
func (s *Service) Table() *models.ActivityTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// LoadReport returns the report of the current table's load.
func (s *Service) LoadReport() *activitylog.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Path returns the watched file path.
func (s *Service) Path() string {
	return s.path
}

// Watching reports whether file watching is active.
func (s *Service) Watching() bool {
	return s.watcher != nil
}

// Reload reads the file again. On failure the previous table is kept and an
// error event is sent.
func (s *Service) Reload() error {
	table, report, err := activitylog.Load(s.path, s.location)
	return s.apply(table, report, err)
}

// reloadOnChange is Reload with a short retry while the file reads as empty.
func (s *Service) reloadOnChange() error {
	var (
		table  *models.ActivityTable
		report *activitylog.Report
	)
	err := retry.New(
		retry.Context(s.ctx),
		retry.Attempts(reloadAttempts),
		retry.Delay(reloadDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, activitylog.ErrEmptyFile)
		}),
	).Do(func() error {
		var loadErr error
		table, report, loadErr = activitylog.Load(s.path, s.location)
		return loadErr
	})
	if s.ctx.Err() != nil {
		return s.ctx.Err()
	}
	return s.apply(table, report, err)
}

func (s *Service) apply(table *models.ActivityTable, report *activitylog.Report, err error) error {
	if err != nil {
		logger.Warn("reload failed, keeping previous table", "path", s.path, "error", err)
		s.sendEvent(Event{Type: EventError, Error: err})
		return err
	}

	s.mu.Lock()
	s.table = table
	s.report = report
	s.mu.Unlock()

	s.sendEvent(Event{Type: EventReloaded, Table: table, Report: report})
	return nil
}

// startWatcher watches the file's directory so replaced or recreated files
// are noticed.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		s.watcher = nil
		return err
	}

	go s.watchLoop()
	return nil
}

func (s *Service) watchLoop() {
	base := filepath.Base(s.path)

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				s.mu.Lock()
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(s.debounce, s.handleFileChange)
				s.mu.Unlock()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("file watcher error", "path", s.path, "error", err)
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Service) handleFileChange() {
	if s.ctx.Err() != nil {
		return
	}
	logger.Debug("log file changed, reloading", "path", s.path)
	_ = s.reloadOnChange()
}

// sendEvent sends an event without blocking, dropping the oldest queued
// event when the channel is full.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
