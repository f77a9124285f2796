// Package main is the entry point for the activity log dashboard.
// It loads configuration, reads the log file and runs the Bubble Tea program.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-log-dashboard/internal/app"
	"github.com/j-veylop/activity-log-dashboard/internal/config"
	"github.com/j-veylop/activity-log-dashboard/internal/logger"
	"github.com/j-veylop/activity-log-dashboard/internal/services"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/tabs/activity"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/tabs/failures"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/tabs/info"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/tabs/overview"
	"github.com/j-veylop/activity-log-dashboard/internal/version"
)

// command is what the arguments ask the program to do.
type command struct {
	showHelp    bool
	showVersion bool
	logPath     string
}

var errTooManyArgs = errors.New("expected at most one log file path")

func parseArgs(args []string) (command, error) {
	var cmd command
	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			cmd.showHelp = true
		case arg == "-v" || arg == "--version":
			cmd.showVersion = true
		case strings.HasPrefix(arg, "-"):
			return cmd, fmt.Errorf("unknown flag %q", arg)
		case cmd.logPath != "":
			return cmd, errTooManyArgs
		default:
			cmd.logPath = arg
		}
	}
	return cmd, nil
}

func main() {
	cmd, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage()
		os.Exit(2)
	}

	if cmd.showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if cmd.showHelp {
		printUsage()
		os.Exit(0)
	}

	if err := run(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run(cmd command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.logPath != "" {
		cfg.LogPath = cmd.logPath
	}

	closer, err := logger.Init(cfg.DiagnosticsPath, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to open diagnostics log: %w", err)
	}
	defer closer.Close()

	logger.Info("starting", "version", version.GetVersion(), "log", cfg.LogPath)

	// A log file that cannot be read stops the program before the TUI starts.
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		logger.Error("initial load failed", "error", err)
		return err
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	state := model.GetState()
	model.SetTabs([]app.Tab{
		overview.New(state),
		activity.New(state),
		failures.New(state),
		info.New(state, cfg),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	logger.Info("exiting")
	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`logdash - activity log analytics in the terminal

Usage:
  logdash [flags] [path]

Arguments:
  path            CSV or JSONL activity log (overrides ACTIVITY_LOG_PATH)

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch between tabs (Overview, Activity, Failures, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Scroll or move through tables
  s               Toggle mode table sort order (Overview)
  r               Reload the log file
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  ACTIVITY_LOG_PATH        Log file path (default: ./log.csv)
  ACTIVITY_LOG_WATCH       Reload when the file changes (default: true)
  ACTIVITY_LOG_TIMEZONE    IANA zone for hours and weekdays (default: offsets as written, else Local)
  FAILURE_ALERT_THRESHOLD  Desktop alert above this failure rate, 0 disables (default: 25)
  LOG_FILE                 Diagnostic log file (default: ~/.config/logdash/logdash.log)
  LOG_LEVEL                debug, info, warn or error (default: info)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/logdash/.env
  - ~/.logdash/.env
  - Parent directory`)
}
