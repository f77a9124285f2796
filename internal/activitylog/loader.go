// Package activitylog reads activity log files into immutable activity tables.
package activitylog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/j-veylop/activity-log-dashboard/internal/logger"
	"github.com/j-veylop/activity-log-dashboard/internal/models"
)

// Column names every log file must provide.
const (
	ColumnTimestamp = "timestamp"
	ColumnMode      = "mode"
	ColumnStatus    = "status"
)

// maxRetainedWarnings caps the warnings kept in a Report; the counters still
// cover every row.
const maxRetainedWarnings = 20

var (
	// ErrMissingColumns is returned when a required column is absent.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrEmptyFile is returned when the file has no header or no content.
	ErrEmptyFile = errors.New("file is empty")
)

// LoadError is the fatal error returned when a log file cannot be turned into
// a table. No partial table accompanies it.
type LoadError struct {
	Err  error
	Path string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseWarning describes a row value that could not be parsed. The row is
// kept; only the offending field is degraded.
type ParseWarning struct {
	Field string
	Value string
	Line  int
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d: unparseable %s %q", w.Line, w.Field, w.Value)
}

// Report summarizes a load.
type Report struct {
	Format            string
	Warnings          []ParseWarning
	Rows              int
	InvalidTimestamps int
	InvalidStatuses   int
	SkippedLines      int
}

// WarningCount returns the total number of degraded values and skipped lines.
func (r *Report) WarningCount() int {
	if r == nil {
		return 0
	}
	return r.InvalidTimestamps + r.InvalidStatuses + r.SkippedLines
}

func (r *Report) warn(w ParseWarning) {
	switch w.Field {
	case ColumnTimestamp:
		r.InvalidTimestamps++
	case ColumnStatus:
		r.InvalidStatuses++
	default:
		r.SkippedLines++
	}
	if len(r.Warnings) < maxRetainedWarnings {
		r.Warnings = append(r.Warnings, w)
	}
}

// Load reads the log file at path. Timestamps are placed in loc as
// ParseTimestamp does; nil keeps explicit offsets. The format is chosen from
// the file extension: .jsonl and .ndjson are read as JSON lines, anything
// else as CSV.
func Load(path string, loc *time.Location) (*models.ActivityTable, *Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	report := &Report{}
	var records []models.ActivityRecord

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		report.Format = "jsonl"
		records, err = readJSONL(f, loc, report)
	default:
		report.Format = "csv"
		records, err = readCSV(f, loc, report)
	}
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}

	report.Rows = len(records)
	if report.WarningCount() > 0 {
		logger.Warn("activity log contains unparseable values",
			"path", path,
			"rows", report.Rows,
			"invalid_timestamps", report.InvalidTimestamps,
			"invalid_statuses", report.InvalidStatuses,
			"skipped_lines", report.SkippedLines,
		)
	}
	logger.Info("activity log loaded", "path", path, "format", report.Format, "rows", report.Rows)

	return models.NewActivityTable(path, records, time.Now()), report, nil
}

// buildRecord converts raw field values into a record, recording a warning
// for each value that does not parse.
func buildRecord(line int, rawTime, mode, rawStatus string, loc *time.Location, report *Report) models.ActivityRecord {
	rec := models.ActivityRecord{
		Mode:   strings.TrimSpace(mode),
		Status: models.StatusUnknown,
	}

	if ts, ok := ParseTimestamp(rawTime, loc); ok {
		rec.Timestamp = ts
		rec.HasTime = true
	} else {
		report.warn(ParseWarning{Line: line, Field: ColumnTimestamp, Value: rawTime})
	}

	if status, ok := ParseStatus(rawStatus); ok {
		rec.Status = status
	} else {
		report.warn(ParseWarning{Line: line, Field: ColumnStatus, Value: rawStatus})
	}

	return rec
}
