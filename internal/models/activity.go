// Package models defines data structures and domain types.
package models

import (
	"iter"
	"time"
)

// Status is the outcome code of an activity record.
type Status int

const (
	// StatusUnknown marks a status value that could not be parsed.
	StatusUnknown Status = -1
	// StatusSuccess is a successful activity.
	StatusSuccess Status = 0
	// StatusFailure is a failed activity.
	StatusFailure Status = 1
)

// String returns the display name for a status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ActivityRecord is one row of the activity log.
type ActivityRecord struct {
	Timestamp time.Time
	Mode      string
	Status    Status
	// HasTime is false when the timestamp could not be parsed.
	HasTime bool
}

// HasMode reports whether the record carries a mode label.
func (r ActivityRecord) HasMode() bool {
	return r.Mode != ""
}

// ActivityTable is an immutable, ordered set of activity records loaded from
// a single log file. A reload produces a new table.
type ActivityTable struct {
	loadedAt          time.Time
	source            string
	records           []ActivityRecord
	invalidTimestamps int
}

// NewActivityTable builds a table from records. The slice is copied so later
// changes by the caller cannot leak into the table.
func NewActivityTable(source string, records []ActivityRecord, loadedAt time.Time) *ActivityTable {
	owned := make([]ActivityRecord, len(records))
	copy(owned, records)

	invalid := 0
	for _, r := range owned {
		if !r.HasTime {
			invalid++
		}
	}

	return &ActivityTable{
		loadedAt:          loadedAt,
		source:            source,
		records:           owned,
		invalidTimestamps: invalid,
	}
}

// Len returns the number of records. A nil table has no records.
func (t *ActivityTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns the record at index i.
func (t *ActivityTable) At(i int) ActivityRecord {
	return t.records[i]
}

// All iterates over the records in file order.
func (t *ActivityTable) All() iter.Seq2[int, ActivityRecord] {
	return func(yield func(int, ActivityRecord) bool) {
		if t == nil {
			return
		}
		for i, r := range t.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// InvalidTimestamps returns the number of records without a usable timestamp.
func (t *ActivityTable) InvalidTimestamps() int {
	if t == nil {
		return 0
	}
	return t.invalidTimestamps
}

// Source returns the path the table was loaded from.
func (t *ActivityTable) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}

// LoadedAt returns when the table was loaded.
func (t *ActivityTable) LoadedAt() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.loadedAt
}
