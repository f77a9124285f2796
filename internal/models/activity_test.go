package models

import (
	"testing"
	"time"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		name string
		s    Status
		want string
	}{
		{"Success", StatusSuccess, "success"},
		{"Failure", StatusFailure, "failure"},
		{"Unknown", StatusUnknown, "unknown"},
		{"Other", Status(7), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.String(); got != tt.want {
				t.Errorf("Status.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewActivityTable_CopiesRecords(t *testing.T) {
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	records := []ActivityRecord{
		{Timestamp: ts, HasTime: true, Mode: "scan", Status: StatusSuccess},
		{Mode: "scan", Status: StatusFailure},
	}
	loadedAt := time.Now()

	table := NewActivityTable("log.csv", records, loadedAt)
	records[0].Mode = "mutated"

	if table.At(0).Mode != "scan" {
		t.Error("table should not observe caller mutations")
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
	if table.InvalidTimestamps() != 1 {
		t.Errorf("InvalidTimestamps() = %d, want 1", table.InvalidTimestamps())
	}
	if table.Source() != "log.csv" {
		t.Errorf("Source() = %q", table.Source())
	}
	if !table.LoadedAt().Equal(loadedAt) {
		t.Error("LoadedAt mismatch")
	}
}

func TestActivityTable_All(t *testing.T) {
	table := NewActivityTable("", []ActivityRecord{{Mode: "a"}, {Mode: "b"}, {Mode: "c"}}, time.Time{})

	var modes []string
	for i, r := range table.All() {
		if i == 2 {
			break
		}
		modes = append(modes, r.Mode)
	}
	if len(modes) != 2 || modes[0] != "a" || modes[1] != "b" {
		t.Errorf("All() yielded %v, want [a b]", modes)
	}
}

func TestActivityTable_Nil(t *testing.T) {
	var table *ActivityTable
	if table.Len() != 0 {
		t.Error("nil table should have no records")
	}
	if table.InvalidTimestamps() != 0 {
		t.Error("nil table should have no invalid timestamps")
	}
	for range table.All() {
		t.Fatal("nil table should not yield records")
	}
	if table.Source() != "" || !table.LoadedAt().IsZero() {
		t.Error("nil table metadata should be empty")
	}
}

func TestWeekdayIndex(t *testing.T) {
	if got := WeekdayIndex(time.Monday); got != 0 {
		t.Errorf("WeekdayIndex(Monday) = %d, want 0", got)
	}
	if got := WeekdayIndex(time.Sunday); got != 6 {
		t.Errorf("WeekdayIndex(Sunday) = %d, want 6", got)
	}
	if Weekdays[WeekdayIndex(time.Wednesday)] != "Wednesday" {
		t.Error("Weekdays and WeekdayIndex disagree")
	}
}

func TestSortOrder(t *testing.T) {
	if SortDescending.String() != "Descending" || SortAscending.String() != "Ascending" {
		t.Error("unexpected SortOrder names")
	}
	if SortDescending.Toggle() != SortAscending || SortAscending.Toggle() != SortDescending {
		t.Error("Toggle should flip the order")
	}
}

func TestHeatmap_Max(t *testing.T) {
	var h Heatmap
	if h.Max() != 0 {
		t.Error("empty heatmap max should be 0")
	}
	h[3][14] = 9
	h[6][0] = 4
	if h.Max() != 9 {
		t.Errorf("Max() = %d, want 9", h.Max())
	}
	if (Heatmap{}).Max() != 0 {
		t.Error("Max should be callable on a heatmap value")
	}
}

func TestFailureBucket_Share(t *testing.T) {
	b := FailureBucket{Mode: "scan", Count: 3}
	if got := b.Share(12); got != 0.25 {
		t.Errorf("Share() = %v, want 0.25", got)
	}
	if got := b.Share(0); got != 0 {
		t.Errorf("Share(0) = %v, want 0", got)
	}
}
