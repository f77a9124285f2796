package models

import "time"

// Weekdays lists day names in display order, Monday first.
var Weekdays = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayIndex converts a time.Weekday into a Monday-first index (0-6).
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// SortOrder selects ascending or descending ordering for count tables.
type SortOrder int

const (
	// SortDescending orders largest counts first.
	SortDescending SortOrder = iota
	// SortAscending orders smallest counts first.
	SortAscending
)

// String returns the display name for a sort order.
func (o SortOrder) String() string {
	if o == SortAscending {
		return "Ascending"
	}
	return "Descending"
}

// Toggle flips the sort order.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// TopLineMetrics are the headline numbers of the dashboard.
type TopLineMetrics struct {
	PeakWeekdayName  string
	TotalCount       int
	DistinctModes    int
	PeakHour         int
	PeakHourCount    int
	PeakWeekdayCount int
	// HasPeak is false when no record has a valid timestamp; the peak
	// fields are then zero.
	HasPeak bool
}

// PeriodCount is the number of records in one calendar month ("2006-01").
type PeriodCount struct {
	Period string
	Count  int
}

// HourCount is the number of records in one hour of the day (0-23).
type HourCount struct {
	Hour  int
	Count int
}

// WeekdayCount is the number of records on one weekday.
type WeekdayCount struct {
	Day   string
	Count int
}

// ModeCount is the number of records with a given mode.
type ModeCount struct {
	Mode  string
	Count int
}

// Heatmap holds counts by weekday (rows, Monday first) and hour (columns).
type Heatmap [7][24]int

// Max returns the largest cell value.
func (h Heatmap) Max() int {
	peak := 0
	for _, row := range h {
		for _, v := range row {
			peak = max(peak, v)
		}
	}
	return peak
}

// HourBar is one bar of the hourly activity chart.
type HourBar struct {
	Hour      int
	Count     int
	Highlight bool
}

// HourlyBars is the hourly activity chart data, observed hours ascending.
type HourlyBars struct {
	Bars []HourBar
}

// OtherFailuresLabel names the bucket that collects small failure categories.
const OtherFailuresLabel = "Other (all <3% error)"

// FailureBucket is one slice of the failure breakdown.
type FailureBucket struct {
	Mode  string
	Count int
	Other bool
}

// Share returns the bucket's fraction of total, or 0 when total is 0.
func (b FailureBucket) Share(total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(b.Count) / float64(total)
}

// FailureBreakdown groups failures by mode with small categories merged.
type FailureBreakdown struct {
	Buckets []FailureBucket
	Total   int
}

// ModeRate is the success and failure rate of one mode.
type ModeRate struct {
	Mode        string
	Successes   int
	Failures    int
	Total       int
	SuccessRate float64
	FailureRate float64
}

// OverallRates are success and failure rates over every record.
type OverallRates struct {
	Total       int
	Successes   int
	Failures    int
	SuccessRate float64
	FailureRate float64
}

// FailureDistribution is the failure count by weekday and by hour.
type FailureDistribution struct {
	ByWeekday  [7]WeekdayCount
	ByHour     []HourCount
	MaxWeekday int
	MaxHour    int
}
