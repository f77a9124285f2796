package analytics

import (
	"time"

	"github.com/j-veylop/activity-log-dashboard/internal/models"
)

// Report bundles every aggregation of one table so the dashboard can render
// without recomputing on each frame.
type Report struct {
	GeneratedAt       time.Time
	LoadedAt          time.Time
	Source            string
	TopLine           models.TopLineMetrics
	Monthly           []models.PeriodCount
	Hourly            []models.HourCount
	Modes             []models.ModeCount
	Rates             []models.ModeRate
	HourlyBars        models.HourlyBars
	Breakdown         models.FailureBreakdown
	Failures          models.FailureDistribution
	Overall           models.OverallRates
	DayOfWeek         [7]models.WeekdayCount
	Heatmap           models.Heatmap
	Rows              int
	InvalidTimestamps int
}

// Report computes every aggregation of the table.
func (a *Aggregator) Report() *Report {
	return &Report{
		GeneratedAt:       time.Now(),
		LoadedAt:          a.table.LoadedAt(),
		Source:            a.table.Source(),
		TopLine:           a.TopLineMetrics(),
		Monthly:           a.MonthlySeries(),
		Hourly:            a.HourlyCounts(),
		Modes:             a.ModeCounts(models.SortDescending),
		Rates:             a.SuccessFailureRates(),
		HourlyBars:        a.HourlyBarCounts(),
		Breakdown:         a.FailureBreakdown(),
		Failures:          a.FailuresByDayAndHour(),
		Overall:           a.OverallRates(),
		DayOfWeek:         a.DayOfWeekCounts(),
		Heatmap:           a.HourlyDayHeatmap(),
		Rows:              a.table.Len(),
		InvalidTimestamps: a.table.InvalidTimestamps(),
	}
}

// SortedModes returns a copy of the mode counts in the given order.
func (r *Report) SortedModes(order models.SortOrder) []models.ModeCount {
	if r == nil {
		return nil
	}
	out := make([]models.ModeCount, len(r.Modes))
	copy(out, r.Modes)
	return SortModeCounts(out, order)
}

// Empty reports whether the report covers no records.
func (r *Report) Empty() bool {
	return r == nil || r.Rows == 0
}
