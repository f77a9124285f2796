// Package analytics computes dashboard aggregations over an activity table.
package analytics

import (
	"cmp"
	"maps"
	"slices"

	"github.com/j-veylop/activity-log-dashboard/internal/models"
)

// topHourCount is how many of the largest hourly counts are highlighted.
const topHourCount = 5

// otherThresholdPercent is the failure share below which a mode is merged
// into the Other bucket.
const otherThresholdPercent = 3

// Aggregator computes aggregations over one immutable table. Every method is
// a pure function of the table; a nil or empty table yields zero values.
type Aggregator struct {
	table *models.ActivityTable
}

// New returns an Aggregator over table.
func New(table *models.ActivityTable) *Aggregator {
	return &Aggregator{table: table}
}

// Table returns the table being aggregated.
func (a *Aggregator) Table() *models.ActivityTable {
	return a.table
}

// TopLineMetrics returns the headline numbers. Ties for the peak hour go to
// the smallest hour and ties for the peak weekday go to the earliest day of
// the week, Monday first.
func (a *Aggregator) TopLineMetrics() models.TopLineMetrics {
	var (
		m     models.TopLineMetrics
		modes = map[string]struct{}{}
		hours [24]int
		days  [7]int
		dated int
	)

	for _, r := range a.table.All() {
		m.TotalCount++
		if r.HasMode() {
			modes[r.Mode] = struct{}{}
		}
		if r.HasTime {
			dated++
			hours[r.Timestamp.Hour()]++
			days[models.WeekdayIndex(r.Timestamp.Weekday())]++
		}
	}
	m.DistinctModes = len(modes)

	if dated == 0 {
		return m
	}

	m.HasPeak = true
	m.PeakHour, m.PeakHourCount = argmax(hours[:])
	day, count := argmax(days[:])
	m.PeakWeekdayName = models.Weekdays[day]
	m.PeakWeekdayCount = count
	return m
}

// argmax returns the first index holding the largest value.
func argmax(values []int) (int, int) {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best, values[best]
}

// MonthlySeries returns record counts per calendar month, oldest first.
func (a *Aggregator) MonthlySeries() []models.PeriodCount {
	counts := map[string]int{}
	for _, r := range a.table.All() {
		if r.HasTime {
			counts[r.Timestamp.Format("2006-01")]++
		}
	}

	series := make([]models.PeriodCount, 0, len(counts))
	for _, period := range slices.Sorted(maps.Keys(counts)) {
		series = append(series, models.PeriodCount{Period: period, Count: counts[period]})
	}
	return series
}

// HourlyDayHeatmap returns counts by weekday and hour of day.
func (a *Aggregator) HourlyDayHeatmap() models.Heatmap {
	var h models.Heatmap
	for _, r := range a.table.All() {
		if r.HasTime {
			h[models.WeekdayIndex(r.Timestamp.Weekday())][r.Timestamp.Hour()]++
		}
	}
	return h
}

// HourlyCounts returns counts for each observed hour, ascending.
func (a *Aggregator) HourlyCounts() []models.HourCount {
	var hours [24]int
	for _, r := range a.table.All() {
		if r.HasTime {
			hours[r.Timestamp.Hour()]++
		}
	}
	return observedHours(hours)
}

func observedHours(hours [24]int) []models.HourCount {
	var out []models.HourCount
	for h, c := range hours {
		if c > 0 {
			out = append(out, models.HourCount{Hour: h, Count: c})
		}
	}
	return out
}

// DayOfWeekCounts returns counts for every weekday, Monday first.
func (a *Aggregator) DayOfWeekCounts() [7]models.WeekdayCount {
	var days [7]int
	for _, r := range a.table.All() {
		if r.HasTime {
			days[models.WeekdayIndex(r.Timestamp.Weekday())]++
		}
	}
	return weekdaySeries(days)
}

func weekdaySeries(days [7]int) [7]models.WeekdayCount {
	var out [7]models.WeekdayCount
	for i, c := range days {
		out[i] = models.WeekdayCount{Day: models.Weekdays[i], Count: c}
	}
	return out
}

// ModeCounts returns the number of records per mode. Records without a mode
// are not counted.
func (a *Aggregator) ModeCounts(order models.SortOrder) []models.ModeCount {
	counts := map[string]int{}
	for _, r := range a.table.All() {
		if r.HasMode() {
			counts[r.Mode]++
		}
	}

	out := make([]models.ModeCount, 0, len(counts))
	for mode, c := range counts {
		out = append(out, models.ModeCount{Mode: mode, Count: c})
	}
	return SortModeCounts(out, order)
}

// SortModeCounts sorts counts in place by count in the given order, breaking
// ties by mode name, and returns the slice.
func SortModeCounts(counts []models.ModeCount, order models.SortOrder) []models.ModeCount {
	slices.SortFunc(counts, func(x, y models.ModeCount) int {
		c := cmp.Compare(y.Count, x.Count)
		if order == models.SortAscending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(x.Mode, y.Mode)
	})
	return counts
}

// HourlyBarCounts returns the hourly bar chart data. A bar is highlighted
// when its count equals one of the five largest counts.
func (a *Aggregator) HourlyBarCounts() models.HourlyBars {
	hours := a.HourlyCounts()

	values := make([]int, len(hours))
	for i, h := range hours {
		values[i] = h.Count
	}
	slices.Sort(values)
	slices.Reverse(values)

	top := map[int]bool{}
	for _, v := range values[:min(topHourCount, len(values))] {
		top[v] = true
	}

	bars := models.HourlyBars{Bars: make([]models.HourBar, 0, len(hours))}
	for _, h := range hours {
		bars.Bars = append(bars.Bars, models.HourBar{Hour: h.Hour, Count: h.Count, Highlight: top[h.Count]})
	}
	return bars
}

// FailureBreakdown groups failed records by mode, largest first. Modes below
// three percent of all failures are merged into a trailing Other bucket,
// which is present whenever there is at least one failure.
func (a *Aggregator) FailureBreakdown() models.FailureBreakdown {
	counts := map[string]int{}
	total := 0
	for _, r := range a.table.All() {
		if r.Status == models.StatusFailure && r.HasMode() {
			counts[r.Mode]++
			total++
		}
	}
	if total == 0 {
		return models.FailureBreakdown{}
	}

	modes := make([]models.ModeCount, 0, len(counts))
	for mode, c := range counts {
		modes = append(modes, models.ModeCount{Mode: mode, Count: c})
	}
	SortModeCounts(modes, models.SortDescending)

	out := models.FailureBreakdown{Total: total}
	other := models.FailureBucket{Mode: models.OtherFailuresLabel, Other: true}
	for _, m := range modes {
		if m.Count*100 < otherThresholdPercent*total {
			other.Count += m.Count
			continue
		}
		out.Buckets = append(out.Buckets, models.FailureBucket{Mode: m.Mode, Count: m.Count})
	}
	out.Buckets = append(out.Buckets, other)
	return out
}

// SuccessFailureRates returns per-mode success and failure percentages,
// highest success rate first. Modes with no success or failure records are
// omitted.
func (a *Aggregator) SuccessFailureRates() []models.ModeRate {
	type tally struct{ ok, failed int }
	byMode := map[string]*tally{}
	for _, r := range a.table.All() {
		if !r.HasMode() {
			continue
		}
		t := byMode[r.Mode]
		if t == nil {
			t = &tally{}
			byMode[r.Mode] = t
		}
		switch r.Status {
		case models.StatusSuccess:
			t.ok++
		case models.StatusFailure:
			t.failed++
		}
	}

	rates := make([]models.ModeRate, 0, len(byMode))
	for mode, t := range byMode {
		total := t.ok + t.failed
		if total == 0 {
			continue
		}
		rates = append(rates, models.ModeRate{
			Mode:        mode,
			Successes:   t.ok,
			Failures:    t.failed,
			Total:       total,
			SuccessRate: percent(t.ok, total),
			FailureRate: percent(t.failed, total),
		})
	}

	slices.SortFunc(rates, func(x, y models.ModeRate) int {
		if c := cmp.Compare(y.SuccessRate, x.SuccessRate); c != 0 {
			return c
		}
		return cmp.Compare(x.Mode, y.Mode)
	})
	return rates
}

// OverallRates returns success and failure percentages over every record.
func (a *Aggregator) OverallRates() models.OverallRates {
	var o models.OverallRates
	for _, r := range a.table.All() {
		o.Total++
		switch r.Status {
		case models.StatusSuccess:
			o.Successes++
		case models.StatusFailure:
			o.Failures++
		}
	}
	o.SuccessRate = percent(o.Successes, o.Total)
	o.FailureRate = percent(o.Failures, o.Total)
	return o
}

// FailuresByDayAndHour returns failed records with a valid timestamp counted
// by weekday and by observed hour.
func (a *Aggregator) FailuresByDayAndHour() models.FailureDistribution {
	var (
		days  [7]int
		hours [24]int
	)
	for _, r := range a.table.All() {
		if r.Status != models.StatusFailure || !r.HasTime {
			continue
		}
		days[models.WeekdayIndex(r.Timestamp.Weekday())]++
		hours[r.Timestamp.Hour()]++
	}

	return models.FailureDistribution{
		ByWeekday:  weekdaySeries(days),
		ByHour:     observedHours(hours),
		MaxWeekday: slices.Max(days[:]),
		MaxHour:    slices.Max(hours[:]),
	}
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
