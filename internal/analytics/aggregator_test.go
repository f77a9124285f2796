package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/j-veylop/activity-log-dashboard/internal/models"
)

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func rec(ts time.Time, mode string, status models.Status) models.ActivityRecord {
	return models.ActivityRecord{Timestamp: ts, HasTime: true, Mode: mode, Status: status}
}

func undated(mode string, status models.Status) models.ActivityRecord {
	return models.ActivityRecord{Mode: mode, Status: status}
}

func table(records ...models.ActivityRecord) *models.ActivityTable {
	return models.NewActivityTable("test.csv", records, time.Time{})
}

// 2024-01-01 is a Monday.
func sampleTable() *models.ActivityTable {
	return table(
		rec(at(2024, 1, 1, 9, 0), "scan", models.StatusSuccess),
		rec(at(2024, 1, 1, 9, 30), "scan", models.StatusFailure),
		rec(at(2024, 1, 2, 10, 0), "upload", models.StatusSuccess),
	)
}

func TestTopLineMetrics_Sample(t *testing.T) {
	got := New(sampleTable()).TopLineMetrics()
	want := models.TopLineMetrics{
		TotalCount:       3,
		DistinctModes:    2,
		PeakHour:         9,
		PeakHourCount:    2,
		PeakWeekdayName:  "Monday",
		PeakWeekdayCount: 2,
		HasPeak:          true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopLineMetrics() mismatch (-want +got):\n%s", diff)
	}
}

func TestTopLineMetrics_TiesPickSmallestKey(t *testing.T) {
	// One record each on Wednesday 14:00 and Tuesday 07:00.
	got := New(table(
		rec(at(2024, 1, 3, 14, 0), "a", models.StatusSuccess),
		rec(at(2024, 1, 2, 7, 0), "b", models.StatusSuccess),
	)).TopLineMetrics()

	if got.PeakHour != 7 || got.PeakHourCount != 1 {
		t.Errorf("peak hour = %d (%d), want 7 (1)", got.PeakHour, got.PeakHourCount)
	}
	if got.PeakWeekdayName != "Tuesday" {
		t.Errorf("peak weekday = %q, want Tuesday", got.PeakWeekdayName)
	}
}

func TestTopLineMetrics_NoValidTimestamps(t *testing.T) {
	got := New(table(undated("scan", models.StatusSuccess), undated("", models.StatusFailure))).TopLineMetrics()
	want := models.TopLineMetrics{TotalCount: 2, DistinctModes: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopLineMetrics() mismatch (-want +got):\n%s", diff)
	}
}

func TestMonthlySeries(t *testing.T) {
	got := New(table(
		rec(at(2024, 3, 5, 1, 0), "a", models.StatusSuccess),
		rec(at(2023, 12, 31, 23, 0), "a", models.StatusSuccess),
		rec(at(2024, 3, 20, 1, 0), "a", models.StatusSuccess),
		undated("a", models.StatusSuccess),
		rec(at(2024, 1, 1, 0, 0), "a", models.StatusSuccess),
	)).MonthlySeries()

	want := []models.PeriodCount{
		{Period: "2023-12", Count: 1},
		{Period: "2024-01", Count: 1},
		{Period: "2024-03", Count: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MonthlySeries() mismatch (-want +got):\n%s", diff)
	}
}

func TestHourlyDayHeatmap(t *testing.T) {
	h := New(table(
		rec(at(2024, 1, 1, 9, 0), "a", models.StatusSuccess),
		rec(at(2024, 1, 1, 9, 59), "a", models.StatusSuccess),
		rec(at(2024, 1, 7, 23, 0), "a", models.StatusSuccess),
		undated("a", models.StatusSuccess),
	)).HourlyDayHeatmap()

	if h[0][9] != 2 {
		t.Errorf("Monday 09 = %d, want 2", h[0][9])
	}
	if h[6][23] != 1 {
		t.Errorf("Sunday 23 = %d, want 1", h[6][23])
	}
	total := 0
	for _, row := range h {
		for _, v := range row {
			total += v
		}
	}
	if total != 3 {
		t.Errorf("heatmap total = %d, want 3", total)
	}
}

func TestHourlyCounts_SumEqualsDatedRows(t *testing.T) {
	tbl := table(
		rec(at(2024, 1, 1, 0, 0), "a", models.StatusSuccess),
		rec(at(2024, 1, 1, 5, 0), "a", models.StatusFailure),
		rec(at(2024, 1, 2, 5, 0), "b", models.StatusSuccess),
		undated("a", models.StatusSuccess),
		rec(at(2024, 1, 3, 23, 0), "", models.StatusUnknown),
	)

	got := New(tbl).HourlyCounts()
	want := []models.HourCount{{Hour: 0, Count: 1}, {Hour: 5, Count: 2}, {Hour: 23, Count: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("HourlyCounts() mismatch (-want +got):\n%s", diff)
	}

	sum := 0
	for _, h := range got {
		sum += h.Count
	}
	if sum != tbl.Len()-tbl.InvalidTimestamps() {
		t.Errorf("hourly sum = %d, want %d", sum, tbl.Len()-tbl.InvalidTimestamps())
	}
}

func TestDayOfWeekCounts(t *testing.T) {
	got := New(sampleTable()).DayOfWeekCounts()
	if got[0] != (models.WeekdayCount{Day: "Monday", Count: 2}) {
		t.Errorf("Monday = %+v", got[0])
	}
	if got[1] != (models.WeekdayCount{Day: "Tuesday", Count: 1}) {
		t.Errorf("Tuesday = %+v", got[1])
	}
	if got[6] != (models.WeekdayCount{Day: "Sunday", Count: 0}) {
		t.Errorf("Sunday = %+v", got[6])
	}
}

func TestModeCounts(t *testing.T) {
	tbl := table(
		undated("b", models.StatusSuccess),
		undated("a", models.StatusSuccess),
		undated("c", models.StatusSuccess),
		undated("c", models.StatusSuccess),
		undated("", models.StatusSuccess),
	)

	tests := []struct {
		name  string
		order models.SortOrder
		want  []models.ModeCount
	}{
		{"Descending", models.SortDescending, []models.ModeCount{{Mode: "c", Count: 2}, {Mode: "a", Count: 1}, {Mode: "b", Count: 1}}},
		{"Ascending", models.SortAscending, []models.ModeCount{{Mode: "a", Count: 1}, {Mode: "b", Count: 1}, {Mode: "c", Count: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, New(tbl).ModeCounts(tt.order)); diff != "" {
				t.Errorf("ModeCounts() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHourlyBarCounts_HighlightsTopFiveValues(t *testing.T) {
	counts := map[int]int{1: 10, 2: 9, 3: 9, 4: 8, 5: 7, 6: 7, 7: 3}
	var records []models.ActivityRecord
	for hour, n := range counts {
		for range n {
			records = append(records, rec(at(2024, 1, 1, hour, 0), "a", models.StatusSuccess))
		}
	}

	got := New(table(records...)).HourlyBarCounts()
	want := models.HourlyBars{Bars: []models.HourBar{
		{Hour: 1, Count: 10, Highlight: true},
		{Hour: 2, Count: 9, Highlight: true},
		{Hour: 3, Count: 9, Highlight: true},
		{Hour: 4, Count: 8, Highlight: true},
		{Hour: 5, Count: 7, Highlight: true},
		{Hour: 6, Count: 7, Highlight: true},
		{Hour: 7, Count: 3, Highlight: false},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("HourlyBarCounts() mismatch (-want +got):\n%s", diff)
	}
}

func TestHourlyBarCounts_FewHoursAllHighlighted(t *testing.T) {
	got := New(sampleTable()).HourlyBarCounts()
	for _, b := range got.Bars {
		if !b.Highlight {
			t.Errorf("hour %d should be highlighted", b.Hour)
		}
	}
}

func failures(mode string, n int) []models.ActivityRecord {
	out := make([]models.ActivityRecord, n)
	for i := range out {
		out[i] = undated(mode, models.StatusFailure)
	}
	return out
}

func TestFailureBreakdown_MergesSmallModes(t *testing.T) {
	var records []models.ActivityRecord
	records = append(records, failures("A", 1)...)
	records = append(records, failures("B", 1)...)
	records = append(records, failures("C", 98)...)

	got := New(table(records...)).FailureBreakdown()
	want := models.FailureBreakdown{
		Total: 100,
		Buckets: []models.FailureBucket{
			{Mode: "C", Count: 98},
			{Mode: models.OtherFailuresLabel, Count: 2, Other: true},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FailureBreakdown() mismatch (-want +got):\n%s", diff)
	}
}

func TestFailureBreakdown_ExactlyThreePercentStays(t *testing.T) {
	var records []models.ActivityRecord
	records = append(records, failures("edge", 3)...)
	records = append(records, failures("bulk", 97)...)
	records = append(records, undated("bulk", models.StatusSuccess))

	got := New(table(records...)).FailureBreakdown()
	want := models.FailureBreakdown{
		Total: 100,
		Buckets: []models.FailureBucket{
			{Mode: "bulk", Count: 97},
			{Mode: "edge", Count: 3},
			{Mode: models.OtherFailuresLabel, Count: 0, Other: true},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FailureBreakdown() mismatch (-want +got):\n%s", diff)
	}
}

func TestFailureBreakdown_NoFailures(t *testing.T) {
	got := New(table(undated("a", models.StatusSuccess))).FailureBreakdown()
	if diff := cmp.Diff(models.FailureBreakdown{}, got); diff != "" {
		t.Errorf("FailureBreakdown() mismatch (-want +got):\n%s", diff)
	}
}

func TestFailureBreakdown_BucketsSumToTotal(t *testing.T) {
	var records []models.ActivityRecord
	for i, n := range []int{40, 20, 10, 2, 1, 1, 1} {
		records = append(records, failures(string(rune('a'+i)), n)...)
	}

	got := New(table(records...)).FailureBreakdown()
	sum := 0
	for _, b := range got.Buckets {
		sum += b.Count
	}
	if sum != got.Total || got.Total != 75 {
		t.Errorf("bucket sum = %d, total = %d, want 75", sum, got.Total)
	}
}

func TestSuccessFailureRates_Sample(t *testing.T) {
	got := New(sampleTable()).SuccessFailureRates()
	want := []models.ModeRate{
		{Mode: "upload", Successes: 1, Failures: 0, Total: 1, SuccessRate: 100, FailureRate: 0},
		{Mode: "scan", Successes: 1, Failures: 1, Total: 2, SuccessRate: 50, FailureRate: 50},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SuccessFailureRates() mismatch (-want +got):\n%s", diff)
	}
}

func TestSuccessFailureRates_SumToHundred(t *testing.T) {
	tbl := table(
		undated("a", models.StatusSuccess),
		undated("a", models.StatusFailure),
		undated("a", models.StatusFailure),
		undated("b", models.StatusSuccess),
		undated("b", models.StatusSuccess),
		undated("b", models.StatusSuccess),
		undated("b", models.StatusFailure),
		undated("c", models.StatusUnknown),
		undated("d", models.Status(2)),
	)

	rates := New(tbl).SuccessFailureRates()
	if len(rates) != 2 {
		t.Fatalf("len(rates) = %d, want 2 (modes without outcomes omitted)", len(rates))
	}
	for _, r := range rates {
		if math.Abs(r.SuccessRate+r.FailureRate-100) > 1e-9 {
			t.Errorf("%s: %v + %v != 100", r.Mode, r.SuccessRate, r.FailureRate)
		}
	}
	if rates[0].Mode != "b" {
		t.Errorf("highest success rate = %q, want b", rates[0].Mode)
	}
}

func TestOverallRates(t *testing.T) {
	tbl := table(
		undated("a", models.StatusSuccess),
		undated("a", models.StatusFailure),
		undated("a", models.StatusUnknown),
		undated("b", models.StatusSuccess),
	)
	got := New(tbl).OverallRates()
	want := models.OverallRates{Total: 4, Successes: 2, Failures: 1, SuccessRate: 50, FailureRate: 25}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OverallRates() mismatch (-want +got):\n%s", diff)
	}
}

func TestFailuresByDayAndHour(t *testing.T) {
	tbl := table(
		rec(at(2024, 1, 1, 9, 0), "a", models.StatusFailure),
		rec(at(2024, 1, 1, 9, 10), "a", models.StatusFailure),
		rec(at(2024, 1, 3, 14, 0), "a", models.StatusFailure),
		rec(at(2024, 1, 3, 14, 0), "a", models.StatusSuccess),
		undated("a", models.StatusFailure),
	)

	got := New(tbl).FailuresByDayAndHour()
	if got.ByWeekday[0].Count != 2 || got.ByWeekday[2].Count != 1 || got.ByWeekday[4].Count != 0 {
		t.Errorf("ByWeekday = %+v", got.ByWeekday)
	}
	wantHours := []models.HourCount{{Hour: 9, Count: 2}, {Hour: 14, Count: 1}}
	if diff := cmp.Diff(wantHours, got.ByHour); diff != "" {
		t.Errorf("ByHour mismatch (-want +got):\n%s", diff)
	}
	if got.MaxWeekday != 2 || got.MaxHour != 2 {
		t.Errorf("maxima = %d/%d, want 2/2", got.MaxWeekday, got.MaxHour)
	}
}

func TestFailuresByDayAndHour_ReclassifyingNeverIncreases(t *testing.T) {
	records := []models.ActivityRecord{
		rec(at(2024, 1, 1, 9, 0), "a", models.StatusFailure),
		rec(at(2024, 1, 2, 10, 0), "a", models.StatusFailure),
		rec(at(2024, 1, 3, 11, 0), "b", models.StatusSuccess),
	}
	before := New(table(records...)).FailuresByDayAndHour()

	for i := range records {
		changed := make([]models.ActivityRecord, len(records))
		copy(changed, records)
		if changed[i].Status == models.StatusFailure {
			changed[i].Status = models.StatusSuccess
		}
		after := New(table(changed...)).FailuresByDayAndHour()

		for d := range after.ByWeekday {
			if after.ByWeekday[d].Count > before.ByWeekday[d].Count {
				t.Errorf("record %d: weekday %d grew", i, d)
			}
		}
		hourly := map[int]int{}
		for _, h := range before.ByHour {
			hourly[h.Hour] = h.Count
		}
		for _, h := range after.ByHour {
			if h.Count > hourly[h.Hour] {
				t.Errorf("record %d: hour %d grew", i, h.Hour)
			}
		}
	}
}

func TestAggregator_EmptyTable(t *testing.T) {
	for _, tbl := range []*models.ActivityTable{nil, table()} {
		a := New(tbl)

		if diff := cmp.Diff(models.TopLineMetrics{}, a.TopLineMetrics()); diff != "" {
			t.Errorf("TopLineMetrics() mismatch (-want +got):\n%s", diff)
		}
		if len(a.MonthlySeries()) != 0 || len(a.HourlyCounts()) != 0 || len(a.ModeCounts(models.SortDescending)) != 0 {
			t.Error("series should be empty")
		}
		if a.HourlyDayHeatmap().Max() != 0 {
			t.Error("heatmap should be zero")
		}
		if len(a.HourlyBarCounts().Bars) != 0 {
			t.Error("hourly bars should be empty")
		}
		if len(a.FailureBreakdown().Buckets) != 0 || len(a.SuccessFailureRates()) != 0 {
			t.Error("failure aggregations should be empty")
		}
		if diff := cmp.Diff(models.OverallRates{}, a.OverallRates()); diff != "" {
			t.Errorf("OverallRates() mismatch (-want +got):\n%s", diff)
		}
		dist := a.FailuresByDayAndHour()
		if dist.MaxWeekday != 0 || dist.MaxHour != 0 || len(dist.ByHour) != 0 {
			t.Errorf("FailuresByDayAndHour() = %+v", dist)
		}
		if !a.Report().Empty() {
			t.Error("report should be empty")
		}
	}
}

func TestAggregator_Idempotent(t *testing.T) {
	a := New(sampleTable())

	first := a.Report()
	second := a.Report()
	ignoreTime := cmp.FilterPath(func(p cmp.Path) bool {
		return p.String() == "GeneratedAt"
	}, cmp.Ignore())
	if diff := cmp.Diff(first, second, ignoreTime); diff != "" {
		t.Errorf("Report() not idempotent (-first +second):\n%s", diff)
	}
	if a.Table().At(1).Status != models.StatusFailure {
		t.Error("aggregation mutated the table")
	}
}

func TestReport_SortedModes(t *testing.T) {
	r := New(table(
		undated("x", models.StatusSuccess),
		undated("y", models.StatusSuccess),
		undated("y", models.StatusSuccess),
	)).Report()

	asc := r.SortedModes(models.SortAscending)
	if asc[0].Mode != "x" || r.Modes[0].Mode != "y" {
		t.Errorf("SortedModes should sort a copy; asc=%v modes=%v", asc, r.Modes)
	}

	var nilReport *Report
	if nilReport.SortedModes(models.SortAscending) != nil {
		t.Error("nil report should have no modes")
	}
}
