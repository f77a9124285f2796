package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/activity-log-dashboard/internal/models"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/styles"
)

// sliceColors cycles through distinct colours for breakdown slices.
var sliceColors = []lipgloss.Color{
	lipgloss.Color("36"),
	lipgloss.Color("63"),
	lipgloss.Color("208"),
	lipgloss.Color("170"),
	lipgloss.Color("39"),
	lipgloss.Color("220"),
}

// RenderShareBars draws the failure breakdown as a stacked strip followed by
// one legend line per bucket with its share of all failures.
func RenderShareBars(breakdown models.FailureBreakdown, width int) string {
	if breakdown.Total == 0 || len(breakdown.Buckets) == 0 {
		return styles.HelpStyle.Render("No failures recorded")
	}

	stripWidth := max(width, 10)

	var strip strings.Builder
	used := 0
	for i, bucket := range breakdown.Buckets {
		n := int(bucket.Share(breakdown.Total)*float64(stripWidth) + 0.5)
		if i == len(breakdown.Buckets)-1 {
			n = stripWidth - used
		}
		n = max(0, min(n, stripWidth-used))
		used += n
		strip.WriteString(sliceStyle(i, bucket).Render(strings.Repeat("█", n)))
	}

	labelWidth := 0
	for _, bucket := range breakdown.Buckets {
		labelWidth = max(labelWidth, lipgloss.Width(bucket.Mode))
	}

	lines := []string{strip.String(), ""}
	for i, bucket := range breakdown.Buckets {
		swatch := sliceStyle(i, bucket).Render("■")
		lines = append(lines, fmt.Sprintf("%s %-*s %5.1f%%  (%d)",
			swatch, labelWidth, bucket.Mode, bucket.Share(breakdown.Total)*100, bucket.Count))
	}

	return strings.Join(lines, "\n")
}

func sliceStyle(i int, bucket models.FailureBucket) lipgloss.Style {
	if bucket.Other {
		return lipgloss.NewStyle().Foreground(styles.Subtle)
	}
	return lipgloss.NewStyle().Foreground(sliceColors[i%len(sliceColors)])
}
