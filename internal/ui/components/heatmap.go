package components

import (
	"fmt"
	"strings"

	"github.com/j-veylop/activity-log-dashboard/internal/models"
	"github.com/j-veylop/activity-log-dashboard/internal/ui/styles"
)

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
// Index 0 marks an empty cell.
var HeatmapBlocks = []rune{'·', '░', '▒', '▓', '█'}

// HeatLevel maps a count onto an index of HeatmapBlocks relative to maxVal.
// Any non-zero count gets at least the lowest visible block.
func HeatLevel(count, maxVal int) int {
	if count <= 0 || maxVal <= 0 {
		return 0
	}
	top := len(HeatmapBlocks) - 1
	level := (count*top + maxVal - 1) / maxVal
	return max(1, min(level, top))
}

// RenderHeatmap draws the weekday by hour grid, Monday first, with two
// columns per hour so the grid keeps a readable aspect ratio.
func RenderHeatmap(h *models.Heatmap) string {
	if h == nil {
		return styles.HelpStyle.Render(NoDataText)
	}

	peak := h.Max()

	var b strings.Builder
	b.WriteString("     ")
	for hour := 0; hour < 24; hour += 3 {
		fmt.Fprintf(&b, "%-6s", fmt.Sprintf("%02d", hour))
	}
	b.WriteString("\n")

	for day := range 7 {
		fmt.Fprintf(&b, "%-4s ", models.Weekdays[day][:3])
		for hour := range 24 {
			level := HeatLevel(h[day][hour], peak)
			cell := strings.Repeat(string(HeatmapBlocks[level]), 2)
			b.WriteString(styles.GetHeatStyle(level).Render(cell))
		}
		if day < 6 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderHeatmapLegend explains the block scale for a heatmap peaking at maxVal.
func RenderHeatmapLegend(maxVal int) string {
	parts := make([]string, 0, len(HeatmapBlocks)+2)
	parts = append(parts, "0")
	for level, r := range HeatmapBlocks {
		parts = append(parts, styles.GetHeatStyle(level).Render(string(r)))
	}
	parts = append(parts, fmt.Sprint(maxVal))
	return styles.HelpStyle.Render("Count ") + strings.Join(parts, " ")
}
