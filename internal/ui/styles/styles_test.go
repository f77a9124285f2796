package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGetRateStyle(t *testing.T) {
	tests := []struct {
		rate float64
		want lipgloss.Color
	}{
		{100, Success},
		{90, Success},
		{75, Warning},
		{69.9, Error},
		{0, Error},
	}

	for _, tt := range tests {
		if got := GetRateStyle(tt.rate).GetForeground(); got != tt.want {
			t.Errorf("GetRateStyle(%v) foreground = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestGetHeatStyle_Clamps(t *testing.T) {
	if got := GetHeatStyle(-3).GetForeground(); got != HeatColors[0] {
		t.Errorf("level -3 = %v, want %v", got, HeatColors[0])
	}
	last := HeatColors[len(HeatColors)-1]
	if got := GetHeatStyle(99).GetForeground(); got != last {
		t.Errorf("level 99 = %v, want %v", got, last)
	}
}

func TestCenterHorizontal(t *testing.T) {
	out := CenterHorizontal("ab", 6)
	if !strings.Contains(out, "ab") || lipgloss.Width(out) != 6 {
		t.Errorf("CenterHorizontal = %q", out)
	}
}
