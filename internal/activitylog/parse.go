package activitylog

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/j-veylop/activity-log-dashboard/internal/models"
)

// zonedLayouts carry their own offset. With a target location the result is
// converted into it; without one the parsed offset is kept.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05 -0700",
}

// localLayouts have no offset and are read in the target location, or in
// time.Local when there is none.
var localLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

// minUnixDigits keeps short numbers such as a bare year from being read as
// epoch seconds.
const minUnixDigits = 9

// ParseTimestamp parses a timestamp in one of the supported layouts. A nil
// loc keeps explicit offsets as written and reads the rest in time.Local. It
// returns false for empty or unrecognized values.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if loc == nil {
				return t, true
			}
			return t.In(loc), true
		}
	}

	if loc == nil {
		loc = time.Local
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}

	if len(s) >= minUnixDigits {
		if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(secs, 0).In(loc), true
		}
	}

	return time.Time{}, false
}

// ParseStatus parses a status code. Integral floats such as "1.0" are
// accepted when they fit in 32 bits; other codes are kept verbatim.
func ParseStatus(raw string) (models.Status, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.StatusUnknown, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return models.Status(n), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && f >= math.MinInt32 && f <= math.MaxInt32 {
		return models.Status(int(f)), true
	}
	return models.StatusUnknown, false
}
