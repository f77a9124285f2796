package activitylog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/tidwall/gjson"

	"github.com/j-veylop/activity-log-dashboard/internal/models"
)

const maxLineSize = 4 * 1024 * 1024

const ellipsis = "..."

// readJSONL reads one JSON object per line. Blank lines are ignored and
// lines that are not valid JSON objects are skipped with a warning.
func readJSONL(r io.Reader, loc *time.Location, report *Report) ([]models.ActivityRecord, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		records []models.ActivityRecord
		seen    = map[string]bool{}
		lineNum int
		content bool
	)

	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		content = true

		if !gjson.Valid(line) || !gjson.Parse(line).IsObject() {
			report.warn(ParseWarning{Line: lineNum, Field: "line", Value: truncate(line, 40)})
			continue
		}

		res := gjson.GetMany(line, ColumnTimestamp, ColumnMode, ColumnStatus)
		for i, name := range []string{ColumnTimestamp, ColumnMode, ColumnStatus} {
			if res[i].Exists() {
				seen[name] = true
			}
		}

		records = append(records, buildRecord(lineNum,
			jsonTimestamp(res[0]),
			jsonString(res[1]),
			jsonString(res[2]),
			loc, report,
		))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}

	if !content {
		return nil, ErrEmptyFile
	}
	if len(records) > 0 {
		var missing []string
		for _, name := range []string{ColumnTimestamp, ColumnMode, ColumnStatus} {
			if !seen[name] {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
		}
	}

	return records, nil
}

// jsonString renders scalars as text; null and missing values become "".
func jsonString(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return v.Raw
	case gjson.True, gjson.False:
		return v.Raw
	default:
		return ""
	}
}

// jsonTimestamp accepts strings and epoch-second numbers.
func jsonTimestamp(v gjson.Result) string {
	if v.Type == gjson.Number {
		return fmt.Sprintf("%d", v.Int())
	}
	return jsonString(v)
}

// truncate shortens s to n cells plus an ellipsis without splitting a rune.
func truncate(s string, n int) string {
	return ansi.Truncate(s, n+len(ellipsis), ellipsis)
}
