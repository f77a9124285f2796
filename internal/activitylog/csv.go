package activitylog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/j-veylop/activity-log-dashboard/internal/models"
)

// readCSV reads a delimited log with a header row. Header names are matched
// case-insensitively; extra columns are ignored.
func readCSV(r io.Reader, loc *time.Location, report *Report) ([]models.ActivityRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var records []models.ActivityRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		records = append(records, buildRecord(line,
			field(row, cols[ColumnTimestamp]),
			field(row, cols[ColumnMode]),
			field(row, cols[ColumnStatus]),
			loc, report,
		))
	}

	return records, nil
}

func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	var missing []string
	for _, name := range []string{ColumnTimestamp, ColumnMode, ColumnStatus} {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return cols, nil
}

// field returns row[i], or "" for short rows.
func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
