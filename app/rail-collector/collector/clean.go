package collector

import (
	"strconv"
	"strings"
	"time"

	"github.com/emeraldtransit/railwatch/foundation/irishrail"
)

// Batch cleaning operations. Each one applies to the named columns of every
// record and is total over the batch: a value that cannot be coerced becomes
// nil and the remaining rows are still processed. All operations are
// idempotent so a pipeline can be re-run over already clean data.

// feedDateLayouts are the operating date forms seen in the feed. Dates are
// normalized to dateLayout so the rest of the pipeline deals with one form.
var feedDateLayouts = []string{"2006-01-02", "02 Jan 2006", "2 Jan 2006"}

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
	stampLayout = "2006-01-02 15:04:05"
)

// trimWhitespace strips leading and trailing whitespace from columns.
func trimWhitespace(rows []irishrail.Record, columns ...string) []irishrail.Record {
	for _, row := range rows {
		for _, col := range columns {
			if v := row[col]; v != nil {
				trimmed := strings.TrimSpace(*v)
				row[col] = &trimmed
			}
		}
	}
	return rows
}

var linebreakReplacer = strings.NewReplacer("\\n", " ", "\r\n", " ", "\n", " ", "\r", " ")

// stripLinebreaks replaces embedded line breaks in columns with a single
// space, then trims.
func stripLinebreaks(rows []irishrail.Record, columns ...string) []irishrail.Record {
	for _, row := range rows {
		for _, col := range columns {
			if v := row[col]; v != nil {
				replaced := strings.TrimSpace(linebreakReplacer.Replace(*v))
				row[col] = &replaced
			}
		}
	}
	return rows
}

// coerceFloats validates columns as floating point numbers. Values that do
// not parse become nil.
func coerceFloats(rows []irishrail.Record, columns ...string) []irishrail.Record {
	for _, row := range rows {
		for _, col := range columns {
			v := row[col]
			if v == nil {
				continue
			}
			trimmed := strings.TrimSpace(*v)
			if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
				row[col] = nil
				continue
			}
			row[col] = &trimmed
		}
	}
	return rows
}

// coerceInts validates columns as integers. Values that do not parse become
// nil.
func coerceInts(rows []irishrail.Record, columns ...string) []irishrail.Record {
	for _, row := range rows {
		for _, col := range columns {
			v := row[col]
			if v == nil {
				continue
			}
			trimmed := strings.TrimSpace(*v)
			if _, err := strconv.Atoi(trimmed); err != nil {
				row[col] = nil
				continue
			}
			row[col] = &trimmed
		}
	}
	return rows
}

// coerceDates parses columns as feed dates and normalizes them to
// YYYY-MM-DD. Values that do not parse become nil.
func coerceDates(rows []irishrail.Record, columns ...string) []irishrail.Record {
	for _, row := range rows {
		for _, col := range columns {
			v := row[col]
			if v == nil {
				continue
			}
			parsed, err := parseFeedDate(*v)
			if err != nil {
				row[col] = nil
				continue
			}
			formatted := parsed.Format(dateLayout)
			row[col] = &formatted
		}
	}
	return rows
}

// coerceClockTimes parses columns as times of day and normalizes them to
// HH:MM:SS. Values that do not parse become nil.
func coerceClockTimes(rows []irishrail.Record, columns ...string) []irishrail.Record {
	for _, row := range rows {
		for _, col := range columns {
			v := row[col]
			if v == nil {
				continue
			}
			parsed, err := parseClock(*v)
			if err != nil {
				row[col] = nil
				continue
			}
			formatted := parsed.Format(clockLayout)
			row[col] = &formatted
		}
	}
	return rows
}

// dropNullRows removes every row where any of the listed columns is nil.
func dropNullRows(rows []irishrail.Record, columns ...string) []irishrail.Record {
	kept := make([]irishrail.Record, 0, len(rows))
	for _, row := range rows {
		keep := true
		for _, col := range columns {
			if row[col] == nil {
				keep = false
				break
			}
		}
		if keep {
			kept = append(kept, row)
		}
	}
	return kept
}

// dropDuplicateRows keeps the first occurrence of each key-column tuple,
// preserving the original order.
func dropDuplicateRows(rows []irishrail.Record, keyColumns ...string) []irishrail.Record {
	kept := make([]irishrail.Record, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		key := rowKey(row, keyColumns)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, row)
	}
	return kept
}

// rowKey builds a composite key for the given columns. Nil values get a
// marker that cannot collide with real text because of the separator.
func rowKey(row irishrail.Record, keyColumns []string) string {
	parts := make([]string, 0, len(keyColumns))
	for _, col := range keyColumns {
		if v := row[col]; v != nil {
			parts = append(parts, *v)
		} else {
			parts = append(parts, "\x00nil")
		}
	}
	return strings.Join(parts, "\x00")
}

func parseFeedDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	var err error
	for _, layout := range feedDateLayouts {
		var parsed time.Time
		parsed, err = time.Parse(layout, trimmed)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}

func parseClock(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	parsed, err := time.Parse(clockLayout, trimmed)
	if err == nil {
		return parsed, nil
	}
	return time.Parse("15:04", trimmed)
}

// Column accessors used while building typed records from a cleaned batch.

func textValue(row irishrail.Record, column string) *string {
	if v := row[column]; v != nil && *v != "" {
		value := *v
		return &value
	}
	return nil
}

func stringValue(row irishrail.Record, column string) string {
	if v := row[column]; v != nil {
		return *v
	}
	return ""
}

func floatValue(row irishrail.Record, column string) *float64 {
	v := row[column]
	if v == nil {
		return nil
	}
	parsed, err := strconv.ParseFloat(*v, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func intValue(row irishrail.Record, column string) (int, bool) {
	v := row[column]
	if v == nil {
		return 0, false
	}
	parsed, err := strconv.Atoi(*v)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func dateValue(row irishrail.Record, column string) (time.Time, bool) {
	v := row[column]
	if v == nil {
		return time.Time{}, false
	}
	parsed, err := time.Parse(dateLayout, *v)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
