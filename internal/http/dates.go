package http

import (
	"fmt"
	"strings"
	"time"
)

// isoLayouts are tried in order. Layouts without a zone parse as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseISODate parses the ISO-8601 forms accepted by the date filters.
func parseISODate(value string) (time.Time, error) {
	value = restorePlusOffset(strings.TrimSpace(value))
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use ISO 8601 (e.g. '2023-10-27T10:30:00')", value)
}

// restorePlusOffset turns "2024-01-02T10:00:00 01:00" back into "...+01:00".
// An unescaped '+' in a query string decodes to a space.
func restorePlusOffset(value string) string {
	idx := strings.LastIndex(value, " ")
	if idx <= len("2006-01-02") {
		return value
	}
	offset := value[idx+1:]
	if len(offset) == len("07:00") && offset[2] == ':' {
		return value[:idx] + "+" + offset
	}
	return value
}
