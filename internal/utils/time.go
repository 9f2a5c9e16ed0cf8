package utils

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing booking dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate accepts an RFC 3339 timestamp or a plain calendar date (interpreted as UTC midnight).
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// FormatTimeISO renders t as RFC 3339 with second precision.
func FormatTimeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}
