package release

import (
	"time"

	"github.com/matzehuels/ltschart/pkg/errors"
)

// dateLayouts are tried in order. Values without a zone are read as UTC.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate parses an ISO-8601 date or timestamp. Date-only values resolve
// to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidDate, "invalid date %q (want YYYY-MM-DD or RFC 3339)", s)
}

// FormatDate formats t as YYYY-MM-DD, or "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.DateOnly)
}
