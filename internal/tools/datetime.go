package tools

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmadata/jma-data-mcp/internal/weather"
)

// ErrUnparsableDateTime is returned by ParseDateTime.
var ErrUnparsableDateTime = errors.New("could not parse datetime")

// DateTimeHint tells callers which datetime forms are accepted.
const DateTimeHint = "Use ISO format (e.g., '2025-12-01T12:00:00') or 'YYYY-MM-DD HH:MM'"

var (
	isoLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
	}
	plainLayouts = []string{
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"2006/01/02 15:04",
	}
)

// ParseDateTime parses an ISO 8601 datetime (a "T" separator selects this
// form; "Z" is accepted) or one of the plain forms YYYY-MM-DD HH:MM,
// YYYY-MM-DD HH:MM:SS and YYYY/MM/DD HH:MM. Values without an offset are
// JST.
func ParseDateTime(s string) (time.Time, error) {
	layouts := plainLayouts
	if strings.Contains(s, "T") {
		layouts = isoLayouts
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, weather.JST); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s", ErrUnparsableDateTime, s)
}
