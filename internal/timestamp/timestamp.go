// Package timestamp parses the ISO-8601 variants the flight API emits.
package timestamp

import (
	"time"
)

var zonedFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700", // Without colon
	"2006-01-02T15:04-07:00",
}

// Local wall-clock layouts; the API sends departure/arrival in airport time.
var localFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Parse accepts zoned and zone-less timestamps. Zone-less values are read in
// loc (UTC when loc is nil) so the wall clock is preserved.
func Parse(s string, loc *time.Location) (time.Time, error) {
	for _, format := range zonedFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	if loc == nil {
		loc = time.UTC
	}
	for _, format := range localFormats {
		if t, err := time.ParseInLocation(format, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   s,
		Message: ": unable to parse timestamp",
	}
}
