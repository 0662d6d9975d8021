package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses a FITS date keyword such as DATE-OBS. The FITS
// ISO-8601 forms are tried first, then anything dateparse understands.
// Values without a zone are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse %q as a timestamp", s)
	}

	return t, nil
}

// FormatTimestamp renders t as "2006-01-02 15:04:05", adding microseconds
// only when t has a fractional second.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()/1000 == 0 {
		return t.Format("2006-01-02 15:04:05")
	}

	return t.Format("2006-01-02 15:04:05.000000")
}
