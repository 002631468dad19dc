// CLAUDE:SUMMARY Timestamp normalization: M/D/YY 12-hour clock in an assumed zone to fixed-offset ISO 8601.
package sanitize

import (
	"fmt"
	"time"
)

// timestampLayout matches the fixed input shape: unpadded month, day and
// hour, two-digit year, 12-hour clock with AM/PM.
const timestampLayout = "1/2/06 3:04:05 PM"

// isoLayout is ISO 8601 with an explicit numeric UTC offset.
const isoLayout = "2006-01-02T15:04:05-07:00"

// TimestampNormalizer parses zone-less timestamps in a configured default
// zone (DST rules applied for the parsed date) and formats them with the
// output zone's numeric offset. Both zones are injected at construction so
// the normalizer carries no ambient state.
type TimestampNormalizer struct {
	loc *time.Location
	out *time.Location
}

// NewTimestampNormalizer builds a normalizer that assumes loc for input.
// out may be nil, in which case timestamps stay in the input zone.
func NewTimestampNormalizer(loc, out *time.Location) *TimestampNormalizer {
	if out == nil {
		out = loc
	}
	return &TimestampNormalizer{loc: loc, out: out}
}

// Normalize converts a `M/D/YY H:MM:SS AM|PM` string to fixed-offset
// ISO 8601. 12 AM maps to hour 0 and 12 PM to hour 12; out-of-range
// components and pattern mismatches are parse errors.
func (n *TimestampNormalizer) Normalize(s string) (string, error) {
	t, err := time.ParseInLocation(timestampLayout, s, n.loc)
	if err != nil {
		return "", fmt.Errorf("timestamp %q: %w", s, err)
	}
	return t.In(n.out).Format(isoLayout), nil
}
