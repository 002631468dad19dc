// CLAUDE:SUMMARY Duration normalization: H:MM:SS (optional integer-milliseconds tail) to total seconds.
package sanitize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDurationSyntax is returned for anything that is not three
// colon-separated non-negative integers.
var ErrDurationSyntax = errors.New("malformed duration")

// NormalizeDuration converts `H:MM:SS` to total seconds as a decimal
// string. Output is the shortest decimal form: `5012` for whole seconds,
// `5012.005` otherwise.
func NormalizeDuration(s string) (string, error) {
	total, err := ParseDurationSeconds(s)
	if err != nil {
		return "", err
	}
	return FormatSeconds(total), nil
}

// FormatSeconds renders a seconds value in shortest decimal form.
func FormatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseDurationSeconds parses `H:MM:SS` into total seconds. Hours are
// unbounded (spans longer than a day are common), so time.ParseDuration is
// of no help here. The seconds component may carry a `.ms` tail holding
// integer milliseconds.
func ParseDurationSeconds(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrDurationSyntax, s)
	}

	hours, err := parseComponent(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: hours: %v", ErrDurationSyntax, s, err)
	}
	minutes, err := parseComponent(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: minutes: %v", ErrDurationSyntax, s, err)
	}

	secPart, msPart, hasMS := strings.Cut(parts[2], ".")
	seconds, err := parseComponent(secPart)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: seconds: %v", ErrDurationSyntax, s, err)
	}

	total := float64(hours*3600 + minutes*60 + seconds)
	if hasMS {
		ms, err := parseComponent(msPart)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: milliseconds: %v", ErrDurationSyntax, s, err)
		}
		total += float64(ms) / 1000
	}

	return total, nil
}

// parseComponent accepts only unsigned decimal digits; strconv.Atoi alone
// would let "+1" and "-0" through.
func parseComponent(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("non-numeric %q", s)
		}
	}
	return strconv.Atoi(s)
}
