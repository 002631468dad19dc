// CLAUDE:SUMMARY Row orchestration: repair, tokenize, normalize every column, re-encode; any failure drops the row.
package sanitize

import (
	"errors"
	"fmt"
	"time"
)

// Column names, in input order.
var ColumnNames = [NumColumns]string{
	"Timestamp", "Address", "ZIP", "FullName",
	"FooDuration", "BarDuration", "TotalDuration", "Notes",
}

const (
	colTimestamp = iota
	colAddress
	colZIP
	colFullName
	colFooDuration
	colBarDuration
	colTotalDuration
	colNotes
)

// ErrHeaderRow marks a row whose first field is the literal column name
// "Timestamp". Not an invalid row, but not data either.
var ErrHeaderRow = errors.New("header row")

// FieldError reports which column failed to normalize. The caller drops the
// row either way; the column name only matters for diagnostics.
type FieldError struct {
	Column string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Column, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Options configures a Sanitizer.
type Options struct {
	// Location is the zone assumed for zone-less timestamps. Required.
	Location *time.Location
	// OutputLocation re-expresses timestamps in another zone before
	// formatting. Nil keeps them in Location.
	OutputLocation *time.Location
	// KeepHeader echoes a recognized header row instead of dropping it.
	KeepHeader bool
	// RecomputeTotal replaces TotalDuration with FooDuration+BarDuration
	// instead of parsing the column.
	RecomputeTotal bool
}

// Sanitizer normalizes one raw CSV line at a time. Stateless across rows;
// safe for concurrent use.
type Sanitizer struct {
	ts             *TimestampNormalizer
	keepHeader     bool
	recomputeTotal bool
}

// New builds a Sanitizer. Panics if opts.Location is nil: the default zone
// is fixed process configuration, not something to guess per row.
func New(opts Options) *Sanitizer {
	if opts.Location == nil {
		panic("sanitize: Options.Location is required")
	}
	return &Sanitizer{
		ts:             NewTimestampNormalizer(opts.Location, opts.OutputLocation),
		keepHeader:     opts.KeepHeader,
		recomputeTotal: opts.RecomputeTotal,
	}
}

// Line processes one raw input line. On success it returns the normalized
// CSV line (no trailing newline). A non-nil error means the line produced
// no output: ErrHeaderRow for a dropped header, a tokenization error, or a
// FieldError naming the first column that failed. Encoding damage alone
// never drops a row; the repaired text gets its chance to parse.
func (s *Sanitizer) Line(raw []byte) (string, error) {
	fields, err := splitRecord(Repair(raw))
	if err != nil {
		return "", err
	}

	if fields[colTimestamp] == ColumnNames[colTimestamp] {
		if s.keepHeader {
			return encodeRecord(fields), nil
		}
		return "", ErrHeaderRow
	}

	out := make([]string, NumColumns)

	out[colTimestamp], err = s.ts.Normalize(fields[colTimestamp])
	if err != nil {
		return "", &FieldError{Column: ColumnNames[colTimestamp], Err: err}
	}

	out[colAddress] = fields[colAddress]
	out[colZIP] = PadZIP(fields[colZIP])
	out[colFullName] = UpperName(fields[colFullName])
	out[colNotes] = fields[colNotes]

	foo, err := ParseDurationSeconds(fields[colFooDuration])
	if err != nil {
		return "", &FieldError{Column: ColumnNames[colFooDuration], Err: err}
	}
	out[colFooDuration] = FormatSeconds(foo)

	bar, err := ParseDurationSeconds(fields[colBarDuration])
	if err != nil {
		return "", &FieldError{Column: ColumnNames[colBarDuration], Err: err}
	}
	out[colBarDuration] = FormatSeconds(bar)

	if s.recomputeTotal {
		out[colTotalDuration] = FormatSeconds(foo + bar)
	} else {
		out[colTotalDuration], err = NormalizeDuration(fields[colTotalDuration])
		if err != nil {
			return "", &FieldError{Column: ColumnNames[colTotalDuration], Err: err}
		}
	}

	return encodeRecord(out), nil
}
