// CLAUDE:SUMMARY Strict per-line CSV tokenizer (exactly 8 fields) and minimal-quoting encoder.
package sanitize

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
)

// NumColumns is the fixed record width. The input layout is not negotiable:
// Timestamp, Address, ZIP, FullName, FooDuration, BarDuration,
// TotalDuration, Notes.
const NumColumns = 8

// ErrFieldCount is returned when a line parses cleanly but does not have
// exactly NumColumns fields.
var ErrFieldCount = errors.New("wrong field count")

// splitRecord tokenizes one physical line as a strict CSV record.
// Quoting follows RFC 4180: commas are literal inside double quotes, a
// doubled quote is an escaped quote. An unterminated or bare quote is a
// tokenization failure, as is any field count other than NumColumns.
func splitRecord(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	if len(fields) != NumColumns {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(fields), NumColumns)
	}
	return fields, nil
}

// encodeRecord serializes fields back to one CSV line. A field is quoted
// iff it contains a comma, a double quote, or a newline; embedded quotes
// are doubled. No trailing newline.
func encodeRecord(fields []string) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		if strings.ContainsAny(f, ",\"\r\n") {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		} else {
			b.WriteString(f)
		}
	}
	return b.String()
}
