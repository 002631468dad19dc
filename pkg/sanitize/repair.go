// CLAUDE:SUMMARY UTF-8 repair (invalid byte runs become U+FFFD) and optional source transcoding.
package sanitize

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Repair decodes b as UTF-8, replacing each maximal run of invalid bytes
// with a single U+FFFD. Total: every input yields valid UTF-8, so the rest
// of the pipeline only ever deals with semantic validity.
func Repair(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}

// DecodeReader wraps r so the stream arrives as UTF-8. An empty or UTF-8
// encoding name is a passthrough; anything else is resolved through the
// WHATWG encoding index and transcoded.
func DecodeReader(r io.Reader, encoding string) (io.Reader, error) {
	if isUTF8(encoding) {
		return r, nil
	}
	e, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
	}
	return transform.NewReader(r, e.NewDecoder()), nil
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
