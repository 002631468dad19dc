// CLAUDE:SUMMARY Text field normalizers: locale-invariant uppercasing, ZIP zero-padding, passthrough.
package sanitize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// UpperName uppercases a name with locale-invariant (und) case mapping.
// Total and idempotent; replacement characters pass through untouched.
func UpperName(s string) string {
	return upper.String(s)
}

// PadZIP left-pads a ZIP shorter than five characters with zeros. Longer
// values, and non-numeric content, pass through as-is: whether the code is
// a real ZIP is not this program's business.
func PadZIP(s string) string {
	if n := len(s); n < 5 {
		return strings.Repeat("0", 5-n) + s
	}
	return s
}
