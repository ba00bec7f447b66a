package shared

import (
	"strings"
	"unicode"
)

// FoldTag reduces a type tag to comparable form by upper-casing and stripping
// every non-letter. "ship_store" and "SHIP STORE" both fold to "SHIPSTORE".
func FoldTag(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
