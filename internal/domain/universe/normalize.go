package universe

import (
	"strings"
	"unicode"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
)

// Identifier normalization. Raw data refers to the same entity by id, display
// name, natural id in any case, or a name with noise appended ("Moria
// Station", "Hortus (OT-580)"). These helpers reduce all of those to
// comparable keys.

// NormalizeKey coerces an identifier-like value (string or number) into a
// trimmed comparable key.
func NormalizeKey(v any) (string, bool) {
	return shared.CoerceString(v)
}

// FoldName reduces a display name to its case- and whitespace-insensitive
// lookup form.
func FoldName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FoldNatural reduces a natural id to its lookup form. Natural ids are
// upper-case by convention but arrive in any case.
func FoldNatural(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// CleanName strips the token "station" and every non-alphanumeric character
// from a noisy name, folded for name-table lookup. "Benten Station" and
// "BENTEN." both clean to "benten".
func CleanName(s string) string {
	folded := FoldName(s)
	folded = strings.ReplaceAll(folded, "station", "")

	var b strings.Builder
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TrailingParenCode extracts a trailing parenthesized code from a display
// name: "Hortus (OT-580)" yields "OT-580".
func TrailingParenCode(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasSuffix(trimmed, ")") {
		return "", false
	}
	open := strings.LastIndex(trimmed, "(")
	if open < 0 {
		return "", false
	}
	code := strings.TrimSpace(trimmed[open+1 : len(trimmed)-1])
	return code, code != ""
}
