package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizer descompone, quita diacríticos y recompone (NFD → sin marcas → NFC).
var normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName canonicaliza un nombre de producto para comparación:
// minúsculas, sin tildes y sin espacios sobrantes. "Azúcar  Morena " y
// "azucar morena" resuelven al mismo ítem.
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), " ")
	if out, _, err := transform.String(normalizer, s); err == nil {
		s = out
	}
	return s
}
