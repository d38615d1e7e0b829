package reports

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer descompone, quita marcas diacríticas y recompone.
// "Ivermectína" y "ivermectina" quedan iguales tras plegar y bajar a minúsculas.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold normaliza un texto para comparación insensible a acentos y mayúsculas.
func fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// foldContains indica si needle aparece en haystack ignorando acentos y caja.
func foldContains(haystack, needle string) bool {
	return strings.Contains(fold(haystack), fold(needle))
}
