package reference

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize deja un texto listo para comparar: sin tildes ni diéresis, en mayúsculas
// y con los espacios colapsados. "  Peña  Blanca " -> "PENA BLANCA".
func Normalize(s string) string {
	// el transformer guarda estado: uno por llamada
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.Join(strings.Fields(out), " ")
	return cases.Upper(language.Spanish).String(out)
}

// SameText compara dos textos tras normalizarlos.
func SameText(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
