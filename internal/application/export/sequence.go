package export

import (
	"strconv"
	"strings"
	"unicode"
)

// Sequence asigna números de factura consecutivos dentro de una llamada. No es global: cada
// exportación parte de Options.StartSequence y devuelve el siguiente libre.
type Sequence struct {
	next int
}

func NewSequence(start int) *Sequence {
	return &Sequence{next: start}
}

// Take consume el número actual.
func (s *Sequence) Take() int {
	n := s.next
	s.next++
	return n
}

// Next primer número aún no consumido.
func (s *Sequence) Next() int { return s.next }

// DocNumber CABNUMDOC: dígitos de la fecha del documento seguidos de la secuencia.
func DocNumber(fecha string, seq int) string {
	var b strings.Builder
	for _, r := range fecha {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	b.WriteString(strconv.Itoa(seq))
	return b.String()
}
