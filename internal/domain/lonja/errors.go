package lonja

import (
	"errors"
	"fmt"
)

// Sentinelas de la capa estricta. ValidationError y ParsingError envuelven una de ellas
// para que los llamadores puedan usar errors.Is sin conocer el tipo concreto.
var (
	ErrValidation = errors.New("documento de lonja inválido")
	ErrParsing    = errors.New("valor de lonja no interpretable")
)

// ValidationKind clasifica el fallo estructural.
type ValidationKind string

const (
	KindMissingField  ValidationKind = "MissingField"
	KindEmptyArray    ValidationKind = "EmptyArray"
	KindInvalidType   ValidationKind = "InvalidType"
	KindBlankString   ValidationKind = "BlankString"
	KindInvalidNumber ValidationKind = "InvalidNumber"
)

// ValidationError fallo estructural de un documento crudo. Aborta la validación de todo el lote.
type ValidationError struct {
	Kind     ValidationKind
	Field    string
	Message  string // mensaje en español para mostrar al usuario
	Value    any    // valor crudo ofensivo (diagnóstico)
	Document int    // índice del documento dentro del lote
	Path     string // ruta completa del campo, p.ej. tables.subastas[2].Kilos
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("documento %d: %s", e.Document, e.Message)
	}
	return fmt.Sprintf("documento %d, %s: %s", e.Document, e.Path, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ParsingError fallo al convertir un valor durante la construcción del documento canónico.
type ParsingError struct {
	Field   string
	Message string
	Value   any
}

func (e *ParsingError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ParsingError) Unwrap() error { return ErrParsing }

// AsValidationError extrae el ValidationError de una cadena de errores.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsParsingError extrae el ParsingError de una cadena de errores.
func AsParsingError(err error) (*ParsingError, bool) {
	var pe *ParsingError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
