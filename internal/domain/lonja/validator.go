package lonja

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Context ubica una comprobación dentro del lote: índice del documento y ruta del contenedor.
type Context struct {
	Document int
	Path     string
}

// DocumentContext contexto raíz del documento i.
func DocumentContext(i int) Context {
	return Context{Document: i}
}

// Child devuelve el contexto del campo hijo.
func (c Context) Child(field string) Context {
	return Context{Document: c.Document, Path: c.join(field)}
}

// Index devuelve el contexto de la fila i de un array.
func (c Context) Index(i int) Context {
	return Context{Document: c.Document, Path: fmt.Sprintf("%s[%d]", c.Path, i)}
}

func (c Context) join(field string) string {
	if field == "" {
		return c.Path
	}
	if c.Path == "" {
		return field
	}
	return c.Path + "." + field
}

func (c Context) fail(kind ValidationKind, field, msg string, value any) *ValidationError {
	return &ValidationError{
		Kind:     kind,
		Field:    field,
		Message:  msg,
		Value:    value,
		Document: c.Document,
		Path:     c.join(field),
	}
}

// RequireField falla con MissingField si value es nil.
func RequireField(value any, field string, ctx Context) error {
	if isNil(value) {
		return ctx.fail(KindMissingField, field, fmt.Sprintf("el campo %q es obligatorio", field), value)
	}
	return nil
}

// RequireArray exige un array (puede estar vacío).
func RequireArray(value any, field string, ctx Context) ([]any, error) {
	if err := RequireField(value, field, ctx); err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case []any:
		return v, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, nil
	default:
		return nil, ctx.fail(KindInvalidType, field, fmt.Sprintf("el campo %q debe ser una lista", field), value)
	}
}

// RequireNonEmptyArray exige un array con al menos un elemento. El array vacío es un fallo
// distinto (EmptyArray) del campo ausente.
func RequireNonEmptyArray(value any, field string, ctx Context) ([]any, error) {
	arr, err := RequireArray(value, field, ctx)
	if err != nil {
		return nil, err
	}
	if len(arr) == 0 {
		return nil, ctx.fail(KindEmptyArray, field, fmt.Sprintf("la lista %q no puede estar vacía", field), value)
	}
	return arr, nil
}

// RequireObject exige un objeto plano (ni array ni nil).
func RequireObject(value any, field string, ctx Context) (map[string]any, error) {
	if err := RequireField(value, field, ctx); err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, ctx.fail(KindInvalidType, field, fmt.Sprintf("el campo %q debe ser un objeto", field), value)
	}
	return obj, nil
}

// RequireNonEmptyString exige un texto no vacío tras recortar espacios.
func RequireNonEmptyString(value any, field string, ctx Context) (string, error) {
	if err := RequireField(value, field, ctx); err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", ctx.fail(KindInvalidType, field, fmt.Sprintf("el campo %q debe ser un texto", field), value)
	}
	if strings.TrimSpace(s) == "" {
		return "", ctx.fail(KindBlankString, field, fmt.Sprintf("el campo %q no puede estar en blanco", field), value)
	}
	return s, nil
}

// RequireNumber exige un número finito. Los textos no cuentan como número.
func RequireNumber(value any, field string, ctx Context) (float64, error) {
	if err := RequireField(value, field, ctx); err != nil {
		return 0, err
	}
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return 0, ctx.fail(KindInvalidNumber, field, fmt.Sprintf("el campo %q debe ser un número", field), value)
		}
		f = parsed
	default:
		return 0, ctx.fail(KindInvalidType, field, fmt.Sprintf("el campo %q debe ser un número", field), value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ctx.fail(KindInvalidNumber, field, fmt.Sprintf("el campo %q debe ser un número finito", field), value)
	}
	return f, nil
}

// RequireNestedField recorre path dentro de obj y falla en el primer segmento ausente.
// Devuelve el valor final.
func RequireNestedField(obj map[string]any, path []string, ctx Context) (any, error) {
	var current any = obj
	for i, segment := range path {
		node, ok := current.(map[string]any)
		if !ok || node == nil {
			msg := fmt.Sprintf("el campo %q es obligatorio", strings.Join(path[:i+1], "."))
			return nil, ctx.fail(KindMissingField, segment, msg, current)
		}
		current = node[segment]
		if err := RequireField(current, segment, ctx); err != nil {
			return nil, err
		}
		ctx = ctx.Child(segment)
	}
	return current, nil
}

// RequireFields comprueba la presencia de varios campos de una fila.
func RequireFields(row map[string]any, fields []string, ctx Context) error {
	for _, f := range fields {
		if err := RequireField(row[f], f, ctx); err != nil {
			return err
		}
	}
	return nil
}

// RequireRows exige una tabla no vacía cuyas filas sean objetos con los campos requeridos.
func RequireRows(value any, table string, required []string, ctx Context) ([]map[string]any, error) {
	arr, err := RequireNonEmptyArray(value, table, ctx)
	if err != nil {
		return nil, err
	}
	return requireRowObjects(arr, table, required, ctx)
}

// RequireOptionalRows valida la tabla solo si viene informada; nil no es un error.
func RequireOptionalRows(value any, table string, required []string, ctx Context) ([]map[string]any, error) {
	if isNil(value) {
		return nil, nil
	}
	arr, err := RequireArray(value, table, ctx)
	if err != nil {
		return nil, err
	}
	return requireRowObjects(arr, table, required, ctx)
}

func requireRowObjects(arr []any, table string, required []string, ctx Context) ([]map[string]any, error) {
	rctx := ctx.Child(table)
	rows := make([]map[string]any, 0, len(arr))
	for i, raw := range arr {
		row, err := RequireObject(raw, "", rctx.Index(i))
		if err != nil {
			return nil, err
		}
		if err := RequireFields(row, required, rctx.Index(i)); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isNil(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case map[string]any:
		return v == nil
	case []any:
		return v == nil
	default:
		return false
	}
}
