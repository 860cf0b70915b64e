package lonja

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimalValue convierte un valor crudo en decimal con reglas estrictas:
//   - número: se acepta tal cual salvo NaN/Inf;
//   - texto vacío: 0;
//   - texto con coma: formato europeo ("1.234,56" -> 1234.56);
//   - texto con varios puntos: solo el último es separador decimal ("1.000.50" -> 1000.50);
//   - resto: conversión numérica directa.
//
// Cualquier otro caso devuelve *ParsingError con el campo y el valor original.
func ParseDecimalValue(value any, field string) (decimal.Decimal, error) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, parsingFailure(field, value)
		}
		return decimal.NewFromFloat(v), nil
	case float32:
		return ParseDecimalValue(float64(v), field)
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case decimal.Decimal:
		return v, nil
	case json.Number:
		return parseDecimalString(string(v), field, value)
	case string:
		return parseDecimalString(v, field, value)
	default:
		return decimal.Zero, parsingFailure(field, value)
	}
}

func parseDecimalString(raw, field string, original any) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	switch {
	case strings.Contains(s, ","):
		s = europeanToPlain(s)
	case strings.Count(s, ".") > 1:
		last := strings.LastIndex(s, ".")
		s = strings.ReplaceAll(s[:last], ".", "") + s[last:]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, parsingFailure(field, original)
	}
	return d, nil
}

// europeanToPlain traduce el formato es-ES (punto de miles, coma decimal) al formato plano.
func europeanToPlain(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	return strings.Replace(s, ",", ".", 1)
}

func parsingFailure(field string, value any) *ParsingError {
	name := field
	if name == "" {
		name = "valor"
	}
	return &ParsingError{
		Field:   field,
		Message: fmt.Sprintf("no se pudo interpretar %q como número en %s", fmt.Sprint(value), name),
		Value:   value,
	}
}

// ParseString nil -> ""; resto a texto recortado.
func ParseString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return strings.TrimSpace(v.String())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// ParseInteger interpreta el valor como decimal y lo trunca hacia cero.
func ParseInteger(value any, field string) (int64, error) {
	d, err := ParseDecimalValue(value, field)
	if err != nil {
		return 0, err
	}
	return d.Truncate(0).IntPart(), nil
}

// CalculateImporte peso × precio redondeado a 2 decimales.
func CalculateImporte(weight, price any, field string) (decimal.Decimal, error) {
	w, err := ParseDecimalValue(weight, field)
	if err != nil {
		return decimal.Zero, err
	}
	p, err := ParseDecimalValue(price, field)
	if err != nil {
		return decimal.Zero, err
	}
	return w.Mul(p).Round(2), nil
}

// TableRows devuelve las filas de la tabla name. Una tabla ausente se trata como vacía;
// una fila que no es objeto es un *ParsingError.
func TableRows(tables map[string]any, name string) ([]map[string]any, error) {
	var raw []any
	switch v := tables[name].(type) {
	case []any:
		raw = v
	case []map[string]any:
		rows := make([]map[string]any, len(v))
		copy(rows, v)
		return rows, nil
	}
	rows := make([]map[string]any, 0, len(raw))
	for i, r := range raw {
		row, ok := r.(map[string]any)
		if !ok {
			return nil, &ParsingError{
				Field:   fmt.Sprintf("%s[%d]", name, i),
				Message: "la fila no es un objeto",
				Value:   r,
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
