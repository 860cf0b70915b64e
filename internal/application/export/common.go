package export

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimalLenient interpreta importes, pesos y precios para la generación de filas y nunca
// falla: cualquier valor no interpretable vale 0, así una línea mala no bloquea la exportación
// del resto. Acepta los mismos formatos que lonja.ParseDecimalValue ("1.234,56", "1.234.56",
// números JSON) pero es una implementación aparte; la capa estricta no se usa desde aquí.
func ParseDecimalLenient(value any) decimal.Decimal {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v)
	case float32:
		return ParseDecimalLenient(float64(v))
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case decimal.Decimal:
		return v
	case json.Number:
		return lenientFromString(string(v))
	case string:
		return lenientFromString(v)
	default:
		return decimal.Zero
	}
}

func lenientFromString(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	if i := strings.LastIndexByte(s, ','); i >= 0 {
		// coma decimal: todo lo anterior son miles
		s = strings.NewReplacer(".", "", " ", "").Replace(s[:i]) + "." + s[i+1:]
	} else if strings.Count(s, ".") > 1 {
		i := strings.LastIndexByte(s, '.')
		s = strings.ReplaceAll(s[:i], ".", "") + s[i:]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CalculateImporteLenient peso × precio redondeado a 2 decimales; 0 si alguno no es interpretable.
func CalculateImporteLenient(weight, price any) decimal.Decimal {
	return ParseDecimalLenient(weight).Mul(ParseDecimalLenient(price)).Round(2)
}
