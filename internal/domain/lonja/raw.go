// Package lonja contiene la capa estricta del pipeline de documentos de lonja:
// forma del documento crudo extraído por OCR, primitivas de validación estructural
// y conversión de valores. Cualquier fallo aquí aborta la llamada completa.
package lonja

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RawDocument documento tal como lo entrega el servicio externo de extracción.
// Details son campos de cabecera clave/valor, Tables tablas con nombre (arrays de filas)
// y Objects bloques anidados (solo Cofra: subtotales).
type RawDocument struct {
	Details map[string]any `json:"details"`
	Tables  map[string]any `json:"tables"`
	Objects map[string]any `json:"objects,omitempty"`
}

// DecodeRawDocuments decodifica un array JSON de documentos conservando los números como json.Number.
func DecodeRawDocuments(data []byte) ([]RawDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var docs []RawDocument
	if err := dec.Decode(&docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// TipoSubasta modalidad de venta de un documento Asoc, resuelta una sola vez al parsear.
type TipoSubasta int

const (
	TipoSubastaDesconocida TipoSubasta = iota
	VentaDirecta                       // "M1 M1"
	Subasta                            // "T2 Arrastre"
)

const (
	etiquetaVentaDirecta = "M1 M1"
	etiquetaSubasta      = "T2 Arrastre"
)

// ParseTipoSubasta resuelve la etiqueta del documento. Ignora mayúsculas y espacios repetidos.
func ParseTipoSubasta(s string) (TipoSubasta, bool) {
	norm := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	switch norm {
	case strings.ToUpper(etiquetaVentaDirecta):
		return VentaDirecta, true
	case strings.ToUpper(etiquetaSubasta):
		return Subasta, true
	default:
		return TipoSubastaDesconocida, false
	}
}

// String devuelve la etiqueta original del documento.
func (t TipoSubasta) String() string {
	switch t {
	case VentaDirecta:
		return etiquetaVentaDirecta
	case Subasta:
		return etiquetaSubasta
	default:
		return ""
	}
}

func (t TipoSubasta) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TipoSubasta) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t, _ = ParseTipoSubasta(s)
	return nil
}
