package asoc

import (
	"fmt"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
)

// Parse convierte documentos validados.
func Parse(docs []lonja.RawDocument) ([]Document, error) {
	out := make([]Document, 0, len(docs))
	for i := range docs {
		doc, err := ParseDocument(docs[i])
		if err != nil {
			return nil, fmt.Errorf("documento %d: %w", i, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

// ParseDocument copia cabecera y subastas y resuelve la modalidad.
func ParseDocument(raw lonja.RawDocument) (Document, error) {
	etiqueta := lonja.ParseString(raw.Details[keyTipoSubasta])
	tipo, ok := lonja.ParseTipoSubasta(etiqueta)
	if !ok {
		return Document{}, &lonja.ParsingError{
			Field:   keyTipoSubasta,
			Message: "tipo de subasta desconocido",
			Value:   etiqueta,
		}
	}

	rows, err := lonja.TableRows(raw.Tables, tableSubastas)
	if err != nil {
		return Document{}, err
	}
	doc := Document{
		Details: Details{
			Lonja:       lonja.ParseString(raw.Details[keyLonja]),
			Fecha:       lonja.ParseString(raw.Details[keyFecha]),
			Numero:      lonja.ParseString(raw.Details[keyNumero]),
			TipoSubasta: tipo,
		},
		Tables: Tables{Subastas: make([]Subasta, 0, len(rows))},
	}
	for _, r := range rows {
		doc.Tables.Subastas = append(doc.Tables.Subastas, Subasta{
			Cod:     lonja.ParseString(r[colCod]),
			Barco:   lonja.ParseString(r[colBarco]),
			Especie: lonja.ParseString(r[colEspecie]),
			Peso:    lonja.ParseString(r[colPeso]),
			Precio:  lonja.ParseString(r[colPrecio]),
			Cajas:   lonja.ParseString(r[colCajas]),
			Importe: lonja.ParseString(r[colImporte]),
		})
	}
	return doc, nil
}
