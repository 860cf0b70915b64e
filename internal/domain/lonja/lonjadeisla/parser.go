package lonjadeisla

import (
	"fmt"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
)

// Parse convierte documentos validados. No transforma valores: copia los campos y
// sustituye las tablas ausentes por listas vacías.
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

// ParseDocument convierte un documento validado.
func ParseDocument(raw lonja.RawDocument) (Document, error) {
	doc := Document{
		Details: Details{
			Lonja:  lonja.ParseString(raw.Details[keyLonja]),
			Fecha:  lonja.ParseString(raw.Details[keyFecha]),
			Numero: lonja.ParseString(raw.Details[keyNumero]),
			CIF:    lonja.ParseString(raw.Details[keyCIF]),
		},
	}

	var err error
	if doc.Tables.Ventas, err = mapRows(raw.Tables, tableVentas, func(r map[string]any) Venta {
		return Venta{
			Cod:     lonja.ParseString(r[colCod]),
			Barco:   lonja.ParseString(r[colBarco]),
			Especie: lonja.ParseString(r[colEspecie]),
			Peso:    lonja.ParseString(r[colPeso]),
			Precio:  lonja.ParseString(r[colPrecio]),
			Cajas:   lonja.ParseString(r[colCajas]),
			Importe: lonja.ParseString(r[colImporte]),
		}
	}); err != nil {
		return Document{}, err
	}
	if doc.Tables.Peces, err = mapRows(raw.Tables, tablePeces, func(r map[string]any) Pez {
		return Pez{
			Especie: lonja.ParseString(r[colEspecie]),
			Peso:    lonja.ParseString(r[colPeso]),
			Cajas:   lonja.ParseString(r[colCajas]),
		}
	}); err != nil {
		return Document{}, err
	}
	if doc.Tables.Vendidurias, err = mapRows(raw.Tables, tableVendidurias, func(r map[string]any) Vendiduria {
		return Vendiduria{
			Vendiduria: lonja.ParseString(r[colVendiduria]),
			Importe:    lonja.ParseString(r[colImporte]),
		}
	}); err != nil {
		return Document{}, err
	}
	if doc.Tables.Cajas, err = mapRows(raw.Tables, tableCajas, func(r map[string]any) Caja {
		return Caja{
			Tipo:     lonja.ParseString(r[colTipo]),
			Cantidad: lonja.ParseString(r[colCantidad]),
		}
	}); err != nil {
		return Document{}, err
	}
	if doc.Tables.TipoVentas, err = mapRows(raw.Tables, tableTipoVentas, func(r map[string]any) TipoVenta {
		return TipoVenta{
			Tipo:    lonja.ParseString(r[colTipo]),
			Importe: lonja.ParseString(r[colImporte]),
		}
	}); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func mapRows[T any](tables map[string]any, name string, fn func(map[string]any) T) ([]T, error) {
	rows, err := lonja.TableRows(tables, name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out, nil
}
