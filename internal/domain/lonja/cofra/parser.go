package cofra

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
)

// cifPattern CIF/NIF español: letra opcional, 7-9 dígitos y control opcional.
var cifPattern = regexp.MustCompile(`^[A-Z]?[0-9]{7,9}[A-Z0-9]?$`)

// Parse convierte documentos ya validados en documentos canónicos.
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

// ParseDocument convierte un documento Cofra validado.
func ParseDocument(raw lonja.RawDocument) (Document, error) {
	subastas, err := lonja.TableRows(raw.Tables, tableSubastas)
	if err != nil {
		return Document{}, err
	}
	servicios, err := lonja.TableRows(raw.Tables, tableServicios)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		Detalles: parseDetalles(raw.Details),
		Tablas: Tablas{
			Subastas:  make([]Subasta, 0, len(subastas)),
			Servicios: make([]Servicio, 0, len(servicios)),
		},
		Subtotales: Subtotales{
			Pesca:     parseSubtotal(raw.Objects, objSubtotalesPesca),
			Servicios: parseSubtotal(raw.Objects, objSubtotalesServicios),
			Cajas:     parseSubtotal(raw.Objects, objSubtotalesCajas),
		},
	}
	for _, row := range subastas {
		doc.Tablas.Subastas = append(doc.Tablas.Subastas, Subasta{
			Armador: ParseArmador(lonja.ParseString(row[colArmador])),
			Barco:   ParseCodBarco(lonja.ParseString(row[colCodBarco])),
			Cajas:   ParseCajas(lonja.ParseString(row[colCajas])),
			Kilos:   lonja.ParseString(row[colKilos]),
			Pescado: lonja.ParseString(row[colPescado]),
			Precio:  lonja.ParseString(row[colPrecio]),
			Importe: lonja.ParseString(row[colImporte]),
		})
	}
	for _, row := range servicios {
		doc.Tablas.Servicios = append(doc.Tablas.Servicios, Servicio{
			Codigo:      lonja.ParseString(row[colCodigo]),
			Descripcion: lonja.ParseString(row[colDescripcion]),
			Fecha:       lonja.ParseString(row[colFecha]),
			IVA:         lonja.ParseString(row[colIVA]),
			REC:         lonja.ParseString(row[colREC]),
			Unidades:    lonja.ParseString(row[colUnidades]),
			Precio:      lonja.ParseString(row[colPrecio]),
			Importe:     lonja.ParseString(row[colImporte]),
		})
	}
	return doc, nil
}

func parseDetalles(d map[string]any) Detalles {
	return Detalles{
		Lonja:           lonja.ParseString(d[keyLonja]),
		CifLonja:        lonja.ParseString(d[keyCifLonja]),
		Numero:          lonja.ParseString(d[keyNumero]),
		Fecha:           lonja.ParseString(d[keyFecha]),
		Ejercicio:       lonja.ParseString(d[keyEjercicio]),
		Comprador:       lonja.ParseString(d[keyComprador]),
		NumeroComprador: lonja.ParseString(d[keyNumeroComprador]),
		CifComprador:    lonja.ParseString(d[keyCifComprador]),
		ImporteTotal:    lonja.ParseString(d[keyImporteTotal]),
	}
}

func parseSubtotal(objects map[string]any, block string) Subtotal {
	b, _ := objects[block].(map[string]any)
	col, _ := b[objColumna].(map[string]any)
	return Subtotal{
		Subtotal: lonja.ParseString(col[colSubtotal]),
		IVA:      lonja.ParseString(col[colIVAsub]),
		Total:    lonja.ParseString(col[colTotal]),
	}
}

// ParseArmador separa "<NOMBRE...> <CIF>". Prueba el patrón de CIF sobre el último token y
// luego sobre los dos últimos unidos ("B 12345678"). Si ninguno encaja, el último token se
// toma como CIF; nunca falla.
func ParseArmador(s string) Armador {
	tokens := strings.Fields(s)
	switch len(tokens) {
	case 0:
		return Armador{}
	case 1:
		return Armador{CIF: tokens[0]}
	}
	n := len(tokens)
	last := tokens[n-1]
	if cifPattern.MatchString(strings.ToUpper(last)) {
		return Armador{Nombre: strings.Join(tokens[:n-1], " "), CIF: last}
	}
	joined := tokens[n-2] + tokens[n-1]
	if cifPattern.MatchString(strings.ToUpper(joined)) {
		return Armador{Nombre: strings.Join(tokens[:n-2], " "), CIF: joined}
	}
	return Armador{Nombre: strings.Join(tokens[:n-1], " "), CIF: last}
}

// ParseCodBarco separa "<código> <nombre...>".
func ParseCodBarco(s string) Barco {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return Barco{}
	}
	return Barco{Cod: tokens[0], Nombre: strings.Join(tokens[1:], " ")}
}

// ParseCajas separa "<cantidad...> <tipo>": el tipo es siempre el último token, también
// cuando es el único.
func ParseCajas(s string) Cajas {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return Cajas{}
	}
	n := len(tokens)
	return Cajas{Cantidad: strings.Join(tokens[:n-1], " "), Tipo: tokens[n-1]}
}
