package export

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja/asoc"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"
)

const (
	codArtPrestamoCajas = "1015"
	descPrestamoCajas   = "Préstamo de cajas"
)

var precioPrestamoCaja = decimal.RequireFromString("5.50")

// GenerateAsocExcelRows en venta directa emite una factura por barco y otra de tarifas a la
// asociación; en subasta, una única factura a la asociación con el género, las tarifas y el
// préstamo de cajas.
func GenerateAsocExcelRows(doc asoc.Document, cat Catalog, opts Options) Result {
	d := doc.Details
	b := newBuilder(cat, opts, d.Fecha, d.Lonja, d.Numero)

	total := decimal.Zero
	for _, s := range doc.Tables.Subastas {
		total = total.Add(CalculateImporteLenient(s.Peso, s.Precio))
	}

	switch d.TipoSubasta {
	case lonja.VentaDirecta:
		for _, g := range groupBy(doc.Tables.Subastas, asocGroupKey) {
			barco, ok := cat.FindBarco(g.Key)
			if !ok {
				b.warn(WarnBarcoNoEncontrado, "barcos", g.Key,
					fmt.Sprintf("barco %q (%s) no encontrado; sus ventas no se exportan", g.Items[0].Barco, g.Key))
				continue
			}
			lines := make([]line, 0, len(g.Items))
			for _, s := range g.Items {
				lines = append(lines, b.goodsLine(s.Especie, s.Especie, s.Peso, s.Precio))
			}
			b.emit(barco.CodA3erp, lines)
		}
		if fees := b.feeLines(reference.ScheduleAsocVentaDirecta, total); len(fees) > 0 {
			if codPro, ok := b.findLonja("", d.Lonja); ok {
				b.emit(codPro, fees)
			}
		}

	case lonja.Subasta:
		codPro, ok := b.findLonja("", d.Lonja)
		if !ok {
			break
		}
		lines := make([]line, 0, len(doc.Tables.Subastas)+4)
		cajas := decimal.Zero
		for _, s := range doc.Tables.Subastas {
			lines = append(lines, b.goodsLine(s.Especie, s.Especie+" - "+s.Barco, s.Peso, s.Precio))
			cajas = cajas.Add(ParseDecimalLenient(s.Cajas))
		}
		lines = append(lines, b.feeLines(reference.ScheduleAsocSubasta, total)...)
		if cajas.IsPositive() {
			lines = append(lines, line{
				codArt:   codArtPrestamoCajas,
				desc:     descPrestamoCajas,
				unidades: cajas,
				precio:   precioPrestamoCaja,
				tipoIVA:  ivaServicios,
			})
		}
		b.emit(codPro, lines)
	}
	return b.result()
}

// GenerateAsocLinkedSummary una entrada por barco, con proveedor resuelto en barcos.
func GenerateAsocLinkedSummary(doc asoc.Document, cat Catalog) []LinkedSummaryEntry {
	groups := groupBy(doc.Tables.Subastas, asocGroupKey)
	out := make([]LinkedSummaryEntry, 0, len(groups))
	for _, g := range groups {
		weight, amount := totals(g.Items,
			func(s asoc.Subasta) string { return s.Peso },
			func(s asoc.Subasta) string { return s.Precio })
		entry := LinkedSummaryEntry{
			Date:                   doc.Details.Fecha,
			DeclaredTotalNetWeight: weight,
			DeclaredTotalAmount:    amount,
			BarcoNombre:            g.Items[0].Barco,
		}
		if barco, ok := cat.FindBarco(g.Key); ok && barco.CodBrisapp != nil {
			entry.SupplierID = supplierID(barco.CodBrisapp)
		} else {
			entry.Error = true
		}
		out = append(out, entry)
	}
	return out
}

func asocGroupKey(s asoc.Subasta) string { return groupKey(s.Cod) }
