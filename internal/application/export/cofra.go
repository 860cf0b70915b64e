package export

import (
	"fmt"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja/cofra"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"
)

// GenerateCofraExcelRows emite una factura por armador con sus líneas de subasta y una factura
// de la lonja con la tabla de servicios del propio documento. Cofra no aplica tarifas.
func GenerateCofraExcelRows(doc cofra.Document, cat Catalog, opts Options) Result {
	d := doc.Detalles
	b := newBuilder(cat, opts, d.Fecha, d.Lonja, d.Numero)

	for _, g := range groupBy(doc.Tablas.Subastas, cofraGroupKey) {
		armador, ok := cat.FindArmador(g.Key)
		if !ok {
			b.warn(WarnArmadorNoEncontrado, "armadores", g.Key,
				fmt.Sprintf("armador %q (%s) no encontrado; sus líneas no se exportan", g.Items[0].Armador.Nombre, g.Key))
			continue
		}
		lines := make([]line, 0, len(g.Items))
		for _, s := range g.Items {
			lines = append(lines, b.goodsLine(s.Pescado, s.Pescado, s.Kilos, s.Precio))
		}
		b.emit(armador.CodA3erp, lines)
	}

	if len(doc.Tablas.Servicios) > 0 {
		if codPro, ok := b.findLonja(d.CifLonja, d.Lonja); ok {
			lines := make([]line, 0, len(doc.Tablas.Servicios))
			for _, s := range doc.Tablas.Servicios {
				lines = append(lines, line{
					codArt:   s.Codigo,
					desc:     s.Descripcion,
					unidades: ParseDecimalLenient(s.Unidades),
					precio:   ParseDecimalLenient(s.Precio),
					tipoIVA:  b.ivaCode(s.IVA),
				})
			}
			b.emit(codPro, lines)
		}
	}
	return b.result()
}

// GenerateCofraLinkedSummary una entrada por armador con los totales calculados de sus líneas.
func GenerateCofraLinkedSummary(doc cofra.Document, cat Catalog) []LinkedSummaryEntry {
	groups := groupBy(doc.Tablas.Subastas, cofraGroupKey)
	out := make([]LinkedSummaryEntry, 0, len(groups))
	for _, g := range groups {
		weight, amount := totals(g.Items,
			func(s cofra.Subasta) string { return s.Kilos },
			func(s cofra.Subasta) string { return s.Precio })
		entry := LinkedSummaryEntry{
			Date:                   doc.Detalles.Fecha,
			DeclaredTotalNetWeight: weight,
			DeclaredTotalAmount:    amount,
			BarcoNombre:            g.Items[0].Barco.Nombre,
		}
		if a, ok := cat.FindArmador(g.Key); ok && a.CodBrisapp != nil {
			entry.SupplierID = supplierID(a.CodBrisapp)
		} else {
			entry.Error = true
		}
		out = append(out, entry)
	}
	return out
}

// cofraGroupKey agrupa con la misma forma de CIF que usa FindArmador.
func cofraGroupKey(s cofra.Subasta) string { return reference.CompactCIF(s.Armador.CIF) }
