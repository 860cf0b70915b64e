package export

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja/lonjadeisla"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"
)

const (
	codArtServiciosLonja = "9100"
	descServiciosLonja   = "Servicios lonja"
)

// vendiduriaInvoice barcos de una vendeduría facturados juntos.
type vendiduriaInvoice struct {
	vendiduria reference.Vendiduria
	lines      []line
	base       decimal.Decimal
}

// GenerateLonjaDeIslaExcelRows agrupa las ventas por matrícula. Los barcos de venta directa
// reciben su propia factura; el resto se factura a su vendeduría, una factura por vendeduría
// con una línea de servicios de lonja sobre el género de ese grupo. Después se emite la
// factura de tarifas de la lonja sobre el total de género del documento.
func GenerateLonjaDeIslaExcelRows(doc lonjadeisla.Document, cat Catalog, opts Options) Result {
	d := doc.Details
	b := newBuilder(cat, opts, d.Fecha, d.Lonja, d.Numero)

	var (
		order       []string
		byVend      = map[string]*vendiduriaInvoice{}
		totalGenero = decimal.Zero
	)
	for _, v := range doc.Tables.Ventas {
		totalGenero = totalGenero.Add(CalculateImporteLenient(v.Peso, v.Precio))
	}

	for _, g := range groupBy(doc.Tables.Ventas, lonjaDeIslaGroupKey) {
		if directo, ok := cat.FindBarcoVentaDirecta(g.Key); ok {
			lines := make([]line, 0, len(g.Items))
			for _, v := range g.Items {
				lines = append(lines, b.goodsLine(v.Especie, v.Especie, v.Peso, v.Precio))
			}
			b.emit(directo.CodA3erp, lines)
			continue
		}

		barco, ok := cat.FindBarco(g.Key)
		if !ok {
			b.warn(WarnBarcoNoEncontrado, "barcos", g.Key,
				fmt.Sprintf("barco %q (%s) no encontrado; sus ventas no se exportan", g.Items[0].Barco, g.Key))
			continue
		}
		vend, ok := cat.FindVendiduria(barco.Vendiduria)
		if !ok {
			b.warn(WarnVendiduriaNoEncontrada, "datosVendidurias", barco.Vendiduria,
				fmt.Sprintf("vendeduría %q del barco %s no encontrada", barco.Vendiduria, barco.Nombre))
			continue
		}

		inv, exists := byVend[vend.CodA3erp]
		if !exists {
			inv = &vendiduriaInvoice{vendiduria: vend}
			byVend[vend.CodA3erp] = inv
			order = append(order, vend.CodA3erp)
		}
		for _, v := range g.Items {
			l := b.goodsLine(v.Especie, v.Especie+" - "+v.Barco, v.Peso, v.Precio)
			inv.lines = append(inv.lines, l)
			inv.base = inv.base.Add(l.importe())
		}
	}

	for _, cod := range order {
		inv := byVend[cod]
		lines := append(inv.lines, line{
			codArt:   codArtServiciosLonja,
			desc:     descServiciosLonja,
			unidades: decimal.NewFromInt(1),
			precio:   percent(inv.base, inv.vendiduria.PorcentajeServicios),
			tipoIVA:  ivaServicios,
		})
		b.emit(cod, lines)
	}

	if fees := b.feeLines(reference.ScheduleLonjaDeIsla, totalGenero); len(fees) > 0 {
		if codPro, ok := b.findLonja(d.CIF, d.Lonja); ok {
			b.emit(codPro, fees)
		}
	}
	return b.result()
}

// GenerateLonjaDeIslaLinkedSummary una entrada por barco. El proveedor sale de barcosVentaDirecta
// o, si no está, de barcos. Un barco cuyas ventas no llegan a las filas queda marcado con error.
func GenerateLonjaDeIslaLinkedSummary(doc lonjadeisla.Document, cat Catalog) []LinkedSummaryEntry {
	groups := groupBy(doc.Tables.Ventas, lonjaDeIslaGroupKey)
	out := make([]LinkedSummaryEntry, 0, len(groups))
	for _, g := range groups {
		weight, amount := totals(g.Items,
			func(v lonjadeisla.Venta) string { return v.Peso },
			func(v lonjadeisla.Venta) string { return v.Precio })
		entry := LinkedSummaryEntry{
			Date:                   doc.Details.Fecha,
			DeclaredTotalNetWeight: weight,
			DeclaredTotalAmount:    amount,
			BarcoNombre:            g.Items[0].Barco,
		}
		if barco, ok := lonjaDeIslaExportedBarco(cat, g.Key); ok && barco.CodBrisapp != nil {
			entry.SupplierID = supplierID(barco.CodBrisapp)
		} else {
			entry.Error = true
		}
		out = append(out, entry)
	}
	return out
}

// lonjaDeIslaExportedBarco resuelve el barco como lo hacen las filas: venta directa, o barco con
// vendeduría conocida.
func lonjaDeIslaExportedBarco(cat Catalog, cod string) (reference.Barco, bool) {
	if directo, ok := cat.FindBarcoVentaDirecta(cod); ok {
		return directo, true
	}
	barco, ok := cat.FindBarco(cod)
	if !ok {
		return reference.Barco{}, false
	}
	if _, ok := cat.FindVendiduria(barco.Vendiduria); !ok {
		return reference.Barco{}, false
	}
	return barco, true
}

func lonjaDeIslaGroupKey(v lonjadeisla.Venta) string { return groupKey(v.Cod) }
