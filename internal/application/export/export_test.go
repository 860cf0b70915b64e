package export_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/export"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja/asoc"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja/cofra"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja/lonjadeisla"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"
)

// ── Capa tolerante ────────────────────────────────────────────────────────────

func TestParseDecimalLenient(t *testing.T) {
	cases := map[string]string{
		"1.234,56": "1234.56",
		"1.234.56": "1234.56",
		"":         "0",
		"abc":      "0",
		"12,5":     "12.5",
	}
	for in, want := range cases {
		assert.True(t, decimal.RequireFromString(want).Equal(export.ParseDecimalLenient(in)), "entrada %q", in)
	}
	assert.True(t, export.ParseDecimalLenient(nil).IsZero())
	assert.True(t, export.ParseDecimalLenient(map[string]any{}).IsZero(), "tipos raros valen 0")
}

func TestParseDecimalLenient_CoincideConElEstrictoEnEntradasValidas(t *testing.T) {
	for _, in := range []any{"1.234,56", "1.234.56", " 9,5 ", "0,125", "-3,40", json.Number("12.75"), 7.25, 3} {
		strict, err := lonja.ParseDecimalValue(in, "peso")
		require.NoError(t, err)
		assert.True(t, strict.Equal(export.ParseDecimalLenient(in)), "entrada %v", in)
	}
	for _, in := range []any{"1,2,3", "12kg", true, math.NaN()} {
		_, err := lonja.ParseDecimalValue(in, "peso")
		require.Error(t, err, "entrada %v", in)
		assert.True(t, export.ParseDecimalLenient(in).IsZero(), "entrada %v", in)
	}
}

func TestCalculateImporteLenient(t *testing.T) {
	assert.Equal(t, "35", export.CalculateImporteLenient("10,5", "3,333").String())
	assert.True(t, export.CalculateImporteLenient("x", 3).IsZero())
}

func TestDocNumber(t *testing.T) {
	assert.Equal(t, "120320247", export.DocNumber("12/03/2024", 7))
	assert.Equal(t, "2024031511", export.DocNumber("2024-03-15", 11))
}

func TestSequence(t *testing.T) {
	s := export.NewSequence(5)
	assert.Equal(t, 5, s.Take())
	assert.Equal(t, 6, s.Take())
	assert.Equal(t, 7, s.Next())
}

// ── Tarifas ───────────────────────────────────────────────────────────────────

func TestComputeFees_DosNiveles(t *testing.T) {
	schedule := []reference.Servicio{
		{Codigo: "EXTRA", Descripcion: "RECARGO", Porcentaje: decimal.NewFromInt(10), SobreServicio: "G4"},
		{Codigo: "G4", Descripcion: "TARIFA G4", Porcentaje: decimal.NewFromInt(2)},
		{Codigo: "HUERFANO", Porcentaje: decimal.NewFromInt(50), SobreServicio: "NOEXISTE"},
	}
	fees, missing := export.ComputeFees(schedule, decimal.NewFromInt(1000))

	require.Len(t, fees, 3)
	assert.Equal(t, "EXTRA", fees[0].Servicio.Codigo, "se conserva el orden del programa")
	assert.Equal(t, "2", fees[0].Importe.String(), "10% del importe de G4, no de la base")
	assert.Equal(t, "20", fees[1].Importe.String())
	assert.True(t, fees[2].Importe.IsZero())
	assert.Equal(t, []string{"NOEXISTE"}, missing)
}

// ── Cofra ─────────────────────────────────────────────────────────────────────

func TestCofra_FacturaPorArmadorYServicios(t *testing.T) {
	res := export.GenerateCofraExcelRows(buildCofraDocument("12/03/2024"), buildCatalog(), export.Options{CABSERIE: "L", StartSequence: 7})

	// armador conocido (2 líneas) + armador sin código Brisapp (1) + servicios (1); el desconocido no se exporta
	require.Len(t, res.Rows, 4)
	assert.Equal(t, 10, res.NextSequence)

	first := res.Rows[0]
	assert.Equal(t, "L", first.CABSERIE)
	assert.Equal(t, "120320247", first.CABNUMDOC)
	assert.Equal(t, "12/03/2024", first.CABFECHA)
	assert.Equal(t, "400300", first.CABCODPRO)
	assert.Equal(t, "COFRADIA DE PESCADORES DE CONIL F-2024-118", first.CABREFERENCIA)
	assert.Equal(t, "1001", first.LINCODART)
	assert.Equal(t, "RED10", first.LINTIPIVA)
	assert.Equal(t, "120.5", first.LINUNIDADES.String())

	servicio := res.Rows[3]
	assert.Equal(t, "400001", servicio.CABCODPRO, "servicios facturados a la lonja")
	assert.Equal(t, "5001", servicio.LINCODART)
	assert.Equal(t, "ORD21", servicio.LINTIPIVA)
	assert.Equal(t, "120320249", servicio.CABNUMDOC)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, export.WarnArmadorNoEncontrado, res.Warnings[0].Code)
	assert.Equal(t, "X9999999Z", res.Warnings[0].Value)
}

func TestCofra_ResumenCuadraConLasFilas(t *testing.T) {
	doc := buildCofraDocument("12/03/2024")
	cat := buildCatalog()
	res := export.GenerateCofraExcelRows(doc, cat, export.Options{StartSequence: 1})
	summary := export.GenerateCofraLinkedSummary(doc, cat)

	require.Len(t, summary, 3)
	assert.Equal(t, 31, *summary[0].SupplierID)
	assert.False(t, summary[0].Error)
	assert.Equal(t, "PEPE MANUEL", summary[0].BarcoNombre)
	assert.Equal(t, "140.5", summary[0].DeclaredTotalNetWeight.String())
	assert.Equal(t, "1200.1", summary[0].DeclaredTotalAmount.String())

	assert.Nil(t, summary[1].SupplierID, "armador sin código Brisapp")
	assert.True(t, summary[1].Error)
	assert.True(t, summary[2].Error)

	rowTotal := decimal.Zero
	for _, r := range res.Rows {
		if r.CABNUMDOC == res.Rows[0].CABNUMDOC {
			rowTotal = rowTotal.Add(r.LINUNIDADES.Mul(r.LINPRCMONEDA))
		}
	}
	diff := rowTotal.Sub(summary[0].DeclaredTotalAmount).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.01")), "diferencia %s", diff)
}

func TestCofra_CIFConGuionesAgrupaConElMismoArmador(t *testing.T) {
	doc := buildCofraDocument("12/03/2024")
	doc.Tablas.Subastas = doc.Tablas.Subastas[:1]
	otra := doc.Tablas.Subastas[0]
	otra.Armador.CIF = "E-72.452.600"
	otra.Pescado = "PULPO"
	doc.Tablas.Subastas = append(doc.Tablas.Subastas, otra)
	doc.Tablas.Servicios = nil

	res := export.GenerateCofraExcelRows(doc, buildCatalog(), export.Options{StartSequence: 1})
	require.Len(t, res.Rows, 2)
	assert.Equal(t, 2, res.NextSequence, "una sola factura")
	assert.Equal(t, res.Rows[0].CABNUMDOC, res.Rows[1].CABNUMDOC)
	assert.Empty(t, res.Warnings)

	summary := export.GenerateCofraLinkedSummary(doc, buildCatalog())
	require.Len(t, summary, 1)
	assert.Equal(t, 31, *summary[0].SupplierID)
}

func TestCofra_Determinista(t *testing.T) {
	doc := buildCofraDocument("12/03/2024")
	cat := buildCatalog()
	opts := export.Options{CABSERIE: "L", StartSequence: 3}
	assert.Equal(t, export.GenerateCofraExcelRows(doc, cat, opts), export.GenerateCofraExcelRows(doc, cat, opts))
}

func TestCofra_SecuenciaEncadenadaSinColisiones(t *testing.T) {
	cat := buildCatalog()
	first := export.GenerateCofraExcelRows(buildCofraDocument("12/03/2024"), cat, export.Options{StartSequence: 1})
	second := export.GenerateCofraExcelRows(buildCofraDocument("12/03/2024"), cat, export.Options{StartSequence: first.NextSequence})

	firstDocs := distinctDocNumbers(first.Rows)
	secondDocs := distinctDocNumbers(second.Rows)
	assert.Equal(t, first.NextSequence-1, len(firstDocs))
	assert.Equal(t, second.NextSequence-first.NextSequence, len(secondDocs))
	for n := range secondDocs {
		assert.NotContains(t, firstDocs, n)
	}
}

// ── Lonja de Isla ─────────────────────────────────────────────────────────────

func TestLonjaDeIsla_VentaDirectaVendiduriaYTarifas(t *testing.T) {
	res := export.GenerateLonjaDeIslaExcelRows(buildLonjaDeIslaDocument(), buildCatalog(), export.Options{CABSERIE: "L", StartSequence: 1})

	// venta directa (1) + vendeduría (2 géneros + servicios lonja) + tarifas (2)
	require.Len(t, res.Rows, 6)
	assert.Equal(t, 4, res.NextSequence)
	assert.Equal(t, distinctCount(res.Rows), res.NextSequence-1)

	assert.Equal(t, "405555", res.Rows[0].CABCODPRO)
	assert.Equal(t, "GAMBA BLANCA", res.Rows[0].LINDESCLIN)

	vend := res.Rows[1:4]
	for _, r := range vend {
		assert.Equal(t, "400200", r.CABCODPRO)
		assert.Equal(t, "050420242", r.CABNUMDOC)
	}
	assert.Equal(t, "RAPE - PEPE MANUEL", vend[0].LINDESCLIN)
	assert.Equal(t, "Servicios lonja", vend[2].LINDESCLIN)
	assert.Equal(t, "1.56", vend[2].LINPRCMONEDA.String(), "2% de 78")

	fees := res.Rows[4:]
	assert.Equal(t, "400010", fees[0].CABCODPRO)
	assert.Equal(t, "6.16", fees[0].LINPRCMONEDA.String(), "2% del total del documento (308)")
	assert.Equal(t, "0.62", fees[1].LINPRCMONEDA.String(), "10% de la tarifa G4")
	assert.Equal(t, "1", fees[1].LINUNIDADES.String())
}

func TestLonjaDeIsla_BarcoDesconocidoNoAfectaAlResto(t *testing.T) {
	doc := buildLonjaDeIslaDocument()
	cat := buildCatalog()

	res := export.GenerateLonjaDeIslaExcelRows(doc, cat, export.Options{StartSequence: 1})
	for _, r := range res.Rows {
		assert.NotContains(t, r.LINDESCLIN, "FANTASMA")
	}
	require.NotEmpty(t, res.Warnings)
	assert.Equal(t, export.WarnBarcoNoEncontrado, res.Warnings[0].Code)
	assert.Equal(t, "999", res.Warnings[0].Value)

	summary := export.GenerateLonjaDeIslaLinkedSummary(doc, cat)
	require.Len(t, summary, 4)
	assert.Equal(t, 20, *summary[0].SupplierID)
	assert.Equal(t, 12, *summary[1].SupplierID)
	assert.Equal(t, 13, *summary[2].SupplierID)
	assert.False(t, summary[2].Error)

	ghost := summary[3]
	assert.True(t, ghost.Error)
	assert.Nil(t, ghost.SupplierID)
	assert.Equal(t, "FANTASMA", ghost.BarcoNombre)
	assert.Equal(t, "30", ghost.DeclaredTotalAmount.String())
}

func TestLonjaDeIsla_VendiduriaDesconocidaMarcaErrorEnResumen(t *testing.T) {
	cat := buildCatalog()
	cat.Barcos[0].Vendiduria = "VENDEDURIA FANTASMA"
	doc := buildLonjaDeIslaDocument()
	doc.Tables.Ventas = doc.Tables.Ventas[1:2] // solo el 742

	res := export.GenerateLonjaDeIslaExcelRows(doc, cat, export.Options{StartSequence: 1})
	for _, r := range res.Rows {
		assert.NotEqual(t, ivaPescado, r.LINTIPIVA, "no se exporta género del barco")
	}
	require.NotEmpty(t, res.Warnings)
	assert.Equal(t, export.WarnVendiduriaNoEncontrada, res.Warnings[0].Code)

	summary := export.GenerateLonjaDeIslaLinkedSummary(doc, cat)
	require.Len(t, summary, 1)
	assert.True(t, summary[0].Error)
	assert.Nil(t, summary[0].SupplierID)
	assert.Equal(t, "38", summary[0].DeclaredTotalAmount.String())
}

func TestLonjaDeIsla_SinTarifasNoHayFacturaDeLonja(t *testing.T) {
	cat := buildCatalog()
	delete(cat.Servicios, reference.ScheduleLonjaDeIsla)

	res := export.GenerateLonjaDeIslaExcelRows(buildLonjaDeIslaDocument(), cat, export.Options{StartSequence: 1})
	assert.Len(t, res.Rows, 4)
	assert.Equal(t, 3, res.NextSequence)
}

// ── Asoc ──────────────────────────────────────────────────────────────────────

func TestAsoc_SubastaFacturaUnicaConPrestamoDeCajas(t *testing.T) {
	doc := buildAsocDocument(lonja.Subasta)
	res := export.GenerateAsocExcelRows(doc, buildCatalog(), export.Options{StartSequence: 40})

	require.Len(t, res.Rows, 5)
	assert.Equal(t, 41, res.NextSequence)
	for _, r := range res.Rows {
		assert.Equal(t, "400020", r.CABCODPRO)
		assert.Equal(t, "2005202440", r.CABNUMDOC)
	}
	assert.Equal(t, "PULPO - PEPE MANUEL", res.Rows[0].LINDESCLIN)
	assert.Equal(t, "8.43", res.Rows[2].LINPRCMONEDA.String(), "3% de 281")
	assert.Equal(t, "0.42", res.Rows[3].LINPRCMONEDA.String(), "5% de la tarifa AS1")

	caja := res.Rows[4]
	assert.Equal(t, "1015", caja.LINCODART)
	assert.Equal(t, "5", caja.LINUNIDADES.String())
	assert.Equal(t, "5.5", caja.LINPRCMONEDA.String())
}

func TestAsoc_VentaDirectaFacturaPorBarco(t *testing.T) {
	doc := buildAsocDocument(lonja.VentaDirecta)
	doc.Tables.Subastas = append(doc.Tables.Subastas, asoc.Subasta{Cod: "999", Barco: "FANTASMA", Especie: "PULPO", Peso: "1", Precio: "1"})
	cat := buildCatalog()

	res := export.GenerateAsocExcelRows(doc, cat, export.Options{StartSequence: 1})
	// barco 742, barco HU-2-1234 y tarifas de la asociación
	require.Len(t, res.Rows, 3)
	assert.Equal(t, 4, res.NextSequence)
	assert.Equal(t, "400742", res.Rows[0].CABCODPRO)
	assert.Equal(t, "401234", res.Rows[1].CABCODPRO)
	assert.Equal(t, "400020", res.Rows[2].CABCODPRO)
	assert.Equal(t, "4.23", res.Rows[2].LINPRCMONEDA.String(), "1,5% de 282")

	summary := export.GenerateAsocLinkedSummary(doc, cat)
	require.Len(t, summary, 3)
	assert.True(t, summary[2].Error)
	assert.Equal(t, "183", summary[0].DeclaredTotalAmount.String())
}

func TestAsoc_AsociacionDesconocida(t *testing.T) {
	doc := buildAsocDocument(lonja.Subasta)
	doc.Details.Lonja = "OTRA"

	res := export.GenerateAsocExcelRows(doc, buildCatalog(), export.Options{StartSequence: 1})
	assert.Empty(t, res.Rows)
	assert.Equal(t, 1, res.NextSequence)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, export.WarnLonjaNoEncontrada, res.Warnings[0].Code)
}

func TestProductoDesconocido_FilaConAviso(t *testing.T) {
	doc := buildAsocDocument(lonja.VentaDirecta)
	doc.Tables.Subastas[0].Especie = "ERIZO"

	res := export.GenerateAsocExcelRows(doc, buildCatalog(), export.Options{StartSequence: 1})
	assert.Equal(t, "", res.Rows[0].LINCODART)
	assert.Equal(t, "ERIZO", res.Rows[0].LINDESCLIN)
	require.NotEmpty(t, res.Warnings)
	assert.Equal(t, export.WarnProductoNoEncontrado, res.Warnings[0].Code)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

const ivaPescado = "RED10"

func distinctDocNumbers(rows []export.ExportRow) map[string]bool {
	out := map[string]bool{}
	for _, r := range rows {
		out[r.CABNUMDOC] = true
	}
	return out
}

func distinctCount(rows []export.ExportRow) int {
	return len(distinctDocNumbers(rows))
}

func intPtr(v int) *int { return &v }

func buildCatalog() *reference.Tables {
	pct := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return &reference.Tables{
		Barcos: []reference.Barco{
			{Cod: "742", Nombre: "PEPE MANUEL", CodA3erp: "400742", CodBrisapp: intPtr(12), Vendiduria: "B21000001"},
			{Cod: "HU-2-1234", Nombre: "NUEVO LUCERO", CodA3erp: "401234", CodBrisapp: intPtr(13), Vendiduria: "Vendeduría del Sur"},
		},
		BarcosVentaDirecta: []reference.Barco{
			{Cod: "CA-3-555", Nombre: "VIRGEN DEL CARMEN", CodA3erp: "405555", CodBrisapp: intPtr(20)},
		},
		Armadores: []reference.Armador{
			{CIF: "E72452600", Nombre: "HERMANOS CORDERO GIL CB", CodA3erp: "400300", CodBrisapp: intPtr(31)},
			{CIF: "B21456789", Nombre: "PESCADOS LUZ SL", CodA3erp: "400301"},
		},
		Productos: []reference.Producto{
			{Nombre: "RAPE", CodA3erp: "1001"},
			{Nombre: "PULPO", CodA3erp: "1002"},
			{Nombre: "GAMBA BLANCA", CodA3erp: "1003"},
			{Nombre: "CHOCO", Alias: []string{"SEPIA"}, CodA3erp: "1004"},
		},
		Lonjas: []reference.Lonja{
			{Nombre: "COFRADIA DE PESCADORES DE CONIL", CIF: "G11000000", CodA3erp: "400001"},
			{Nombre: "LONJA DE ISLA CRISTINA", CIF: "Q2100000A", CodA3erp: "400010"},
			{Nombre: "ASOCIACION DE ARMADORES DE PUNTA UMBRIA", CIF: "G21999999", CodA3erp: "400020"},
		},
		DatosVendidurias: []reference.Vendiduria{
			{Nombre: "VENDEDURIA DEL SUR", CIF: "B21000001", CodA3erp: "400200", PorcentajeServicios: pct("2")},
		},
		Servicios: map[string][]reference.Servicio{
			reference.ScheduleLonjaDeIsla: {
				{Codigo: "G4", Descripcion: "TARIFA G4", Porcentaje: pct("2")},
				{Codigo: "EXTRA", Descripcion: "RECARGO G4", Porcentaje: pct("10"), SobreServicio: "G4"},
			},
			reference.ScheduleAsocVentaDirecta: {
				{Codigo: "AVD", Descripcion: "CUOTA ASOCIACION", Porcentaje: pct("1.5")},
			},
			reference.ScheduleAsocSubasta: {
				{Codigo: "AS1", Descripcion: "GASTOS SUBASTA", Porcentaje: pct("3")},
				{Codigo: "AS2", Descripcion: "RECARGO SUBASTA", Porcentaje: pct("5"), SobreServicio: "AS1"},
			},
		},
	}
}

func buildCofraDocument(fecha string) cofra.Document {
	subasta := func(armador, cif, especie, kilos, precio string) cofra.Subasta {
		return cofra.Subasta{
			Armador: cofra.Armador{Nombre: armador, CIF: cif},
			Barco:   cofra.Barco{Cod: "742", Nombre: "PEPE MANUEL"},
			Kilos:   kilos, Pescado: especie, Precio: precio,
		}
	}
	return cofra.Document{
		Detalles: cofra.Detalles{Lonja: "COFRADIA DE PESCADORES DE CONIL", CifLonja: "G11000000", Numero: "F-2024-118", Fecha: fecha},
		Tablas: cofra.Tablas{
			Subastas: []cofra.Subasta{
				subasta("HERMANOS CORDERO GIL CB", "E72452600", "RAPE", "120,5", "8,20"),
				subasta("PESCADOS LUZ SL", "B21456789", "CHOCO", "10", "3,333"),
				subasta("HERMANOS CORDERO GIL CB", "e72452600", "PULPO", "20", "10,6"),
				subasta("DESCONOCIDO", "X9999999Z", "RAPE", "5", "2"),
			},
			Servicios: []cofra.Servicio{
				{Codigo: "5001", Descripcion: "TARIFA G4", IVA: "21", Unidades: "1", Precio: "24,00", Importe: "24,00"},
			},
		},
	}
}

func buildLonjaDeIslaDocument() lonjadeisla.Document {
	return lonjadeisla.Document{
		Details: lonjadeisla.Details{Lonja: "Lonja de Isla Cristina", Fecha: "05/04/2024"},
		Tables: lonjadeisla.Tables{
			Ventas: []lonjadeisla.Venta{
				{Cod: "CA-3-555", Barco: "VIRGEN DEL CARMEN", Especie: "GAMBA BLANCA", Peso: "10", Precio: "20"},
				{Cod: "742", Barco: "PEPE MANUEL", Especie: "RAPE", Peso: "4", Precio: "9,5"},
				{Cod: "HU-2-1234", Barco: "NUEVO LUCERO", Especie: "SEPIA", Peso: "5", Precio: "8"},
				{Cod: "999", Barco: "FANTASMA", Especie: "PULPO", Peso: "3", Precio: "10"},
			},
		},
	}
}

func buildAsocDocument(tipo lonja.TipoSubasta) asoc.Document {
	return asoc.Document{
		Details: asoc.Details{Lonja: "Asociación de Armadores de Punta Umbría", Fecha: "20/05/2024", TipoSubasta: tipo},
		Tables: asoc.Tables{
			Subastas: []asoc.Subasta{
				{Cod: "742", Barco: "PEPE MANUEL", Especie: "PULPO", Peso: "30", Precio: "6,10", Cajas: "3"},
				{Cod: "HU-2-1234", Barco: "NUEVO LUCERO", Especie: "CHOCO", Peso: "12,25", Precio: "8", Cajas: "2"},
			},
		},
	}
}
