package a3erp_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/export"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/infrastructure/a3erp"
)

// ── XLSX ──────────────────────────────────────────────────────────────────────

func TestWriteXLSX_CabeceraYFilas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, a3erp.WriteXLSX(&buf, buildRows(), nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{a3erp.SheetRows}, f.GetSheetList(), "sin resumen no hay segunda hoja")
	rows, err := f.GetRows(a3erp.SheetRows)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, a3erp.Columns, rows[0])
	assert.Equal(t, "120320247", rows[1][1])
	assert.Equal(t, "0400300", rows[1][3], "los códigos conservan los ceros")
	assert.Equal(t, "120.5", rows[1][7])
	assert.Equal(t, "8.2", rows[1][8])
	assert.Equal(t, "RED10", rows[1][9])
}

func TestWriteXLSX_HojaResumen(t *testing.T) {
	supplier := 31
	summary := []export.LinkedSummaryEntry{
		{SupplierID: &supplier, Date: "12/03/2024", BarcoNombre: "PEPE MANUEL",
			DeclaredTotalNetWeight: decimal.RequireFromString("140.5"), DeclaredTotalAmount: decimal.RequireFromString("1200.1")},
		{Date: "12/03/2024", BarcoNombre: "FANTASMA", Error: true},
	}
	var buf bytes.Buffer
	require.NoError(t, a3erp.WriteXLSX(&buf, buildRows(), summary))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(a3erp.SheetSummary)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.GreaterOrEqual(t, len(rows[1]), 5)
	assert.Equal(t, []string{"31", "12/03/2024", "PEPE MANUEL", "140.5", "1200.1"}, rows[1][:5])
	require.Len(t, rows[2], 6)
	assert.Equal(t, "", rows[2][0])
	assert.Equal(t, "SI", rows[2][5])
}

// ── CSV ───────────────────────────────────────────────────────────────────────

func TestWriteCSV_Windows1252YComaDecimal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, a3erp.WriteCSV(&buf, buildRows()))

	out := buf.Bytes()
	lines := strings.Split(strings.TrimSuffix(string(out), "\r\n"), "\r\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(a3erp.Columns, ";"), lines[0])
	assert.Equal(t, "L;120320247;12/03/2024;0400300;COFRADIA F-2024-118;1001;RAPE;120,5;8,2;RED10", lines[1])

	assert.True(t, bytes.Contains(out, []byte{'M', 'A', 0xD1, 'A', 'N', 'A'}), "Ñ en Windows-1252")
	assert.False(t, bytes.Contains(out, []byte("Ñ")), "no queda UTF-8")
}

// ── Nombre de fichero ─────────────────────────────────────────────────────────

func TestBuildFilename(t *testing.T) {
	now := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "cofra_ab-12_2024-03-12.xlsx", a3erp.BuildFilename("cofra", "ab-12", "xlsx", now))
	assert.Equal(t, "lonja_de_isla_x_2024-03-12.csv", a3erp.BuildFilename("lonja de isla", "/x", "csv", now))
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func buildRows() []export.ExportRow {
	return []export.ExportRow{
		{
			CABSERIE: "L", CABNUMDOC: "120320247", CABFECHA: "12/03/2024", CABCODPRO: "0400300",
			CABREFERENCIA: "COFRADIA F-2024-118", LINCODART: "1001", LINDESCLIN: "RAPE",
			LINUNIDADES: decimal.RequireFromString("120.5"), LINPRCMONEDA: decimal.RequireFromString("8.2"),
			LINTIPIVA: "RED10",
		},
		{
			CABSERIE: "L", CABNUMDOC: "120320247", CABFECHA: "12/03/2024", CABCODPRO: "0400300",
			CABREFERENCIA: "COFRADIA F-2024-118", LINCODART: "1005", LINDESCLIN: "MAÑANA",
			LINUNIDADES: decimal.NewFromInt(1), LINPRCMONEDA: decimal.NewFromInt(3),
			LINTIPIVA: "RED10",
		},
	}
}
