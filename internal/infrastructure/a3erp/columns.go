// Package a3erp escribe las filas de importación A3ERP en los formatos que acepta el ERP:
// libro xlsx (hoja de líneas más hoja de resumen) y CSV separado por punto y coma en Windows-1252.
package a3erp

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/export"
)

// Columns cabecera de importación, en el orden que espera A3ERP.
var Columns = []string{
	"CABSERIE",
	"CABNUMDOC",
	"CABFECHA",
	"CABCODPRO",
	"CABREFERENCIA",
	"LINCODART",
	"LINDESCLIN",
	"LINUNIDADES",
	"LINPRCMONEDA",
	"LINTIPIVA",
}

// summaryColumns cabecera de la hoja de resumen.
var summaryColumns = []string{
	"Proveedor",
	"Fecha",
	"Barco",
	"Peso neto declarado",
	"Importe declarado",
	"Error",
}

func textCells(r export.ExportRow) []string {
	return []string{
		r.CABSERIE,
		r.CABNUMDOC,
		r.CABFECHA,
		r.CABCODPRO,
		r.CABREFERENCIA,
		r.LINCODART,
		r.LINDESCLIN,
		r.LINUNIDADES.String(),
		r.LINPRCMONEDA.String(),
		r.LINTIPIVA,
	}
}

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
	multiUnderscore = regexp.MustCompile(`_{2,}`)
)

// BuildFilename nombre de descarga: {dialecto}_{lote}_{YYYY-MM-DD}.{ext}, solo con caracteres seguros.
func BuildFilename(dialect, batchID, ext string, now time.Time) string {
	s := nonAlphanumeric.ReplaceAllString(dialect+"_"+batchID, "_")
	s = strings.Trim(multiUnderscore.ReplaceAllString(s, "_"), "_")
	if len(s) > 80 {
		s = s[:80]
	}
	return fmt.Sprintf("%s_%s.%s", s, now.Format("2006-01-02"), ext)
}
