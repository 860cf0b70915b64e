package a3erp

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/export"
)

// Nombres de hoja del libro.
const (
	SheetRows    = "A3ERP"
	SheetSummary = "Resumen"
)

// WriteXLSX escribe un libro con las líneas de importación y, si hay, el resumen por barco.
// Los importes van como número; los códigos siempre como texto para no perder ceros a la izquierda.
func WriteXLSX(w io.Writer, rows []export.ExportRow, summary []export.LinkedSummaryEntry) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetRows); err != nil {
		return fmt.Errorf("renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("estilo cabecera: %w", err)
	}

	if err := writeHeader(f, SheetRows, Columns, bold); err != nil {
		return err
	}
	for i, r := range rows {
		cells := []any{
			r.CABSERIE, r.CABNUMDOC, r.CABFECHA, r.CABCODPRO, r.CABREFERENCIA,
			r.LINCODART, r.LINDESCLIN,
			r.LINUNIDADES.InexactFloat64(), r.LINPRCMONEDA.InexactFloat64(),
			r.LINTIPIVA,
		}
		if err := setRow(f, SheetRows, i+2, cells); err != nil {
			return err
		}
	}

	if len(summary) > 0 {
		if _, err := f.NewSheet(SheetSummary); err != nil {
			return fmt.Errorf("crear hoja %s: %w", SheetSummary, err)
		}
		if err := writeHeader(f, SheetSummary, summaryColumns, bold); err != nil {
			return err
		}
		for i, e := range summary {
			var supplier any = ""
			if e.SupplierID != nil {
				supplier = *e.SupplierID
			}
			errCell := ""
			if e.Error {
				errCell = "SI"
			}
			cells := []any{
				supplier, e.Date, e.BarcoNombre,
				e.DeclaredTotalNetWeight.InexactFloat64(), e.DeclaredTotalAmount.InexactFloat64(),
				errCell,
			}
			if err := setRow(f, SheetSummary, i+2, cells); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("escribir xlsx: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, columns []string, style int) error {
	cells := make([]any, len(columns))
	for i, c := range columns {
		cells[i] = c
	}
	if err := setRow(f, sheet, 1, cells); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("%s fila %d: %w", sheet, row, err)
	}
	return nil
}
