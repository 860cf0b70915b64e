package a3erp

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/export"
)

// CSVWriter escribe filas A3ERP separadas por ';' con coma decimal y codificación Windows-1252.
// Los caracteres que no existen en Windows-1252 se sustituyen.
type CSVWriter struct {
	enc io.WriteCloser
	csv *csv.Writer
}

// NewCSVWriter construye el writer sobre w. Hay que llamar a Close para vaciar el codificador.
func NewCSVWriter(w io.Writer) *CSVWriter {
	enc := transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
	cw := csv.NewWriter(enc)
	cw.Comma = ';'
	cw.UseCRLF = true
	return &CSVWriter{enc: enc, csv: cw}
}

// WriteHeader escribe la fila de cabecera.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteRows escribe las filas con los importes en formato español.
func (w *CSVWriter) WriteRows(rows []export.ExportRow) error {
	for i := range rows {
		cells := textCells(rows[i])
		cells[7] = decimalComma(cells[7])
		cells[8] = decimalComma(cells[8])
		if err := w.csv.Write(cells); err != nil {
			return fmt.Errorf("fila %d: %w", i, err)
		}
	}
	return nil
}

// Close vacía el csv y el codificador.
func (w *CSVWriter) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return err
	}
	return w.enc.Close()
}

// WriteCSV cabecera más filas en un solo paso.
func WriteCSV(w io.Writer, rows []export.ExportRow) error {
	cw := NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteRows(rows); err != nil {
		return err
	}
	return cw.Close()
}

func decimalComma(s string) string {
	return strings.Replace(s, ".", ",", 1)
}
