package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/export"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/lonjas"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/infrastructure/a3erp"
)

func (c *cli) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <dialecto> <documentos.json|->",
		Short: "Valida y parsea un lote sin exportarlo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := lonjas.ParseDialect(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q", err, args[0])
			}
			raw, err := readDocuments(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}
			// la validación no consulta tablas
			svc := lonjas.NewService(nil, lonjas.Defaults{}, c.log)
			n, err := svc.Validate(cmd.Context(), d, raw)
			if err != nil {
				return describe(err)
			}
			printf(cmd.OutOrStdout(), "%d documentos %s válidos\n", n, d)
			return nil
		},
	}
}

func (c *cli) newExportCmd() *cobra.Command {
	var (
		out           string
		cabserie      string
		startSequence int
	)
	cmd := &cobra.Command{
		Use:   "export <dialecto> <documentos.json|->",
		Short: "Genera las filas A3ERP de un lote",
		Long: `Genera las filas de importación A3ERP y el resumen por barco.
El formato de salida se deduce de la extensión de --out (.xlsx, .csv o .json);
sin --out se escribe JSON por la salida estándar.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := lonjas.ParseDialect(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q", err, args[0])
			}
			raw, err := readDocuments(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}
			catalog, closeFn, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			svc := lonjas.NewService(catalog, c.defaults(), c.log)
			batch, err := svc.Export(cmd.Context(), d, raw, export.Options{CABSERIE: cabserie, StartSequence: startSequence})
			if err != nil {
				return describe(err)
			}
			if err := writeBatch(cmd, batch, out); err != nil {
				return err
			}
			for _, w := range batch.Warnings {
				printf(cmd.ErrOrStderr(), "aviso documento %d: %s\n", w.Document, w.Message)
			}
			printf(cmd.ErrOrStderr(), "%d filas, siguiente secuencia %d\n", len(batch.Rows), batch.NextSequence)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "fichero de salida (.xlsx, .csv o .json)")
	cmd.Flags().StringVar(&cabserie, "cabserie", "", "serie de las facturas (por defecto EXPORT_CABSERIE)")
	cmd.Flags().IntVar(&startSequence, "start-sequence", 0, "primer número de secuencia (por defecto EXPORT_START_SEQUENCE)")
	return cmd
}

func writeBatch(cmd *cobra.Command, batch *lonjas.ExportBatch, out string) error {
	if out == "" {
		return writeJSON(cmd.OutOrStdout(), batch)
	}
	var write func(io.Writer) error
	switch strings.ToLower(filepath.Ext(out)) {
	case ".xlsx":
		write = func(w io.Writer) error { return a3erp.WriteXLSX(w, batch.Rows, batch.LinkedSummary) }
	case ".csv":
		write = func(w io.Writer) error { return a3erp.WriteCSV(w, batch.Rows) }
	case ".json":
		write = func(w io.Writer) error { return writeJSON(w, batch) }
	default:
		return fmt.Errorf("extensión de salida no soportada: %s", out)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("crear %s: %w", out, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe añade la ruta y el documento al mensaje de un error de validación.
func describe(err error) error {
	if ve, ok := lonja.AsValidationError(err); ok {
		return fmt.Errorf("documento %d inválido en %s (%s): %s", ve.Document, ve.Path, ve.Kind, ve.Message)
	}
	return err
}
