package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/infrastructure/postgres"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/infrastructure/refdata"
)

func (c *cli) newRefDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refdata",
		Short: "Tablas de referencia: comprobar, generar SQL, importar y volcar",
	}
	cmd.AddCommand(c.newRefDataCheckCmd(), c.newSeedSQLCmd(), c.newRefDataImportCmd(), c.newRefDataDumpCmd())
	return cmd
}

func (c *cli) newRefDataCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <refdata.yaml>",
		Short: "Lee el YAML y comprueba claves vacías o repetidas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadYAML(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s: %d barcos, %d barcos venta directa, %d armadores, %d productos, %d lonjas, %d vendidurías, %d programas\n",
				args[0], len(t.Barcos), len(t.BarcosVentaDirecta), len(t.Armadores), len(t.Productos),
				len(t.Lonjas), len(t.DatosVendidurias), len(t.Servicios))
			return nil
		},
	}
}

func (c *cli) newSeedSQLCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "seed-sql <refdata.yaml>",
		Short: "Genera un script SQL que carga el YAML en PostgreSQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadYAML(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if out == "" {
				return writeSeedSQL(cmd.OutOrStdout(), t, args[0])
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("crear archivo: %w", err)
			}
			if err := writeSeedSQL(f, t, args[0]); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			printf(cmd.ErrOrStderr(), "Generado %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "fichero SQL de salida (por defecto stdout)")
	return cmd
}

func (c *cli) newRefDataImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <refdata.yaml>",
		Short: "Sustituye las tablas de referencia de PostgreSQL por el contenido del YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := loadYAML(ctx, args[0])
			if err != nil {
				return err
			}
			pool, err := c.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := postgres.NewReferenceRepository(pool).ReplaceTables(ctx, t); err != nil {
				return err
			}
			c.log.Info().Str("source", args[0]).Msg("tablas de referencia importadas")
			printf(cmd.OutOrStdout(), "importadas las tablas de %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) newRefDataDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Escribe en YAML las tablas de referencia de PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := c.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()
			t, err := postgres.NewReferenceRepository(pool).LoadTables(ctx)
			if err != nil {
				return err
			}
			return refdata.Encode(cmd.OutOrStdout(), t)
		},
	}
}

func loadYAML(ctx context.Context, path string) (*reference.Tables, error) {
	return refdata.NewFileSource(path).LoadTables(ctx)
}
