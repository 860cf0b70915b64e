package main

import (
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/infrastructure/postgres"
)

func (c *cli) newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema PostgreSQL (up, down, steps N, version)",
	}
	run := func(fn func(m *migrate.Migrate, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !cfg.DB.Configured() {
				return fmt.Errorf("base de datos no configurada: defina DATABASE_URL o DB_HOST")
			}
			m, err := postgres.NewMigrator(cfg.DB.ConnectionString())
			if err != nil {
				return err
			}
			defer m.Close()
			return fn(m, cmd, args)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: run(func(m *migrate.Migrate, cmd *cobra.Command, _ []string) error {
				if err := postgres.MigrateUp(m); err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "migraciones aplicadas\n")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte todas las migraciones",
			Args:  cobra.NoArgs,
			RunE: run(func(m *migrate.Migrate, cmd *cobra.Command, _ []string) error {
				if err := postgres.MigrateDown(m); err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "migraciones revertidas\n")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "steps <n>",
			Short: "Aplica (n > 0) o revierte (n < 0) n migraciones",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(m *migrate.Migrate, cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("steps: número inválido %q", args[0])
				}
				if err := postgres.MigrateSteps(m, n); err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "aplicados %d pasos\n", n)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión del esquema",
			Args:  cobra.NoArgs,
			RunE: run(func(m *migrate.Migrate, cmd *cobra.Command, _ []string) error {
				version, dirty, err := m.Version()
				if err != nil {
					return fmt.Errorf("leer versión: %w", err)
				}
				printf(cmd.OutOrStdout(), "versión: %d, dirty: %v\n", version, dirty)
				return nil
			}),
		},
	)
	return cmd
}
