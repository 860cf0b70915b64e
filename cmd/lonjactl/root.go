package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/lonjas"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/repository"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/infrastructure/postgres"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/infrastructure/refdata"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/pkg/config"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/pkg/logger"
)

// cli estado compartido por los subcomandos. La configuración se carga al primer uso
// para que los comandos que no la necesitan funcionen sin entorno.
type cli struct {
	refdataPath string
	logLevel    string

	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "lonjactl",
		Short:         "Validación y exportación A3ERP de liquidaciones de lonja",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.log = logger.New(logger.Config{Env: "development", Level: c.logLevel, Out: cmd.ErrOrStderr()})
		},
	}
	root.PersistentFlags().StringVar(&c.refdataPath, "refdata", "",
		"YAML de tablas de referencia (por defecto REFDATA_SOURCE/REFDATA_PATH)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "nivel de log (debug, info, warn, error)")

	root.AddCommand(
		c.newValidateCmd(),
		c.newExportCmd(),
		c.newRefDataCmd(),
		c.newMigrateCmd(),
		c.newTokenCmd(),
		c.newHashPasswordCmd(),
		c.newUserCmd(),
	)
	return root
}

func (c *cli) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *cli) pool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	if !cfg.DB.Configured() {
		return nil, fmt.Errorf("base de datos no configurada: defina DATABASE_URL o DB_HOST")
	}
	return postgres.NewPool(ctx, cfg.DB)
}

// catalog carga las tablas de --refdata o, sin flag, del origen configurado.
func (c *cli) catalog(ctx context.Context) (*lonjas.CatalogStore, func(), error) {
	noop := func() {}
	if c.refdataPath != "" {
		store, err := lonjas.NewCatalogStore(ctx, refdata.NewFileSource(c.refdataPath), c.log)
		return store, noop, err
	}
	cfg, err := c.config()
	if err != nil {
		return nil, noop, err
	}
	var src repository.ReferenceSource = refdata.NewFileSource(cfg.RefData.Path)
	closeFn := noop
	if cfg.RefData.Source == config.RefDataPostgres {
		pool, err := c.pool(ctx)
		if err != nil {
			return nil, noop, err
		}
		src = postgres.NewReferenceRepository(pool)
		closeFn = pool.Close
	}
	store, err := lonjas.NewCatalogStore(ctx, src, c.log)
	if err != nil {
		closeFn()
		return nil, noop, err
	}
	return store, closeFn, nil
}

func (c *cli) defaults() lonjas.Defaults {
	d := lonjas.Defaults{CABSERIE: "L", StartSequence: 1}
	if c.refdataPath != "" {
		return d
	}
	if cfg, err := c.config(); err == nil {
		d = lonjas.Defaults{CABSERIE: cfg.Export.CABSERIE, StartSequence: cfg.Export.StartSequence}
	}
	return d
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
