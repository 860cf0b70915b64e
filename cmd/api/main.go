package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/auth"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/lonjas"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/repository"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/infrastructure/postgres"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/infrastructure/refdata"
	httpRouter "github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/interfaces/http"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/pkg/config"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("refdata", cfg.RefData.Source).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// PostgreSQL es opcional salvo que las tablas de referencia vivan allí.
	var pool *pgxpool.Pool
	if cfg.DB.Configured() {
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
	}

	var source repository.ReferenceSource
	switch cfg.RefData.Source {
	case config.RefDataPostgres:
		source = postgres.NewReferenceRepository(pool)
	default:
		source = refdata.NewFileSource(cfg.RefData.Path)
	}
	catalog, err := lonjas.NewCatalogStore(ctx, source, log)
	if err != nil {
		log.Fatal().Err(err).Msg("tablas de referencia")
	}

	lonjasSvc := lonjas.NewService(catalog, lonjas.Defaults{
		CABSERIE:      cfg.Export.CABSERIE,
		StartSequence: cfg.Export.StartSequence,
	}, log)

	var authUC *auth.AuthUseCase
	if pool != nil {
		authUC = auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
	} else {
		log.Warn().Msg("sin base de datos: login deshabilitado, usar lonjactl token")
	}
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: todas las rutas protegidas responderán 401")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Duration(cfg.HTTP.TimeoutSecs) * time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(httpRouter.RequestTimeout(time.Duration(cfg.HTTP.TimeoutSecs) * time.Second))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.HTTP.DocsFile != "" {
		if err := httpRouter.Docs(app, cfg.HTTP.DocsFile, cfg.App.Name); err != nil {
			log.Warn().Err(err).Msg("documentación no disponible")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":          "ok",
			"service":         cfg.App.Name,
			"refdataLoadedAt": catalog.LoadedAt(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LonjasSvc: lonjasSvc,
		Catalog:   catalog,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
