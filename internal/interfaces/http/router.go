package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/auth"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/lonjas"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/pkg/jwt"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/pkg/logger"
)

// RouterDeps dependencias para el router. AuthUC es opcional: sin base de datos no hay login
// y las rutas protegidas solo aceptan tokens emitidos con lonjactl token.
type RouterDeps struct {
	LonjasSvc *lonjas.Service
	Catalog   *lonjas.CatalogStore
	AuthUC    *auth.AuthUseCase
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público)
	var authHandler *AuthHandler
	if deps.AuthUC != nil {
		authHandler = NewAuthHandler(deps.AuthUC)
		api.Post("/auth/login", authHandler.Login)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	operador := RequireRole(jwt.RoleAdmin, jwt.RoleOperador)
	admin := RequireRole(jwt.RoleAdmin)

	if authHandler != nil {
		protected.Post("/auth/register", admin, authHandler.Register)
	}

	// Lonjas: validar y exportar
	lonjasGroup := protected.Group("/lonjas", operador)
	lonjasHandler := NewLonjasHandler(deps.LonjasSvc)
	lonjasGroup.Get("/dialects", lonjasHandler.Dialects)
	lonjasGroup.Post("/:dialect/validate", lonjasHandler.Validate)
	lonjasGroup.Post("/:dialect/export", lonjasHandler.Export)

	// Tablas de referencia
	if deps.Catalog != nil {
		refHandler := NewRefDataHandler(deps.Catalog, deps.Log)
		protected.Get("/refdata", operador, refHandler.Get)
		protected.Post("/refdata/reload", admin, refHandler.Reload)
	}
}
