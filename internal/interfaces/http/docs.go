package http

import (
	"fmt"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// DocsPath ruta de la UI de Swagger.
const DocsPath = "docs"

// Docs sirve la UI de Swagger en /docs a partir de un swagger.json estático.
// Sin fichero devuelve error en lugar de arrancar sin documentación.
func Docs(app *fiber.App, file, title string) error {
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("swagger: %w", err)
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: file,
		Path:     DocsPath,
		Title:    title,
	}))
	return nil
}
