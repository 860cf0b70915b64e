package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/dto"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/lonjas"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/pkg/logger"
)

// RefDataHandler consulta y recarga de las tablas de referencia.
type RefDataHandler struct {
	store *lonjas.CatalogStore
	log   *logger.Logger
}

// NewRefDataHandler construye el handler.
func NewRefDataHandler(store *lonjas.CatalogStore, log *logger.Logger) *RefDataHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &RefDataHandler{store: store, log: log}
}

// Get devuelve las tablas vigentes.
// GET /api/refdata
func (h *RefDataHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"loadedAt": h.store.LoadedAt(),
		"tables":   h.store.Tables(),
	})
}

// Reload vuelve a leer el origen configurado. Si falla siguen las tablas anteriores.
// POST /api/refdata/reload (admin)
func (h *RefDataHandler) Reload(c *fiber.Ctx) error {
	t, err := h.store.Reload(c.UserContext())
	if err != nil {
		h.log.Error().Err(err).Str("user_id", GetUserID(c)).Msg("recarga de tablas de referencia fallida")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "REFDATA_RELOAD_FAILED", Message: err.Error()})
	}
	h.log.Info().Str("user_id", GetUserID(c)).Msg("tablas de referencia recargadas")
	return c.JSON(fiber.Map{
		"loadedAt": h.store.LoadedAt(),
		"counts": fiber.Map{
			"barcos":             len(t.Barcos),
			"barcosVentaDirecta": len(t.BarcosVentaDirecta),
			"armadores":          len(t.Armadores),
			"productos":          len(t.Productos),
			"lonjas":             len(t.Lonjas),
			"datosVendidurias":   len(t.DatosVendidurias),
			"servicios":          len(t.Servicios),
		},
	})
}
