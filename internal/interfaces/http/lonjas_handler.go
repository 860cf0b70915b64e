package http

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/dto"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/export"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/lonjas"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/infrastructure/a3erp"
)

// Formatos de salida de la exportación.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeCSV  = "text/csv; charset=windows-1252"
)

// LonjasHandler validación y exportación de lotes de documentos de lonja.
type LonjasHandler struct {
	svc *lonjas.Service
	now func() time.Time
}

// NewLonjasHandler construye el handler.
func NewLonjasHandler(svc *lonjas.Service) *LonjasHandler {
	return &LonjasHandler{svc: svc, now: time.Now}
}

// Dialects lista los formatos soportados.
// GET /api/lonjas/dialects
func (h *LonjasHandler) Dialects(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"dialects": lonjas.Dialects})
}

// Validate valida y parsea el lote sin exportar.
// POST /api/lonjas/:dialect/validate → 200 dto.ValidateResponse | 400 | 404 | 422
func (h *LonjasHandler) Validate(c *fiber.Ctx) error {
	d, err := lonjas.ParseDialect(c.Params("dialect"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.DocumentsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	raw, err := in.RawDocuments()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "documents debe ser un array de documentos"})
	}
	n, err := h.svc.Validate(c.UserContext(), d, raw)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ValidateResponse{Valid: true, Dialect: string(d), Documents: n})
}

// Export genera las filas A3ERP y el resumen del lote.
// POST /api/lonjas/:dialect/export?format=json|xlsx|csv
func (h *LonjasHandler) Export(c *fiber.Ctx) error {
	d, err := lonjas.ParseDialect(c.Params("dialect"))
	if err != nil {
		return writeError(c, err)
	}
	format := c.Query("format", FormatJSON)
	if format != FormatJSON && format != FormatXLSX && format != FormatCSV {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORMAT", Message: "format debe ser json, xlsx o csv"})
	}
	var in dto.ExportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.StartSequence < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Field: "startSequence", Message: "startSequence debe ser positivo"})
	}
	raw, err := in.RawDocuments()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "documents debe ser un array de documentos"})
	}

	batch, err := h.svc.Export(c.UserContext(), d, raw, export.Options{CABSERIE: in.CABSERIE, StartSequence: in.StartSequence})
	if err != nil {
		return writeError(c, err)
	}
	c.Set("X-Batch-Id", batch.ID)

	var buf bytes.Buffer
	var mime string
	switch format {
	case FormatXLSX:
		if err := a3erp.WriteXLSX(&buf, batch.Rows, batch.LinkedSummary); err != nil {
			return writeError(c, err)
		}
		mime = mimeXLSX
	case FormatCSV:
		if err := a3erp.WriteCSV(&buf, batch.Rows); err != nil {
			return writeError(c, err)
		}
		mime = mimeCSV
	default:
		return c.JSON(batch)
	}
	c.Attachment(a3erp.BuildFilename(string(d), batch.ID, format, h.now()))
	c.Set(fiber.HeaderContentType, mime)
	return c.Send(buf.Bytes())
}

// writeError traduce los errores del pipeline a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	if ve, ok := lonja.AsValidationError(err); ok {
		doc := ve.Document
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:     "VALIDATION_ERROR",
			Message:  ve.Message,
			Field:    ve.Field,
			Path:     ve.Path,
			Document: &doc,
		})
	}
	if pe, ok := lonja.AsParsingError(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "PARSING_ERROR",
			Message: err.Error(),
			Field:   pe.Field,
		})
	}
	switch {
	case errors.Is(err, domain.ErrUnsupportedDialect):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_DIALECT", Message: err.Error()})
	case errors.Is(err, domain.ErrEmptyBatch):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_BATCH", Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TIMEOUT", Message: "la petición se canceló antes de terminar"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
