package dto

import (
	"encoding/json"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
)

// DocumentsRequest lote de documentos crudos tal como los entrega el extractor.
type DocumentsRequest struct {
	Documents json.RawMessage `json:"documents"`
}

// ExportRequest lote más opciones de exportación; los campos vacíos toman el valor configurado.
type ExportRequest struct {
	DocumentsRequest
	CABSERIE      string `json:"cabserie"`
	StartSequence int    `json:"startSequence"`
}

// RawDocuments decodifica los documentos conservando los números como json.Number.
func (r DocumentsRequest) RawDocuments() ([]lonja.RawDocument, error) {
	if len(r.Documents) == 0 {
		return nil, nil
	}
	return lonja.DecodeRawDocuments(r.Documents)
}

// ValidateResponse resultado de una validación correcta.
type ValidateResponse struct {
	Valid     bool   `json:"valid"`
	Dialect   string `json:"dialect"`
	Documents int    `json:"documents"`
}
