package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/dto"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
)

// readDocuments acepta un array de documentos o el mismo cuerpo que la API ({"documents": [...]}).
// "-" lee de stdin.
func readDocuments(path string, stdin io.Reader) ([]lonja.RawDocument, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("leer documentos: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return lonja.DecodeRawDocuments(data)
	}
	var req dto.DocumentsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decodificar documentos: %w", err)
	}
	return req.RawDocuments()
}
