package repository

import (
	"context"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"
)

// ReferenceSource carga las tablas de referencia completas.
type ReferenceSource interface {
	LoadTables(ctx context.Context) (*reference.Tables, error)
}

// ReferenceRepository origen de referencia que además admite sustituir todas las tablas.
type ReferenceRepository interface {
	ReferenceSource
	ReplaceTables(ctx context.Context, t *reference.Tables) error
}
