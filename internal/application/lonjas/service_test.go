package lonjas_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/export"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/lonjas"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/pkg/logger"
)

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]lonjas.Dialect{
		"cofra":         lonjas.DialectCofra,
		"COFRA":         lonjas.DialectCofra,
		"lonja-de-isla": lonjas.DialectLonjaDeIsla,
		"LonjaDeIsla":   lonjas.DialectLonjaDeIsla,
		"asoc":          lonjas.DialectAsoc,
	} {
		got, err := lonjas.ParseDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := lonjas.ParseDialect("vigo")
	assert.ErrorIs(t, err, domain.ErrUnsupportedDialect)
}

func TestExport_EncadenaSecuenciaEntreDocumentos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})
	svc := lonjas.NewService(buildCatalog(), lonjas.Defaults{CABSERIE: "L", StartSequence: 1}, log)

	batch, err := svc.Export(context.Background(), lonjas.DialectLonjaDeIsla,
		[]lonja.RawDocument{buildRawDocument(), buildRawDocument()}, export.Options{})
	require.NoError(t, err)

	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, 2, batch.Documents)
	assert.Equal(t, 3, batch.NextSequence)
	require.Len(t, batch.Rows, 4, "por documento: una línea de género y la de servicios de lonja")
	assert.Equal(t, "050420241", batch.Rows[0].CABNUMDOC)
	assert.Equal(t, "050420242", batch.Rows[2].CABNUMDOC)
	assert.Equal(t, "L", batch.Rows[0].CABSERIE)

	require.Len(t, batch.LinkedSummary, 4)
	assert.True(t, batch.LinkedSummary[1].Error)

	require.Len(t, batch.Warnings, 2)
	assert.Equal(t, 0, batch.Warnings[0].Document)
	assert.Equal(t, 1, batch.Warnings[1].Document)
	assert.Equal(t, export.WarnBarcoNoEncontrado, batch.Warnings[1].Code)

	assert.Contains(t, buf.String(), `"code":"barco_no_encontrado"`)
	assert.Contains(t, buf.String(), "lote exportado")
}

func TestExport_OpcionesDeLaPeticionGanan(t *testing.T) {
	svc := lonjas.NewService(buildCatalog(), lonjas.Defaults{CABSERIE: "L", StartSequence: 1}, nil)

	batch, err := svc.Export(context.Background(), lonjas.DialectLonjaDeIsla,
		[]lonja.RawDocument{buildRawDocument()}, export.Options{CABSERIE: "Z", StartSequence: 50})
	require.NoError(t, err)
	assert.Equal(t, "Z", batch.Rows[0].CABSERIE)
	assert.Equal(t, "0504202450", batch.Rows[0].CABNUMDOC)
	assert.Equal(t, 51, batch.NextSequence)
}

func TestExport_DocumentoInvalidoAbortaElLote(t *testing.T) {
	svc := lonjas.NewService(buildCatalog(), lonjas.Defaults{}, nil)
	bad := buildRawDocument()
	bad.Tables["ventas"] = []any{}

	batch, err := svc.Export(context.Background(), lonjas.DialectLonjaDeIsla,
		[]lonja.RawDocument{buildRawDocument(), bad}, export.Options{})
	require.Error(t, err)
	assert.Nil(t, batch)
	assert.True(t, lonjas.IsInputError(err))

	ve, ok := lonja.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, 1, ve.Document)
}

func TestExport_LoteVacio(t *testing.T) {
	svc := lonjas.NewService(buildCatalog(), lonjas.Defaults{}, nil)
	_, err := svc.Export(context.Background(), lonjas.DialectCofra, nil, export.Options{})
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestExport_DialectoDesconocido(t *testing.T) {
	svc := lonjas.NewService(buildCatalog(), lonjas.Defaults{}, nil)
	_, err := svc.Export(context.Background(), lonjas.Dialect("vigo"), []lonja.RawDocument{buildRawDocument()}, export.Options{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedDialect)
	assert.False(t, lonjas.IsInputError(err))
}

func TestExport_ContextoCancelado(t *testing.T) {
	svc := lonjas.NewService(buildCatalog(), lonjas.Defaults{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Export(ctx, lonjas.DialectLonjaDeIsla, []lonja.RawDocument{buildRawDocument()}, export.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate_CuentaDocumentos(t *testing.T) {
	svc := lonjas.NewService(buildCatalog(), lonjas.Defaults{}, nil)
	n, err := svc.Validate(context.Background(), lonjas.DialectLonjaDeIsla,
		[]lonja.RawDocument{buildRawDocument(), buildRawDocument(), buildRawDocument()})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = svc.Validate(context.Background(), lonjas.DialectCofra, []lonja.RawDocument{buildRawDocument()})
	assert.True(t, lonjas.IsInputError(err), "un documento de Lonja de Isla no es un Cofra válido")
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func buildRawDocument() lonja.RawDocument {
	return lonja.RawDocument{
		Details: map[string]any{"lonja": "LONJA DE ISLA CRISTINA", "fecha": "05/04/2024"},
		Tables: map[string]any{
			"ventas": []any{
				map[string]any{"cod": "742", "barco": "PEPE MANUEL", "especie": "RAPE", "peso": "4", "precio": "9,5"},
				map[string]any{"cod": "999", "barco": "FANTASMA", "especie": "PULPO", "peso": "3", "precio": "10"},
			},
		},
	}
}

func buildCatalog() *reference.Tables {
	id := 12
	return &reference.Tables{
		Barcos: []reference.Barco{
			{Cod: "742", Nombre: "PEPE MANUEL", CodA3erp: "400742", CodBrisapp: &id, Vendiduria: "B21000001"},
		},
		Productos: []reference.Producto{{Nombre: "RAPE", CodA3erp: "1001"}, {Nombre: "PULPO", CodA3erp: "1002"}},
		Lonjas:    []reference.Lonja{{Nombre: "LONJA DE ISLA CRISTINA", CIF: "Q2100000A", CodA3erp: "400010"}},
		DatosVendidurias: []reference.Vendiduria{
			{Nombre: "VENDEDURIA DEL SUR", CIF: "B21000001", CodA3erp: "400200", PorcentajeServicios: decimal.NewFromInt(2)},
		},
	}
}
