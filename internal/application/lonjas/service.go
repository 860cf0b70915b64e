package lonjas

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/export"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/pkg/logger"
)

// Defaults valores de exportación cuando la petición no los trae.
type Defaults struct {
	CABSERIE      string
	StartSequence int
}

// DocumentWarning aviso de exportación con el índice del documento que lo produjo.
type DocumentWarning struct {
	Document int `json:"document"`
	export.Warning
}

// ExportBatch resultado de exportar un lote de documentos de un mismo formato.
type ExportBatch struct {
	ID            string                      `json:"id"`
	Dialect       Dialect                     `json:"dialect"`
	Documents     int                         `json:"documents"`
	Rows          []export.ExportRow          `json:"rows"`
	LinkedSummary []export.LinkedSummaryEntry `json:"linkedSummary"`
	Warnings      []DocumentWarning           `json:"warnings"`
	NextSequence  int                         `json:"nextSequence"`
}

// Service caso de uso validar → parsear → exportar. Cada lote usa una sola versión del catálogo.
type Service struct {
	catalog  export.Catalog
	defaults Defaults
	log      *logger.Logger
}

// NewService construye el caso de uso. log puede ser nil.
func NewService(catalog export.Catalog, defaults Defaults, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if defaults.StartSequence <= 0 {
		defaults.StartSequence = 1
	}
	return &Service{catalog: catalog, defaults: defaults, log: log}
}

// Validate valida y parsea el lote sin exportar. Devuelve el número de documentos.
func (s *Service) Validate(ctx context.Context, d Dialect, raw []lonja.RawDocument) (int, error) {
	if len(raw) == 0 {
		return 0, domain.ErrEmptyBatch
	}
	docs, err := prepare(d, raw)
	if err != nil {
		return 0, err
	}
	return len(docs), ctx.Err()
}

// Export procesa el lote en orden. La secuencia devuelta por cada documento es la inicial del
// siguiente, así que los CABNUMDOC no se repiten dentro del lote. Un fallo de validación o
// parseo aborta el lote; las búsquedas fallidas solo producen avisos.
func (s *Service) Export(ctx context.Context, d Dialect, raw []lonja.RawDocument, opts export.Options) (*ExportBatch, error) {
	if len(raw) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	docs, err := prepare(d, raw)
	if err != nil {
		return nil, err
	}
	if opts.CABSERIE == "" {
		opts.CABSERIE = s.defaults.CABSERIE
	}
	if opts.StartSequence <= 0 {
		opts.StartSequence = s.defaults.StartSequence
	}

	batch := &ExportBatch{
		ID:            uuid.New().String(),
		Dialect:       d,
		Documents:     len(docs),
		Rows:          []export.ExportRow{},
		LinkedSummary: []export.LinkedSummaryEntry{},
		Warnings:      []DocumentWarning{},
	}
	cat := snapshot(s.catalog)
	seq := opts.StartSequence
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := doc.rows(cat, export.Options{CABSERIE: opts.CABSERIE, StartSequence: seq})
		seq = res.NextSequence

		batch.Rows = append(batch.Rows, res.Rows...)
		batch.LinkedSummary = append(batch.LinkedSummary, doc.summary(cat)...)
		for _, w := range res.Warnings {
			batch.Warnings = append(batch.Warnings, DocumentWarning{Document: i, Warning: w})
			s.log.Warn().
				Str("batch", batch.ID).
				Str("dialect", string(d)).
				Int("document", i).
				Str("code", w.Code).
				Str("key", w.Key).
				Str("value", w.Value).
				Msg(w.Message)
		}
	}
	batch.NextSequence = seq

	s.log.Info().
		Str("batch", batch.ID).
		Str("dialect", string(d)).
		Int("documents", batch.Documents).
		Int("rows", len(batch.Rows)).
		Int("warnings", len(batch.Warnings)).
		Int("next_sequence", batch.NextSequence).
		Msg("lote exportado")
	return batch, nil
}

// IsInputError indica si err se debe a un documento mal formado o a un valor no interpretable.
func IsInputError(err error) bool {
	_, v := lonja.AsValidationError(err)
	_, p := lonja.AsParsingError(err)
	return v || p
}
