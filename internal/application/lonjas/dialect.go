package lonjas

import (
	"strings"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/export"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja/asoc"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja/cofra"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja/lonjadeisla"
)

// Dialect formato de documento de lonja.
type Dialect string

const (
	DialectCofra       Dialect = "cofra"
	DialectLonjaDeIsla Dialect = "lonjadeisla"
	DialectAsoc        Dialect = "asoc"
)

// Dialects formatos soportados, en orden estable.
var Dialects = []Dialect{DialectCofra, DialectLonjaDeIsla, DialectAsoc}

// ParseDialect acepta el nombre sin distinguir mayúsculas ni guiones ("lonja-de-isla").
func ParseDialect(s string) (Dialect, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for _, d := range Dialects {
		if string(d) == key {
			return d, nil
		}
	}
	return "", domain.ErrUnsupportedDialect
}

// document documento parseado listo para exportar.
type document struct {
	rows    func(cat export.Catalog, opts export.Options) export.Result
	summary func(cat export.Catalog) []export.LinkedSummaryEntry
}

// prepare valida el lote completo y después lo parsea.
func prepare(d Dialect, raw []lonja.RawDocument) ([]document, error) {
	switch d {
	case DialectCofra:
		return stages(raw, cofra.Validate, cofra.Parse,
			export.GenerateCofraExcelRows, export.GenerateCofraLinkedSummary)
	case DialectLonjaDeIsla:
		return stages(raw, lonjadeisla.Validate, lonjadeisla.Parse,
			export.GenerateLonjaDeIslaExcelRows, export.GenerateLonjaDeIslaLinkedSummary)
	case DialectAsoc:
		return stages(raw, asoc.Validate, asoc.Parse,
			export.GenerateAsocExcelRows, export.GenerateAsocLinkedSummary)
	default:
		return nil, domain.ErrUnsupportedDialect
	}
}

func stages[D any](
	raw []lonja.RawDocument,
	validate func([]lonja.RawDocument) error,
	parse func([]lonja.RawDocument) ([]D, error),
	rows func(D, export.Catalog, export.Options) export.Result,
	summary func(D, export.Catalog) []export.LinkedSummaryEntry,
) ([]document, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}
	parsed, err := parse(raw)
	if err != nil {
		return nil, err
	}
	out := make([]document, len(parsed))
	for i := range parsed {
		doc := parsed[i]
		out[i] = document{
			rows:    func(cat export.Catalog, opts export.Options) export.Result { return rows(doc, cat, opts) },
			summary: func(cat export.Catalog) []export.LinkedSummaryEntry { return summary(doc, cat) },
		}
	}
	return out, nil
}
