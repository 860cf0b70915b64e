package lonjadeisla

import (
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
)

// Validate valida el lote completo; el primer documento inválido lo aborta.
func Validate(docs []lonja.RawDocument) error {
	for i := range docs {
		if err := ValidateDocument(i, docs[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDocument exige cabecera y ventas. Las tablas secundarias solo se comprueban si vienen,
// y sus subcampos opcionales (cajas en peces, importe en tipoVentas) no se exigen.
func ValidateDocument(index int, doc lonja.RawDocument) error {
	ctx := lonja.DocumentContext(index)

	details, err := lonja.RequireObject(doc.Details, "details", ctx)
	if err != nil {
		return err
	}
	if err := lonja.RequireFields(details, requiredDetails, ctx.Child("details")); err != nil {
		return err
	}

	tables, err := lonja.RequireObject(doc.Tables, "tables", ctx)
	if err != nil {
		return err
	}
	tctx := ctx.Child("tables")
	if _, err := lonja.RequireRows(tables[tableVentas], tableVentas, requiredVentas, tctx); err != nil {
		return err
	}

	optional := []struct {
		name     string
		required []string
	}{
		{tablePeces, requiredPeces},
		{tableVendidurias, requiredVendidurias},
		{tableCajas, requiredCajas},
		{tableTipoVentas, requiredTipoVentas},
	}
	for _, t := range optional {
		if _, err := lonja.RequireOptionalRows(tables[t.name], t.name, t.required, tctx); err != nil {
			return err
		}
	}
	return nil
}
