package cofra

import (
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"
)

// Validate comprueba todos los documentos antes de parsear ninguno.
// El primer documento inválido aborta el lote.
func Validate(docs []lonja.RawDocument) error {
	for i := range docs {
		if err := ValidateDocument(i, docs[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDocument valida la forma de un documento Cofra.
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
	if _, err := lonja.RequireRows(tables[tableSubastas], tableSubastas, requiredSubastas, tctx); err != nil {
		return err
	}
	if _, err := lonja.RequireRows(tables[tableServicios], tableServicios, requiredServicios, tctx); err != nil {
		return err
	}

	objects, err := lonja.RequireObject(doc.Objects, "objects", ctx)
	if err != nil {
		return err
	}
	octx := ctx.Child("objects")
	for _, block := range subtotalBlocks {
		columna, err := lonja.RequireNestedField(objects, []string{block, objColumna}, octx)
		if err != nil {
			return err
		}
		if _, err := lonja.RequireObject(columna, objColumna, octx.Child(block)); err != nil {
			return err
		}
	}
	return nil
}
