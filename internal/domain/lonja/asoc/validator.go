package asoc

import (
	"fmt"

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

// ValidateDocument exige cabecera con una modalidad conocida y subastas no vacías.
func ValidateDocument(index int, doc lonja.RawDocument) error {
	ctx := lonja.DocumentContext(index)

	details, err := lonja.RequireObject(doc.Details, "details", ctx)
	if err != nil {
		return err
	}
	dctx := ctx.Child("details")
	if err := lonja.RequireFields(details, requiredDetails, dctx); err != nil {
		return err
	}
	tipo, err := lonja.RequireNonEmptyString(details[keyTipoSubasta], keyTipoSubasta, dctx)
	if err != nil {
		return err
	}
	if _, ok := lonja.ParseTipoSubasta(tipo); !ok {
		return &lonja.ValidationError{
			Kind:     lonja.KindInvalidType,
			Field:    keyTipoSubasta,
			Message:  fmt.Sprintf("tipo de subasta desconocido %q (se admite %q o %q)", tipo, lonja.VentaDirecta, lonja.Subasta),
			Value:    tipo,
			Document: index,
			Path:     "details." + keyTipoSubasta,
		}
	}

	tables, err := lonja.RequireObject(doc.Tables, "tables", ctx)
	if err != nil {
		return err
	}
	_, err = lonja.RequireRows(tables[tableSubastas], tableSubastas, requiredSubastas, ctx.Child("tables"))
	return err
}
