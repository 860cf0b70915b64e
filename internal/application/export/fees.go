package export

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"
)

var cien = decimal.NewFromInt(100)

// Fee importe calculado de una línea de tarifa.
type Fee struct {
	Servicio reference.Servicio
	Importe  decimal.Decimal
}

// ComputeFees aplica un programa de tarifas en dos niveles. Las entradas sin SobreServicio
// calculan Porcentaje% de base; las que lo tienen calculan Porcentaje% del importe ya
// calculado de ese servicio. El resultado conserva el orden del programa. Las referencias
// a servicios inexistentes valen 0 y se devuelven en missing.
func ComputeFees(schedule []reference.Servicio, base decimal.Decimal) (fees []Fee, missing []string) {
	fees = make([]Fee, len(schedule))
	byCode := make(map[string]decimal.Decimal, len(schedule))
	for i, s := range schedule {
		fees[i].Servicio = s
		if s.SobreServicio != "" {
			continue
		}
		fees[i].Importe = percent(base, s.Porcentaje)
		byCode[s.Codigo] = fees[i].Importe
	}
	for i, s := range schedule {
		if s.SobreServicio == "" {
			continue
		}
		ref, ok := byCode[s.SobreServicio]
		if !ok {
			missing = append(missing, s.SobreServicio)
			fees[i].Importe = decimal.Zero
			continue
		}
		fees[i].Importe = percent(ref, s.Porcentaje)
		byCode[s.Codigo] = fees[i].Importe
	}
	return fees, missing
}

func percent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(cien).Round(2)
}

// feeLines convierte el programa name en líneas de factura sobre base.
func (b *builder) feeLines(name string, base decimal.Decimal) []line {
	fees, missing := ComputeFees(b.cat.ServiceSchedule(name), base)
	for _, code := range missing {
		b.warn(WarnServicioBaseNoEncontrado, name, code,
			fmt.Sprintf("la tarifa %q referencia el servicio %q, que no existe", name, code))
	}
	lines := make([]line, 0, len(fees))
	for _, f := range fees {
		iva := f.Servicio.TipoIVA
		if iva == "" {
			iva = ivaServicios
		}
		lines = append(lines, line{
			codArt:   f.Servicio.Codigo,
			desc:     f.Servicio.Descripcion,
			unidades: decimal.NewFromInt(1),
			precio:   f.Importe,
			tipoIVA:  iva,
		})
	}
	return lines
}
