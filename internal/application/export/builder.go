package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// Pescado fresco tributa al tipo reducido.
	ivaPescado = "RED10"
	// Tipo de los servicios cuando la tarifa no indica otro.
	ivaServicios = "ORD21"
)

var ivaPorPorcentaje = map[string]string{
	"21": "ORD21",
	"10": "RED10",
	"4":  "SRED4",
	"0":  "EXE",
}

// line línea de factura antes de asignarle cabecera.
type line struct {
	codArt   string
	desc     string
	unidades decimal.Decimal
	precio   decimal.Decimal
	tipoIVA  string
}

func (l line) importe() decimal.Decimal {
	return l.unidades.Mul(l.precio)
}

// builder acumula filas y avisos de un documento. Cada emit con líneas consume un número
// de secuencia, de modo que NextSequence = StartSequence + facturas emitidas.
type builder struct {
	cat        Catalog
	serie      string
	fecha      string
	referencia string
	seq        *Sequence

	rows     []ExportRow
	warnings []Warning
	seen     map[string]bool
}

func newBuilder(cat Catalog, opts Options, fecha, lonjaNombre, numero string) *builder {
	return &builder{
		cat:        cat,
		serie:      opts.CABSERIE,
		fecha:      fecha,
		referencia: strings.TrimSpace(lonjaNombre + " " + numero),
		seq:        NewSequence(opts.StartSequence),
		rows:       []ExportRow{},
		warnings:   []Warning{},
		seen:       map[string]bool{},
	}
}

// emit añade una factura para el proveedor codPro. Sin líneas no se emite ni se consume secuencia.
func (b *builder) emit(codPro string, lines []line) {
	if len(lines) == 0 {
		return
	}
	numDoc := DocNumber(b.fecha, b.seq.Take())
	for _, l := range lines {
		b.rows = append(b.rows, ExportRow{
			CABSERIE:      b.serie,
			CABNUMDOC:     numDoc,
			CABFECHA:      b.fecha,
			CABCODPRO:     codPro,
			CABREFERENCIA: b.referencia,
			LINCODART:     l.codArt,
			LINDESCLIN:    l.desc,
			LINUNIDADES:   l.unidades,
			LINPRCMONEDA:  l.precio,
			LINTIPIVA:     l.tipoIVA,
		})
	}
}

// warn registra un aviso una sola vez por (código, valor).
func (b *builder) warn(code, key, value, msg string) {
	id := code + "\x00" + value
	if b.seen[id] {
		return
	}
	b.seen[id] = true
	b.warnings = append(b.warnings, Warning{Code: code, Message: msg, Key: key, Value: value})
}

// productCode artículo A3ERP de la especie; vacío y aviso si no está en productos.
func (b *builder) productCode(especie string) string {
	p, ok := b.cat.FindProducto(especie)
	if !ok {
		b.warn(WarnProductoNoEncontrado, "productos", especie,
			fmt.Sprintf("especie %q sin artículo A3ERP", especie))
		return ""
	}
	return p.CodA3erp
}

// goodsLine línea de género: unidades = peso, precio = precio por kilo.
func (b *builder) goodsLine(especie, desc, peso, precio string) line {
	return line{
		codArt:   b.productCode(especie),
		desc:     desc,
		unidades: ParseDecimalLenient(peso),
		precio:   ParseDecimalLenient(precio),
		tipoIVA:  ivaPescado,
	}
}

// ivaCode traduce un porcentaje de IVA al tipo A3ERP.
func (b *builder) ivaCode(pct string) string {
	d := ParseDecimalLenient(pct)
	if code, ok := ivaPorPorcentaje[d.String()]; ok {
		return code
	}
	b.warn(WarnIVADesconocido, "%IVA", pct, fmt.Sprintf("porcentaje de IVA %q sin tipo A3ERP", pct))
	return "IVA" + d.String()
}

// findLonja por CIF y, si no, por nombre.
func (b *builder) findLonja(cif, nombre string) (codA3erp string, ok bool) {
	if l, found := b.cat.FindLonja(cif); found {
		return l.CodA3erp, true
	}
	if l, found := b.cat.FindLonja(nombre); found {
		return l.CodA3erp, true
	}
	value := nombre
	if value == "" {
		value = cif
	}
	b.warn(WarnLonjaNoEncontrada, "lonjas", value, fmt.Sprintf("lonja %q no encontrada; no se factura a la lonja", value))
	return "", false
}

func (b *builder) result() Result {
	return Result{Rows: b.rows, NextSequence: b.seq.Next(), Warnings: b.warnings}
}

// group líneas de un mismo barco o armador en orden de aparición.
type group[T any] struct {
	Key   string
	Items []T
}

// groupBy agrupa preservando el orden de la primera aparición de cada clave.
func groupBy[T any](items []T, key func(T) string) []group[T] {
	var out []group[T]
	index := map[string]int{}
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, group[T]{Key: k})
		}
		out[i].Items = append(out[i].Items, it)
	}
	return out
}

// groupKey clave de agrupación: mayúsculas y sin espacios sobrantes.
func groupKey(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// totals suma de pesos y de peso × precio, redondeadas a 2 decimales al final.
func totals[T any](items []T, peso, precio func(T) string) (weight, amount decimal.Decimal) {
	for _, it := range items {
		w := ParseDecimalLenient(peso(it))
		weight = weight.Add(w)
		amount = amount.Add(w.Mul(ParseDecimalLenient(precio(it))))
	}
	return weight.Round(2), amount.Round(2)
}

func supplierID(id *int) *int {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
