// Package reference modela las tablas estáticas de referencia (barcos, armadores, productos,
// lonjas, vendedurías y tarifas de servicios) y su contrato de búsqueda.
// Las tablas se cargan una vez y no se modifican; las búsquedas son seguras en concurrencia.
package reference

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Nombres de los programas de tarifas de servicios.
const (
	ScheduleLonjaDeIsla      = "lonjaDeIsla"
	ScheduleAsocVentaDirecta = "asocVentaDirecta"
	ScheduleAsocSubasta      = "asocSubasta"
)

// Barco embarcación: matrícula/código de la lonja, código A3ERP y proveedor interno.
type Barco struct {
	Cod        string `json:"cod" yaml:"cod"`
	Nombre     string `json:"nombre" yaml:"nombre"`
	CodA3erp   string `json:"codA3erp" yaml:"codA3erp"`
	CodBrisapp *int   `json:"codBrisapp" yaml:"codBrisapp"`
	Vendiduria string `json:"vendiduria,omitempty" yaml:"vendiduria,omitempty"` // CIF o nombre de la vendeduría
}

// Armador titular de uno o varios barcos, identificado por CIF.
type Armador struct {
	CIF        string `json:"cif" yaml:"cif"`
	Nombre     string `json:"nombre" yaml:"nombre"`
	CodA3erp   string `json:"codA3erp" yaml:"codA3erp"`
	CodBrisapp *int   `json:"codBrisapp" yaml:"codBrisapp"`
}

// Producto especie con su artículo A3ERP. Alias recoge otras grafías de la misma especie.
type Producto struct {
	Nombre   string   `json:"nombre" yaml:"nombre"`
	Alias    []string `json:"alias,omitempty" yaml:"alias,omitempty"`
	CodA3erp string   `json:"codA3erp" yaml:"codA3erp"`
}

// Lonja mercado emisor del documento.
type Lonja struct {
	Nombre   string `json:"nombre" yaml:"nombre"`
	CIF      string `json:"cif" yaml:"cif"`
	CodA3erp string `json:"codA3erp" yaml:"codA3erp"`
}

// Vendiduria intermediaria que factura en nombre de sus barcos.
type Vendiduria struct {
	Nombre              string          `json:"nombre" yaml:"nombre"`
	CIF                 string          `json:"cif" yaml:"cif"`
	CodA3erp            string          `json:"codA3erp" yaml:"codA3erp"`
	PorcentajeServicios decimal.Decimal `json:"porcentajeServicios" yaml:"porcentajeServicios"`
}

// Servicio línea de un programa de tarifas. Si SobreServicio está vacío el porcentaje se
// aplica sobre la base (total de género); si no, sobre el importe calculado de ese servicio.
type Servicio struct {
	Codigo        string          `json:"codigo" yaml:"codigo"`
	Descripcion   string          `json:"descripcion" yaml:"descripcion"`
	Porcentaje    decimal.Decimal `json:"porcentaje" yaml:"porcentaje"`
	SobreServicio string          `json:"sobreServicio,omitempty" yaml:"sobreServicio,omitempty"`
	TipoIVA       string          `json:"tipoIva,omitempty" yaml:"tipoIva,omitempty"`
}

// Tables conjunto de tablas de referencia.
type Tables struct {
	Barcos             []Barco               `json:"barcos" yaml:"barcos"`
	Armadores          []Armador             `json:"armadores" yaml:"armadores"`
	Productos          []Producto            `json:"productos" yaml:"productos"`
	Lonjas             []Lonja               `json:"lonjas" yaml:"lonjas"`
	DatosVendidurias   []Vendiduria          `json:"datosVendidurias" yaml:"datosVendidurias"`
	BarcosVentaDirecta []Barco               `json:"barcosVentaDirecta" yaml:"barcosVentaDirecta"`
	Servicios          map[string][]Servicio `json:"servicios" yaml:"servicios"`
}

// FindBarco busca por código exacto y, si no, por código o nombre normalizados.
func (t *Tables) FindBarco(cod string) (Barco, bool) {
	return findBarco(t.Barcos, cod)
}

// FindBarcoVentaDirecta busca en la tabla de barcos de venta directa.
func (t *Tables) FindBarcoVentaDirecta(cod string) (Barco, bool) {
	return findBarco(t.BarcosVentaDirecta, cod)
}

func findBarco(list []Barco, cod string) (Barco, bool) {
	key := strings.TrimSpace(cod)
	if key == "" {
		return Barco{}, false
	}
	for _, b := range list {
		if b.Cod == key {
			return b, true
		}
	}
	n := Normalize(key)
	for _, b := range list {
		if Normalize(b.Cod) == n {
			return b, true
		}
	}
	return Barco{}, false
}

// FindArmador busca por CIF ignorando mayúsculas, espacios y guiones.
func (t *Tables) FindArmador(cif string) (Armador, bool) {
	key := CompactCIF(cif)
	if key == "" {
		return Armador{}, false
	}
	for _, a := range t.Armadores {
		if CompactCIF(a.CIF) == key {
			return a, true
		}
	}
	return Armador{}, false
}

// FindProducto busca por nombre o alias normalizados.
func (t *Tables) FindProducto(nombre string) (Producto, bool) {
	n := Normalize(nombre)
	if n == "" {
		return Producto{}, false
	}
	for _, p := range t.Productos {
		if p.Nombre == nombre || Normalize(p.Nombre) == n {
			return p, true
		}
		for _, alias := range p.Alias {
			if Normalize(alias) == n {
				return p, true
			}
		}
	}
	return Producto{}, false
}

// FindLonja busca por CIF y, si no, por nombre normalizado.
func (t *Tables) FindLonja(key string) (Lonja, bool) {
	if c := CompactCIF(key); c != "" {
		for _, l := range t.Lonjas {
			if CompactCIF(l.CIF) == c {
				return l, true
			}
		}
	}
	n := Normalize(key)
	if n == "" {
		return Lonja{}, false
	}
	for _, l := range t.Lonjas {
		if Normalize(l.Nombre) == n {
			return l, true
		}
	}
	return Lonja{}, false
}

// FindVendiduria busca por CIF y, si no, por nombre normalizado.
func (t *Tables) FindVendiduria(key string) (Vendiduria, bool) {
	if c := CompactCIF(key); c != "" {
		for _, v := range t.DatosVendidurias {
			if CompactCIF(v.CIF) == c {
				return v, true
			}
		}
	}
	n := Normalize(key)
	if n == "" {
		return Vendiduria{}, false
	}
	for _, v := range t.DatosVendidurias {
		if Normalize(v.Nombre) == n {
			return v, true
		}
	}
	return Vendiduria{}, false
}

// ServiceSchedule devuelve el programa de tarifas (nil si no existe).
func (t *Tables) ServiceSchedule(name string) []Servicio {
	if t.Servicios == nil {
		return nil
	}
	return t.Servicios[name]
}

// CompactCIF forma comparable de un CIF: sin espacios, guiones ni puntos y en mayúsculas.
func CompactCIF(s string) string {
	r := strings.NewReplacer(" ", "", "-", "", ".", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(s)))
}
