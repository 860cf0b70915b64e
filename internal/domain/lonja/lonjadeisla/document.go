// Package lonjadeisla valida y normaliza las liquidaciones de la Lonja de Isla Cristina.
// El documento conserva las claves originales en inglés; las tablas secundarias pueden faltar.
package lonjadeisla

const (
	keyLonja  = "lonja"
	keyFecha  = "fecha"
	keyNumero = "numero"
	keyCIF    = "cif"
)

const (
	tableVentas      = "ventas"
	tablePeces       = "peces"
	tableVendidurias = "vendidurias"
	tableCajas       = "cajas"
	tableTipoVentas  = "tipoVentas"
)

const (
	colCod        = "cod"
	colBarco      = "barco"
	colEspecie    = "especie"
	colPeso       = "peso"
	colPrecio     = "precio"
	colCajas      = "cajas"
	colImporte    = "importe"
	colVendiduria = "vendiduria"
	colTipo       = "tipo"
	colCantidad   = "cantidad"
)

var (
	requiredDetails     = []string{keyLonja, keyFecha}
	requiredVentas      = []string{colCod, colBarco, colEspecie, colPeso, colPrecio}
	requiredPeces       = []string{colEspecie, colPeso}
	requiredVendidurias = []string{colVendiduria, colImporte}
	requiredCajas       = []string{colTipo, colCantidad}
	requiredTipoVentas  = []string{colTipo}
)

// Document liquidación de Lonja de Isla normalizada.
type Document struct {
	Details Details `json:"details"`
	Tables  Tables  `json:"tables"`
}

// Details cabecera. Numero y CIF pueden venir vacíos.
type Details struct {
	Lonja  string `json:"lonja"`
	Fecha  string `json:"fecha"`
	Numero string `json:"numero"`
	CIF    string `json:"cif"`
}

// Tables nunca contiene slices nil.
type Tables struct {
	Ventas      []Venta      `json:"ventas"`
	Peces       []Pez        `json:"peces"`
	Vendidurias []Vendiduria `json:"vendidurias"`
	Cajas       []Caja       `json:"cajas"`
	TipoVentas  []TipoVenta  `json:"tipoVentas"`
}

// Venta línea de venta de un barco.
type Venta struct {
	Cod     string `json:"cod"` // matrícula
	Barco   string `json:"barco"`
	Especie string `json:"especie"`
	Peso    string `json:"peso"`
	Precio  string `json:"precio"`
	Cajas   string `json:"cajas"`
	Importe string `json:"importe"`
}

// Pez resumen por especie.
type Pez struct {
	Especie string `json:"especie"`
	Peso    string `json:"peso"`
	Cajas   string `json:"cajas"`
}

// Vendiduria importe declarado por vendeduría.
type Vendiduria struct {
	Vendiduria string `json:"vendiduria"`
	Importe    string `json:"importe"`
}

// Caja recuento por tipo de caja.
type Caja struct {
	Tipo     string `json:"tipo"`
	Cantidad string `json:"cantidad"`
}

// TipoVenta total por modalidad de venta.
type TipoVenta struct {
	Tipo    string `json:"tipo"`
	Importe string `json:"importe"`
}
