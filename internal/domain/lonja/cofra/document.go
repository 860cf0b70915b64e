// Package cofra valida y normaliza las liquidaciones de la lonja Cofra.
// Las columnas llegan con nombres libres ("Cod Barco", "%IVA"); aquí quedan fijadas
// como constantes y el documento canónico es un tipo cerrado.
package cofra

// Claves de cabecera.
const (
	keyLonja           = "lonja"
	keyCifLonja        = "cif_lonja"
	keyNumero          = "numero"
	keyFecha           = "fecha"
	keyEjercicio       = "ejercicio"
	keyComprador       = "comprador"
	keyNumeroComprador = "numero_comprador"
	keyCifComprador    = "cif_comprador"
	keyImporteTotal    = "importe_total"
)

// Tablas y bloques.
const (
	tableSubastas  = "subastas"
	tableServicios = "servicios"

	objSubtotalesPesca     = "subtotales_pesca"
	objSubtotalesServicios = "subtotales_servicios"
	objSubtotalesCajas     = "subtotales_cajas"
	objColumna             = "columna"
)

// Columnas de subastas.
const (
	colArmador  = "Armador"
	colCodBarco = "Cod Barco"
	colCajas    = "Cajas"
	colKilos    = "Kilos"
	colPescado  = "Pescado"
	colPrecio   = "Precio"
	colImporte  = "Importe"
)

// Columnas de servicios. %REC es opcional.
const (
	colCodigo      = "Código"
	colDescripcion = "Descripción"
	colFecha       = "Fecha"
	colIVA         = "%IVA"
	colREC         = "%REC"
	colUnidades    = "Unidades"
)

// Columnas del bloque columna de subtotales.
const (
	colSubtotal = "Subtotal"
	colTotal    = "Total"
	colIVAsub   = "IVA"
)

var (
	requiredDetails   = []string{keyLonja, keyCifLonja, keyNumero, keyFecha}
	requiredSubastas  = []string{colArmador, colCodBarco, colCajas, colKilos, colPescado, colPrecio, colImporte}
	requiredServicios = []string{colCodigo, colDescripcion, colFecha, colIVA, colUnidades, colPrecio, colImporte}
	subtotalBlocks    = []string{objSubtotalesPesca, objSubtotalesServicios, objSubtotalesCajas}
)

// Document liquidación Cofra normalizada.
type Document struct {
	Detalles   Detalles   `json:"detalles"`
	Tablas     Tablas     `json:"tablas"`
	Subtotales Subtotales `json:"subtotales"`
}

// Detalles cabecera con claves en español.
type Detalles struct {
	Lonja           string `json:"lonja"`
	CifLonja        string `json:"cifLonja"`
	Numero          string `json:"numero"`
	Fecha           string `json:"fecha"`
	Ejercicio       string `json:"ejercicio"`
	Comprador       string `json:"comprador"`
	NumeroComprador string `json:"numeroComprador"`
	CifComprador    string `json:"cifComprador"`
	ImporteTotal    string `json:"importeTotal"`
}

// Tablas de la liquidación.
type Tablas struct {
	Subastas  []Subasta  `json:"subastas"`
	Servicios []Servicio `json:"servicios"`
}

// Subasta línea de compra en subasta.
type Subasta struct {
	Armador Armador `json:"armador"`
	Barco   Barco   `json:"barco"`
	Cajas   Cajas   `json:"cajas"`
	Kilos   string  `json:"kilos"`
	Pescado string  `json:"pescado"`
	Precio  string  `json:"precio"`
	Importe string  `json:"importe"`
}

// Armador nombre y CIF extraídos de la columna compuesta "Armador".
type Armador struct {
	Nombre string `json:"nombre"`
	CIF    string `json:"cif"`
}

// Barco código y nombre extraídos de "Cod Barco".
type Barco struct {
	Cod    string `json:"cod"`
	Nombre string `json:"barco"`
}

// Cajas cantidad y tipo extraídos de "Cajas".
type Cajas struct {
	Cantidad string `json:"cantidad"`
	Tipo     string `json:"tipo"`
}

// Servicio línea de servicios facturados por la lonja.
type Servicio struct {
	Codigo      string `json:"codigo"`
	Descripcion string `json:"descripcion"`
	Fecha       string `json:"fecha"`
	IVA         string `json:"iva"`
	REC         string `json:"rec"`
	Unidades    string `json:"unidades"`
	Precio      string `json:"precio"`
	Importe     string `json:"importe"`
}

// Subtotales bloques de pesca, servicios y cajas.
type Subtotales struct {
	Pesca     Subtotal `json:"pesca"`
	Servicios Subtotal `json:"servicios"`
	Cajas     Subtotal `json:"cajas"`
}

// Subtotal base, IVA y total de un bloque.
type Subtotal struct {
	Subtotal string `json:"subtotal"`
	IVA      string `json:"iva"`
	Total    string `json:"total"`
}
