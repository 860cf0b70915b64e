// Package export genera filas de importación A3ERP y el resumen de liquidación de proveedores
// a partir de documentos de lonja ya parseados. Es la capa tolerante del pipeline: nunca
// devuelve error; los valores ilegibles valen 0 y las búsquedas fallidas se devuelven como avisos.
package export

import (
	"github.com/shopspring/decimal"
)

// ExportRow una línea de importación. Las filas con el mismo CABNUMDOC forman una factura.
type ExportRow struct {
	CABSERIE      string          `json:"CABSERIE"`
	CABNUMDOC     string          `json:"CABNUMDOC"`
	CABFECHA      string          `json:"CABFECHA"`
	CABCODPRO     string          `json:"CABCODPRO"`
	CABREFERENCIA string          `json:"CABREFERENCIA"`
	LINCODART     string          `json:"LINCODART"`
	LINDESCLIN    string          `json:"LINDESCLIN"`
	LINUNIDADES   decimal.Decimal `json:"LINUNIDADES"`
	LINPRCMONEDA  decimal.Decimal `json:"LINPRCMONEDA"`
	LINTIPIVA     string          `json:"LINTIPIVA"`
}

// LinkedSummaryEntry totales declarados por barco para cuadrar con la liquidación del proveedor.
// Error indica que el barco o armador no tiene proveedor conocido (SupplierID nil).
type LinkedSummaryEntry struct {
	SupplierID             *int            `json:"supplierId"`
	Date                   string          `json:"date"`
	DeclaredTotalNetWeight decimal.Decimal `json:"declaredTotalNetWeight"`
	DeclaredTotalAmount    decimal.Decimal `json:"declaredTotalAmount"`
	BarcoNombre            string          `json:"barcoNombre"`
	Error                  bool            `json:"error"`
}

// Códigos de aviso.
const (
	WarnArmadorNoEncontrado      = "armador_no_encontrado"
	WarnBarcoNoEncontrado        = "barco_no_encontrado"
	WarnVendiduriaNoEncontrada   = "vendiduria_no_encontrada"
	WarnLonjaNoEncontrada        = "lonja_no_encontrada"
	WarnProductoNoEncontrado     = "producto_no_encontrado"
	WarnServicioBaseNoEncontrado = "servicio_base_no_encontrado"
	WarnIVADesconocido           = "iva_desconocido"
)

// Warning incidencia no bloqueante de la exportación.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Key     string `json:"key"`             // tabla o concepto buscado (barcos, armadores...)
	Value   string `json:"value,omitempty"` // valor que no se encontró
}

// Options parámetros de una llamada. StartSequence es el primer número de secuencia libre.
type Options struct {
	CABSERIE      string
	StartSequence int
}

// Result filas generadas y siguiente secuencia libre para encadenar con el siguiente documento.
type Result struct {
	Rows         []ExportRow `json:"rows"`
	NextSequence int         `json:"nextSequence"`
	Warnings     []Warning   `json:"warnings"`
}
