// Package asoc valida y normaliza las liquidaciones de la asociación de armadores.
// La modalidad (venta directa o subasta) se resuelve al parsear y condiciona la exportación.
package asoc

import "github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/lonja"

const (
	keyLonja       = "lonja"
	keyFecha       = "fecha"
	keyTipoSubasta = "tipoSubasta"
	keyNumero      = "numero"

	tableSubastas = "subastas"

	colCod     = "cod"
	colBarco   = "barco"
	colEspecie = "especie"
	colPeso    = "peso"
	colPrecio  = "precio"
	colCajas   = "cajas"
	colImporte = "importe"
)

var (
	requiredDetails  = []string{keyLonja, keyFecha, keyTipoSubasta}
	requiredSubastas = []string{colCod, colBarco, colEspecie, colPeso, colPrecio}
)

// Document liquidación Asoc normalizada.
type Document struct {
	Details Details `json:"details"`
	Tables  Tables  `json:"tables"`
}

// Details cabecera con la modalidad ya resuelta.
type Details struct {
	Lonja       string            `json:"lonja"`
	Fecha       string            `json:"fecha"`
	Numero      string            `json:"numero"`
	TipoSubasta lonja.TipoSubasta `json:"tipoSubasta"`
}

type Tables struct {
	Subastas []Subasta `json:"subastas"`
}

// Subasta línea de venta de un barco.
type Subasta struct {
	Cod     string `json:"cod"`
	Barco   string `json:"barco"`
	Especie string `json:"especie"`
	Peso    string `json:"peso"`
	Precio  string `json:"precio"`
	Cajas   string `json:"cajas"`
	Importe string `json:"importe"`
}
