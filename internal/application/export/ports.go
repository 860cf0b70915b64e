package export

import "github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"

// Catalog contrato de búsqueda sobre las tablas de referencia. Lo implementa *reference.Tables;
// los exportadores no dependen de cómo se cargaron.
type Catalog interface {
	FindBarco(cod string) (reference.Barco, bool)
	FindBarcoVentaDirecta(cod string) (reference.Barco, bool)
	FindArmador(cif string) (reference.Armador, bool)
	FindProducto(nombre string) (reference.Producto, bool)
	FindLonja(key string) (reference.Lonja, bool)
	FindVendiduria(key string) (reference.Vendiduria, bool)
	ServiceSchedule(name string) []reference.Servicio
}

var _ Catalog = (*reference.Tables)(nil)
