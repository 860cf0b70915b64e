package lonjas

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/export"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/repository"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/pkg/logger"
)

// snapshotter catálogo recargable: cada lote trabaja sobre una sola versión de las tablas.
type snapshotter interface {
	Snapshot() export.Catalog
}

var (
	_ export.Catalog = (*CatalogStore)(nil)
	_ snapshotter    = (*CatalogStore)(nil)
)

// CatalogStore tablas de referencia en memoria, recargables desde su origen sin reiniciar.
// Las lecturas no bloquean; una recarga sustituye el puntero entero.
type CatalogStore struct {
	src      repository.ReferenceSource
	log      *logger.Logger
	tables   atomic.Pointer[reference.Tables]
	loadedAt atomic.Int64
}

// NewCatalogStore carga las tablas por primera vez. Sin tablas no se arranca.
func NewCatalogStore(ctx context.Context, src repository.ReferenceSource, log *logger.Logger) (*CatalogStore, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &CatalogStore{src: src, log: log}
	if _, err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload vuelve a leer el origen. Si falla se mantienen las tablas anteriores.
func (s *CatalogStore) Reload(ctx context.Context) (*reference.Tables, error) {
	t, err := s.src.LoadTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar tablas de referencia: %w", err)
	}
	s.tables.Store(t)
	s.loadedAt.Store(time.Now().UnixNano())
	s.log.Info().
		Int("barcos", len(t.Barcos)).
		Int("barcos_venta_directa", len(t.BarcosVentaDirecta)).
		Int("armadores", len(t.Armadores)).
		Int("productos", len(t.Productos)).
		Int("lonjas", len(t.Lonjas)).
		Int("vendidurias", len(t.DatosVendidurias)).
		Int("programas", len(t.Servicios)).
		Msg("tablas de referencia cargadas")
	return t, nil
}

// Tables versión vigente.
func (s *CatalogStore) Tables() *reference.Tables { return s.tables.Load() }

// LoadedAt momento de la última carga correcta.
func (s *CatalogStore) LoadedAt() time.Time { return time.Unix(0, s.loadedAt.Load()) }

// Snapshot fija la versión vigente para un lote.
func (s *CatalogStore) Snapshot() export.Catalog { return s.tables.Load() }

func (s *CatalogStore) FindBarco(cod string) (reference.Barco, bool) {
	return s.Tables().FindBarco(cod)
}

func (s *CatalogStore) FindBarcoVentaDirecta(cod string) (reference.Barco, bool) {
	return s.Tables().FindBarcoVentaDirecta(cod)
}

func (s *CatalogStore) FindArmador(cif string) (reference.Armador, bool) {
	return s.Tables().FindArmador(cif)
}

func (s *CatalogStore) FindProducto(nombre string) (reference.Producto, bool) {
	return s.Tables().FindProducto(nombre)
}

func (s *CatalogStore) FindLonja(key string) (reference.Lonja, bool) {
	return s.Tables().FindLonja(key)
}

func (s *CatalogStore) FindVendiduria(key string) (reference.Vendiduria, bool) {
	return s.Tables().FindVendiduria(key)
}

func (s *CatalogStore) ServiceSchedule(name string) []reference.Servicio {
	return s.Tables().ServiceSchedule(name)
}

func snapshot(cat export.Catalog) export.Catalog {
	if s, ok := cat.(snapshotter); ok {
		return s.Snapshot()
	}
	return cat
}
