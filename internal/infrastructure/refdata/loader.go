// Package refdata carga las tablas de referencia desde un fichero YAML.
package refdata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/repository"
)

var _ repository.ReferenceSource = (*FileSource)(nil)

// ErrInvalidTables las tablas leídas son incoherentes.
var ErrInvalidTables = errors.New("tablas de referencia inválidas")

// FileSource lee las tablas de un YAML en cada LoadTables.
type FileSource struct {
	path string
}

// NewFileSource construye la fuente sobre la ruta indicada.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path ruta del fichero.
func (s *FileSource) Path() string { return s.path }

// LoadTables lee y comprueba el fichero.
func (s *FileSource) LoadTables(_ context.Context) (*reference.Tables, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("abrir tablas de referencia: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode lee un documento YAML con las tablas. Las claves desconocidas son error.
func Decode(r io.Reader) (*reference.Tables, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var t reference.Tables
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: fichero vacío", ErrInvalidTables)
		}
		return nil, fmt.Errorf("decodificar tablas de referencia: %w", err)
	}
	if t.Servicios == nil {
		t.Servicios = map[string][]reference.Servicio{}
	}
	if err := Check(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Encode escribe las tablas en YAML.
func Encode(w io.Writer, t *reference.Tables) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("codificar tablas de referencia: %w", err)
	}
	return enc.Close()
}

// Marshal Encode a memoria.
func Marshal(t *reference.Tables) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Check detecta claves vacías o duplicadas. Un SobreServicio que no existe no es error:
// la exportación lo valora a 0 y avisa.
func Check(t *reference.Tables) error {
	if err := unique("barcos", t.Barcos, func(b reference.Barco) string { return b.Cod }); err != nil {
		return err
	}
	if err := unique("barcosVentaDirecta", t.BarcosVentaDirecta, func(b reference.Barco) string { return b.Cod }); err != nil {
		return err
	}
	if err := unique("armadores", t.Armadores, func(a reference.Armador) string { return a.CIF }); err != nil {
		return err
	}
	if err := unique("productos", t.Productos, func(p reference.Producto) string { return p.Nombre }); err != nil {
		return err
	}
	if err := unique("lonjas", t.Lonjas, func(l reference.Lonja) string { return l.CIF }); err != nil {
		return err
	}
	if err := unique("datosVendidurias", t.DatosVendidurias, func(v reference.Vendiduria) string { return v.CIF }); err != nil {
		return err
	}
	for name, schedule := range t.Servicios {
		seen := map[string]bool{}
		for i, s := range schedule {
			if s.Codigo == "" {
				return fmt.Errorf("%w: servicios.%s[%d] sin código", ErrInvalidTables, name, i)
			}
			if seen[s.Codigo] {
				return fmt.Errorf("%w: servicios.%s código %q repetido", ErrInvalidTables, name, s.Codigo)
			}
			seen[s.Codigo] = true
		}
	}
	return nil
}

func unique[T any](table string, rows []T, key func(T) string) error {
	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		k := reference.Normalize(key(row))
		if k == "" {
			return fmt.Errorf("%w: %s[%d] sin clave", ErrInvalidTables, table, i)
		}
		if j, ok := seen[k]; ok {
			return fmt.Errorf("%w: %s[%d] repite la clave de %s[%d]", ErrInvalidTables, table, i, table, j)
		}
		seen[k] = i
	}
	return nil
}
