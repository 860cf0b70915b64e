package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo tablas de referencia sobre PostgreSQL.
type ReferenceRepo struct {
	db Querier
}

// NewReferenceRepository construye el adaptador sobre un pool o una tx.
func NewReferenceRepository(db Querier) *ReferenceRepo {
	return &ReferenceRepo{db: db}
}

// LoadTables lee todas las tablas. Los programas de tarifas conservan su orden.
func (r *ReferenceRepo) LoadTables(ctx context.Context) (*reference.Tables, error) {
	t := &reference.Tables{Servicios: map[string][]reference.Servicio{}}
	var err error

	if t.Lonjas, err = collect(ctx, r.db, `SELECT nombre, cif, cod_a3erp FROM lonjas ORDER BY nombre`,
		func(row pgx.Rows) (reference.Lonja, error) {
			var l reference.Lonja
			err := row.Scan(&l.Nombre, &l.CIF, &l.CodA3erp)
			return l, err
		}); err != nil {
		return nil, fmt.Errorf("leer lonjas: %w", err)
	}

	if t.DatosVendidurias, err = collect(ctx, r.db,
		`SELECT nombre, cif, cod_a3erp, porcentaje_servicios FROM vendidurias ORDER BY nombre`,
		func(row pgx.Rows) (reference.Vendiduria, error) {
			var v reference.Vendiduria
			err := row.Scan(&v.Nombre, &v.CIF, &v.CodA3erp, &v.PorcentajeServicios)
			return v, err
		}); err != nil {
		return nil, fmt.Errorf("leer vendidurias: %w", err)
	}

	if t.Armadores, err = collect(ctx, r.db,
		`SELECT cif, nombre, cod_a3erp, cod_brisapp FROM armadores ORDER BY cif`,
		func(row pgx.Rows) (reference.Armador, error) {
			var a reference.Armador
			err := row.Scan(&a.CIF, &a.Nombre, &a.CodA3erp, &a.CodBrisapp)
			return a, err
		}); err != nil {
		return nil, fmt.Errorf("leer armadores: %w", err)
	}

	barcos := func(ventaDirecta bool) ([]reference.Barco, error) {
		return collect(ctx, r.db, `
			SELECT cod, nombre, cod_a3erp, cod_brisapp, vendiduria
			FROM barcos WHERE venta_directa = $1 ORDER BY cod`,
			func(row pgx.Rows) (reference.Barco, error) {
				var b reference.Barco
				err := row.Scan(&b.Cod, &b.Nombre, &b.CodA3erp, &b.CodBrisapp, &b.Vendiduria)
				return b, err
			}, ventaDirecta)
	}
	if t.Barcos, err = barcos(false); err != nil {
		return nil, fmt.Errorf("leer barcos: %w", err)
	}
	if t.BarcosVentaDirecta, err = barcos(true); err != nil {
		return nil, fmt.Errorf("leer barcos venta directa: %w", err)
	}

	if t.Productos, err = collect(ctx, r.db, `SELECT nombre, alias, cod_a3erp FROM productos ORDER BY nombre`,
		func(row pgx.Rows) (reference.Producto, error) {
			var p reference.Producto
			err := row.Scan(&p.Nombre, &p.Alias, &p.CodA3erp)
			return p, err
		}); err != nil {
		return nil, fmt.Errorf("leer productos: %w", err)
	}

	type programado struct {
		programa string
		servicio reference.Servicio
	}
	servicios, err := collect(ctx, r.db, `
		SELECT programa, codigo, descripcion, porcentaje, sobre_servicio, tipo_iva
		FROM servicios ORDER BY programa, posicion`,
		func(row pgx.Rows) (programado, error) {
			var p programado
			s := &p.servicio
			err := row.Scan(&p.programa, &s.Codigo, &s.Descripcion, &s.Porcentaje, &s.SobreServicio, &s.TipoIVA)
			return p, err
		})
	if err != nil {
		return nil, fmt.Errorf("leer servicios: %w", err)
	}
	for _, p := range servicios {
		t.Servicios[p.programa] = append(t.Servicios[p.programa], p.servicio)
	}
	return t, nil
}

// ReplaceTables sustituye el contenido de todas las tablas de referencia en una transacción.
func (r *ReferenceRepo) ReplaceTables(ctx context.Context, t *reference.Tables) error {
	return runInTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE servicios, productos, barcos, armadores, vendidurias, lonjas`); err != nil {
			return fmt.Errorf("vaciar tablas de referencia: %w", err)
		}

		b := &pgx.Batch{}
		for _, l := range t.Lonjas {
			b.Queue(`INSERT INTO lonjas (cif, nombre, cod_a3erp) VALUES ($1, $2, $3)`, l.CIF, l.Nombre, l.CodA3erp)
		}
		for _, v := range t.DatosVendidurias {
			b.Queue(`INSERT INTO vendidurias (cif, nombre, cod_a3erp, porcentaje_servicios) VALUES ($1, $2, $3, $4)`,
				v.CIF, v.Nombre, v.CodA3erp, v.PorcentajeServicios)
		}
		for _, a := range t.Armadores {
			b.Queue(`INSERT INTO armadores (cif, nombre, cod_a3erp, cod_brisapp) VALUES ($1, $2, $3, $4)`,
				a.CIF, a.Nombre, a.CodA3erp, a.CodBrisapp)
		}
		queueBarcos(b, t.Barcos, false)
		queueBarcos(b, t.BarcosVentaDirecta, true)
		for _, p := range t.Productos {
			alias := p.Alias
			if alias == nil {
				alias = []string{}
			}
			b.Queue(`INSERT INTO productos (nombre, alias, cod_a3erp) VALUES ($1, $2, $3)`, p.Nombre, alias, p.CodA3erp)
		}
		for programa, lista := range t.Servicios {
			for i, s := range lista {
				b.Queue(`
					INSERT INTO servicios (programa, posicion, codigo, descripcion, porcentaje, sobre_servicio, tipo_iva)
					VALUES ($1, $2, $3, $4, $5, $6, $7)`,
					programa, i, s.Codigo, s.Descripcion, s.Porcentaje, s.SobreServicio, s.TipoIVA)
			}
		}

		n := b.Len()
		br := tx.SendBatch(ctx, b)
		for i := 0; i < n; i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				if isUniqueViolation(err) {
					return fmt.Errorf("fila de referencia duplicada: %w", err)
				}
				return fmt.Errorf("insertar referencia: %w", err)
			}
		}
		return br.Close()
	})
}

func queueBarcos(b *pgx.Batch, list []reference.Barco, ventaDirecta bool) {
	for _, barco := range list {
		b.Queue(`
			INSERT INTO barcos (cod, venta_directa, nombre, cod_a3erp, cod_brisapp, vendiduria)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			barco.Cod, ventaDirecta, barco.Nombre, barco.CodA3erp, barco.CodBrisapp, barco.Vendiduria)
	}
}

// collect ejecuta la consulta y escanea cada fila con scan.
func collect[T any](ctx context.Context, db Querier, sql string, scan func(pgx.Rows) (T, error), args ...any) ([]T, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
