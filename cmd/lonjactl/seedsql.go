package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"
)

// writeSeedSQL genera un script que sustituye el contenido de las tablas de referencia.
// El orden de salida es estable para que el script se pueda versionar.
func writeSeedSQL(w io.Writer, t *reference.Tables, source string) error {
	out := bufio.NewWriter(w)

	out.WriteString("-- Tablas de referencia de lonjas\n")
	fmt.Fprintf(out, "-- Generado desde %s\n\n", source)
	out.WriteString("BEGIN;\n\n")
	out.WriteString("TRUNCATE servicios, productos, barcos, armadores, vendidurias, lonjas;\n\n")

	out.WriteString("-- 1. Lonjas\n")
	for _, l := range t.Lonjas {
		fmt.Fprintf(out, "INSERT INTO lonjas (cif, nombre, cod_a3erp) VALUES (%s, %s, %s);\n",
			quote(l.CIF), quote(l.Nombre), quote(l.CodA3erp))
	}

	out.WriteString("\n-- 2. Vendidurías\n")
	for _, v := range t.DatosVendidurias {
		fmt.Fprintf(out, "INSERT INTO vendidurias (cif, nombre, cod_a3erp, porcentaje_servicios) VALUES (%s, %s, %s, %s);\n",
			quote(v.CIF), quote(v.Nombre), quote(v.CodA3erp), v.PorcentajeServicios.String())
	}

	out.WriteString("\n-- 3. Armadores\n")
	for _, a := range t.Armadores {
		fmt.Fprintf(out, "INSERT INTO armadores (cif, nombre, cod_a3erp, cod_brisapp) VALUES (%s, %s, %s, %s);\n",
			quote(a.CIF), quote(a.Nombre), quote(a.CodA3erp), nullInt(a.CodBrisapp))
	}

	out.WriteString("\n-- 4. Barcos\n")
	writeBarcos(out, t.Barcos, false)
	writeBarcos(out, t.BarcosVentaDirecta, true)

	out.WriteString("\n-- 5. Productos\n")
	for _, p := range t.Productos {
		fmt.Fprintf(out, "INSERT INTO productos (nombre, alias, cod_a3erp) VALUES (%s, %s, %s);\n",
			quote(p.Nombre), textArray(p.Alias), quote(p.CodA3erp))
	}

	out.WriteString("\n-- 6. Programas de tarifas\n")
	programas := make([]string, 0, len(t.Servicios))
	for name := range t.Servicios {
		programas = append(programas, name)
	}
	sort.Strings(programas)
	for _, name := range programas {
		for i, s := range t.Servicios[name] {
			fmt.Fprintf(out, "INSERT INTO servicios (programa, posicion, codigo, descripcion, porcentaje, sobre_servicio, tipo_iva) VALUES (%s, %d, %s, %s, %s, %s, %s);\n",
				quote(name), i, quote(s.Codigo), quote(s.Descripcion), s.Porcentaje.String(), quote(s.SobreServicio), quote(s.TipoIVA))
		}
	}

	out.WriteString("\nCOMMIT;\n")
	return out.Flush()
}

func writeBarcos(out *bufio.Writer, list []reference.Barco, ventaDirecta bool) {
	for _, b := range list {
		fmt.Fprintf(out, "INSERT INTO barcos (cod, venta_directa, nombre, cod_a3erp, cod_brisapp, vendiduria) VALUES (%s, %t, %s, %s, %s, %s);\n",
			quote(b.Cod), ventaDirecta, quote(b.Nombre), quote(b.CodA3erp), nullInt(b.CodBrisapp), quote(b.Vendiduria))
	}
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func quote(s string) string {
	return "'" + escapeSQL(s) + "'"
}

func nullInt(v *int) string {
	if v == nil {
		return "NULL"
	}
	return strconv.Itoa(*v)
}

func textArray(list []string) string {
	if len(list) == 0 {
		return "'{}'"
	}
	parts := make([]string, len(list))
	for i, s := range list {
		parts[i] = quote(s)
	}
	return "ARRAY[" + strings.Join(parts, ", ") + "]::text[]"
}
