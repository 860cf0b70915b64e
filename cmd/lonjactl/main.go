// lonjactl valida y exporta lotes de documentos de lonja desde la línea de comandos y
// administra las tablas de referencia, las migraciones y los usuarios de la API.
//
// Uso:
//
//	lonjactl export lonjadeisla lote.json --out lote.xlsx
//	lonjactl refdata seed-sql refdata.yaml --out seed.sql
//	lonjactl migrate up
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
