// seed_demo genera un script SQL con malls, locales y pagos de demostración para
// la base de Keystone (tablas "Mall", "Store", "Payment") a partir de un CSV.
//
// Uso: go run ./cmd/seed_demo [--latin1] [--dialect postgres|sqlite] [--out seed.sql] demo.csv
//
//	go run ./cmd/seed_demo --sqlite-db keystone.db demo.csv
//
// Con --sqlite-db no se escribe SQL: se crea el esquema con las migraciones
// embebidas y se cargan los datos directamente en esa base.
//
// Columnas del CSV (con cabecera): mall,store,rent_amount,payment_amount,payment_date
// Una fila por pago; las filas sin payment_amount solo declaran el local.
// Las exportaciones de Excel en español suelen venir en ISO-8859-1: usar --latin1.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	latin1 := pflag.Bool("latin1", false, "el CSV viene en ISO-8859-1")
	dialect := pflag.String("dialect", dialectPostgres, "dialecto SQL: postgres | sqlite")
	outPath := pflag.StringP("out", "o", "", "archivo de salida (por defecto stdout)")
	sqliteDB := pflag.String("sqlite-db", "", "base SQLite a crear/completar en lugar de generar SQL")
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_demo [--latin1] [--dialect postgres|sqlite] [--out seed.sql | --sqlite-db keystone.db] demo.csv")
		os.Exit(2)
	}

	f, err := os.Open(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	malls, err := parseCSV(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	if *sqliteDB != "" {
		stats, err := buildSQLiteDB(*sqliteDB, malls)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Base SQLite: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Cargado en %s: %d malls, %d locales, %d pagos\n", *sqliteDB, stats.malls, stats.stores, stats.payments)
		return
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}

	stats, err := writeSQL(out, malls, *dialect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generado: %d malls, %d locales, %d pagos\n", stats.malls, stats.stores, stats.payments)
}
