package main

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateSQLite crea (o deja al día) el esquema de Keystone en la base indicada.
// Usa su propia conexión: al cerrar la instancia de migrate se cierra también la base.
func migrateSQLite(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("abrir base para migrar: %w", err)
	}
	defer db.Close()

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("driver sqlite: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("fuente iofs: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("instancia migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migraciones: %w", err)
	}
	return nil
}

// buildSQLiteDB migra el esquema y carga los malls en una base lista para DATA_SOURCE=sqlite.
func buildSQLiteDB(path string, malls []*seedMall) (seedStats, error) {
	if err := migrateSQLite(path); err != nil {
		return seedStats{}, err
	}

	var script strings.Builder
	stats, err := writeSQL(&script, malls, dialectSQLite)
	if err != nil {
		return stats, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return stats, fmt.Errorf("abrir base: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(script.String()); err != nil {
		return stats, fmt.Errorf("cargar datos: %w", err)
	}
	return stats, nil
}
