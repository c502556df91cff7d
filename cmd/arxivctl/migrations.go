package main

import (
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// createMigrateInstance reads migrations through iofs whichever way
// migrationFS was built.
func createMigrateInstance(dbURL string) (*migrate.Migrate, error) {
	fsys, origin, err := migrationFS()
	if err != nil {
		return nil, fmt.Errorf("migrations unavailable: %w", err)
	}
	src, err := iofs.New(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations from %s: %w", origin, err)
	}
	return migrate.NewWithSourceInstance("iofs", src, dbURL)
}

func listMigrationFiles() ([]string, error) {
	fsys, _, err := migrationFS()
	if err != nil {
		return nil, err
	}
	return upMigrations(fsys)
}

func upMigrations(fsys fs.FS) ([]string, error) {
	return fs.Glob(fsys, "*.up.sql")
}
