//go:build embed_migrations

package main

import (
	"io/fs"

	"github.com/doodlesbykumbi/arxiv-cache/db"
)

// migrationFS serves the SQL files compiled into the binary.
func migrationFS() (fs.FS, string, error) {
	sub, err := fs.Sub(db.Migrations, "migrations")
	return sub, "embedded", err
}
