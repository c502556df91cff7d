//go:build !embed_migrations

package main

import (
	"io/fs"
	"os"
)

// migrationFS reads migrations from disk, db/migrations relative to the
// working directory unless ARXIV_CACHE_MIGRATIONS_PATH says otherwise.
func migrationFS() (fs.FS, string, error) {
	path := os.Getenv("ARXIV_CACHE_MIGRATIONS_PATH")
	if path == "" {
		path = "db/migrations"
	}
	if _, err := os.Stat(path); err != nil {
		return nil, "", err
	}
	return os.DirFS(path), path, nil
}
