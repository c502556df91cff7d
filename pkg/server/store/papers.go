package store

import (
	"context"
	"errors"
	"time"
)

// ErrPaperNotFound is returned when no paper has the requested identifier
var ErrPaperNotFound = errors.New("paper not found")

// ErrPaperExists is returned when a paper with the same identifier was
// stored by another writer first
var ErrPaperExists = errors.New("paper already exists")

// Author is one author entry of a paper. Authors are never shared between
// papers.
type Author struct {
	ID        uint
	Keyname   string
	Forenames string
}

// Paper is a cached preprint record with its authors attached.
type Paper struct {
	ID         uint
	Identifier string
	Datestamp  *time.Time
	SetSpec    string
	Created    *time.Time
	Updated    *time.Time
	Title      string
	Categories string
	License    string
	Abstract   string
	Authors    []Author
}

// PapersStore abstracts paper persistence.
type PapersStore interface {
	// FindByIdentifier returns the paper with the given catalog identifier.
	// Returns ErrPaperNotFound if it is not cached.
	FindByIdentifier(ctx context.Context, identifier string) (*Paper, error)

	// InsertPaper stores a paper, its authors and their associations in a
	// single transaction and returns it with generated ids populated.
	// Returns ErrPaperExists if the identifier is already taken.
	InsertPaper(ctx context.Context, paper *Paper) (*Paper, error)

	// ListPapers returns every cached paper ordered by id.
	ListPapers(ctx context.Context) ([]Paper, error)

	// SearchByAuthorName returns papers with at least one author whose
	// "keyname forenames" contains name, ignoring case. Each paper appears
	// once.
	SearchByAuthorName(ctx context.Context, name string) ([]Paper, error)
}
