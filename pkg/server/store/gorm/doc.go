// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// Reads go through GORM's query builder where it fits and raw SQL where the
// query shape matters (the author-name search subquery, and inserts that
// rely on ON CONFLICT ... RETURNING). Every call is scoped with the caller's
// context so the pooled connection is released when the request ends.
package gorm
