// Package model defines the database models for the arXiv metadata cache.
//
// This package contains GORM models that map to the cache's PostgreSQL
// schema. The schema is created by the SQL migrations under db/migrations.
//
// # Core Models
//
//   - Author: one author entry of one paper (no deduplication across papers)
//   - Paper: cached OAI-PMH metadata for a single preprint
//   - PaperAuthor: pure association between papers and authors
//
// # Database Schema
//
//   - authors: author name components
//   - papers: paper metadata, unique on identifier (oai:arXiv.org:<id>)
//   - paper_authors: (paper_id, author_id) pairs
package model
