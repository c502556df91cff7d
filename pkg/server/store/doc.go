// Package store provides storage abstractions for the arxiv-cache server.
//
// This package defines interfaces for database operations, allowing the
// resolver and HTTP endpoints to be decoupled from the specific database
// implementation, and easy to test with mocks.
//
// # Available Stores
//
//   - PapersStore: cached paper lookup, insertion, listing and author search
//   - HealthStore: database connectivity checks
//
// # Usage
//
//	papers := gorm.NewPapersStore(db)
//	paper, err := papers.FindByIdentifier(ctx, "oai:arXiv.org:2402.10949")
//	if err != nil {
//	    if errors.Is(err, store.ErrPaperNotFound) {
//	        // Not cached yet
//	    }
//	}
package store
