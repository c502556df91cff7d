// Package server provides the HTTP server for the arxiv-cache API.
//
// It uses gorilla/mux for routing and wraps the router with gorilla/handlers
// for CORS and access logging. Every request runs on its own goroutine and
// shares the *gorm.DB pool held by the server's stores.
//
// # Server Setup
//
//	srv := server.NewServer(db, cfg, resolver, logger, "0.0.0.0", "8000")
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Router: HTTP request router
//   - DB: Database connection pool
//   - PapersStore, HealthStore: persistence
//   - Resolver: get-or-fetch for papers
//   - Config, Logger
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - POST /arxiv/metadata/{id} - fetch (or return cached) metadata
//   - GET /papers/ - list cached papers
//   - GET /papers/search/?author_name= - search cached papers by author
//   - GET / - status page
package server
