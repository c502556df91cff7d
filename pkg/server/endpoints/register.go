package endpoints

import (
	"github.com/doodlesbykumbi/arxiv-cache/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterMetadataEndpoints(srv)
	RegisterPapersEndpoints(srv)
	RegisterStatusEndpoints(srv)
}
