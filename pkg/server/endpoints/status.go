package endpoints

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/server"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
)

const healthCheckTimeout = 2 * time.Second

// StatusResponse is the JSON form of the status page
type StatusResponse struct {
	Version  string `json:"version"`
	Database string `json:"database"`
}

const statusMarkdown = `# arxiv-cache

Status: **%s**

| | |
|---|---|
| Version | %s |
| Database | %s |

## Endpoints

- ` + "`POST /arxiv/metadata/{id}`" + ` fetch metadata for an arXiv id, cached after the first call
- ` + "`GET /papers/`" + ` list cached papers
- ` + "`GET /papers/search/?author_name=`" + ` search cached papers by author name
`

const statusPage = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">
    <title>arxiv-cache status</title>
  </head>
  <body>
%s  </body>
</html>
`

// RegisterStatusEndpoints registers the status page
func RegisterStatusEndpoints(s *server.Server) {
	healthStore := s.HealthStore
	version := s.Version
	logger := s.Logger

	// GET / - status page, HTML or JSON
	s.Router.HandleFunc("/", handleStatus(healthStore, version, logger)).Methods("GET")
}

func handleStatus(healthStore store.HealthStore, version string, logger *zap.Logger) http.HandlerFunc {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		status, database, code := "running", "ok", http.StatusOK
		if err := healthStore.CheckConnectivity(ctx); err != nil {
			logger.Warn("database connectivity check failed", zap.Error(err))
			status, database, code = "degraded", "unavailable", http.StatusServiceUnavailable
		}

		accept := r.Header.Get("Accept")
		format := r.URL.Query().Get("format")
		if format == "json" || strings.Contains(accept, "application/json") {
			respondWithJSON(w, code, StatusResponse{Version: version, Database: database})
			return
		}

		var body bytes.Buffer
		if err := md.Convert([]byte(fmt.Sprintf(statusMarkdown, status, version, database)), &body); err != nil {
			respondWithClassifiedError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(code)
		_, _ = fmt.Fprintf(w, statusPage, body.String())
	}
}
