package endpoints

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/server"
)

// RegisterMetadataEndpoints registers the get-or-fetch endpoint
func RegisterMetadataEndpoints(s *server.Server) {
	resolver := s.Resolver
	logger := s.Logger

	// POST /arxiv/metadata/{id} - old-style ids contain a slash, hence .+
	s.Router.HandleFunc("/arxiv/metadata/{id:.+}", handleFetchMetadata(resolver, logger)).Methods("POST")
}

func handleFetchMetadata(resolver server.Resolver, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := url.PathUnescape(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, ErrorBody{Code: CodeInvalidIdentifier, Message: "malformed id in path"})
			return
		}

		paper, err := resolver.Resolve(r.Context(), id)
		if err != nil {
			respondWithClassifiedError(w, logger, err)
			return
		}

		respondWithJSON(w, http.StatusOK, ToPaperResponse(paper))
	}
}
