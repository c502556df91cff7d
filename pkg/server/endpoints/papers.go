package endpoints

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/server"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
)

// RegisterPapersEndpoints registers the read endpoints over cached papers
func RegisterPapersEndpoints(s *server.Server) {
	papersStore := s.PapersStore
	logger := s.Logger

	// GET /papers/search/?author_name= - papers by author substring
	s.Router.HandleFunc("/papers/search/", handleSearchPapers(papersStore, logger)).Methods("GET")
	s.Router.HandleFunc("/papers/search", handleSearchPapers(papersStore, logger)).Methods("GET")

	// GET /papers/ - every cached paper
	s.Router.HandleFunc("/papers/", handleListPapers(papersStore, logger)).Methods("GET")
	s.Router.HandleFunc("/papers", handleListPapers(papersStore, logger)).Methods("GET")
}

func handleListPapers(papersStore store.PapersStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		papers, err := papersStore.ListPapers(r.Context())
		if err != nil {
			respondWithClassifiedError(w, logger, err)
			return
		}
		respondWithJSON(w, http.StatusOK, ToPaperResponses(papers))
	}
}

func handleSearchPapers(papersStore store.PapersStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, ok := r.URL.Query()["author_name"]
		if !ok || len(values) == 0 {
			respondWithError(w, http.StatusBadRequest, ErrorBody{
				Code:    CodeBadRequest,
				Message: "query parameter author_name is required",
			})
			return
		}

		papers, err := papersStore.SearchByAuthorName(r.Context(), values[0])
		if err != nil {
			respondWithClassifiedError(w, logger, err)
			return
		}
		respondWithJSON(w, http.StatusOK, ToPaperResponses(papers))
	}
}
