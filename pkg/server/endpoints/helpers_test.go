package endpoints

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/server"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
)

type testServer struct {
	server   *server.Server
	papers   *MockPapersStore
	health   *MockHealthStore
	resolver *MockResolver
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		papers:   NewMockPapersStore(),
		health:   NewMockHealthStore(),
		resolver: NewMockResolver(),
	}
	ts.server = server.NewServer(nil, TestConfig(), ts.resolver, zap.NewNop(), "127.0.0.1", "0")
	ts.server.PapersStore = ts.papers
	ts.server.HealthStore = ts.health
	ts.server.Version = "1.2.3"
	RegisterAll(ts.server)
	return ts
}

func (ts *testServer) do(method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(w, req)
	return w
}

func (ts *testServer) assertExpectations(t *testing.T) {
	t.Helper()
	ts.papers.AssertExpectations(t)
	ts.health.AssertExpectations(t)
	ts.resolver.AssertExpectations(t)
}

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func samplePaper() *store.Paper {
	return &store.Paper{
		ID:         1,
		Identifier: "oai:arXiv.org:2402.10949",
		Datestamp:  datePtr("2024-02-19"),
		SetSpec:    "cs",
		Created:    datePtr("2024-02-16"),
		Title:      "Caching",
		Categories: "cs.DB",
		License:    "CC-BY",
		Abstract:   "We study caches.",
		Authors: []store.Author{
			{ID: 1, Keyname: "Smith", Forenames: "John"},
			{ID: 2, Keyname: "Doe", Forenames: "Jane"},
		},
	}
}
