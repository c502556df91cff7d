package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	t.Run("preflight from a trusted origin", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do("OPTIONS", "/arxiv/metadata/2402.10949", nil, map[string]string{
			"Origin":                         "http://localhost:5173",
			"Access-Control-Request-Method":  "POST",
			"Access-Control-Request-Headers": "Content-Type",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		ts.resolver.AssertNotCalled(t, "Resolve", "2402.10949")
	})

	t.Run("preflight from a trusted origin may request any header", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do("OPTIONS", "/arxiv/metadata/2402.10949", nil, map[string]string{
			"Origin":                         "http://localhost:5173",
			"Access-Control-Request-Method":  "POST",
			"Access-Control-Request-Headers": "x-client-trace, Content-Type",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "X-Client-Trace,Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight from an untrusted origin is not granted headers", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do("OPTIONS", "/arxiv/metadata/2402.10949", nil, map[string]string{
			"Origin":                         "http://evil.example",
			"Access-Control-Request-Method":  "POST",
			"Access-Control-Request-Headers": "X-Client-Trace",
		})

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("untrusted origin gets no CORS headers", func(t *testing.T) {
		ts := newTestServer(t)
		ts.health.On("CheckConnectivity").Return(nil)

		w := ts.do("GET", "/?format=json", nil, map[string]string{"Origin": "http://evil.example"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMockTestServer_ThroughGorm(t *testing.T) {
	s, mockDB, err := NewMockTestServer(NewMockResolver())
	require.NoError(t, err)
	defer mockDB.Close()

	mockDB.ExpectListPapers("oai:arXiv.org:1", "oai:arXiv.org:2")
	mockDB.ExpectHealthCheck(nil)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/papers/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body []PaperResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "oai:arXiv.org:2", body[1].Identifier)
	assert.Empty(t, body[1].Authors)

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/?format=json", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, mockDB.VerifyExpectations())
}

func TestMockTestServer_DatabaseDown(t *testing.T) {
	s, mockDB, err := NewMockTestServer(NewMockResolver())
	require.NoError(t, err)
	defer mockDB.Close()

	mockDB.ExpectHealthCheck(errors.New("connection refused"))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/?format=json", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NoError(t, mockDB.VerifyExpectations())
}
