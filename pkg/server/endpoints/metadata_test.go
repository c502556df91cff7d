package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/arxiv"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/resolver"
)

func TestHandleFetchMetadata(t *testing.T) {
	t.Run("returns the record", func(t *testing.T) {
		ts := newTestServer(t)
		ts.resolver.On("Resolve", "2402.10949").Return(samplePaper(), nil)

		w := ts.do("POST", "/arxiv/metadata/2402.10949", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(1), body["id"])
		assert.Equal(t, "oai:arXiv.org:2402.10949", body["identifier"])
		assert.Equal(t, "cs", body["setSpec"])
		assert.Equal(t, "2024-02-19T00:00:00Z", body["datestamp"])
		assert.Equal(t, "2024-02-16T00:00:00Z", body["created"])
		assert.Contains(t, body, "updated")
		assert.Nil(t, body["updated"])
		assert.Equal(t, "We study caches.", body["abstract"])

		authors := body["authors"].([]interface{})
		require.Len(t, authors, 2)
		first := authors[0].(map[string]interface{})
		assert.Equal(t, "Smith", first["keyname"])
		assert.Equal(t, "John", first["forenames"])
		assert.Equal(t, float64(1), first["id"])
		ts.assertExpectations(t)
	})

	t.Run("accepts old-style ids with a slash", func(t *testing.T) {
		ts := newTestServer(t)
		ts.resolver.On("Resolve", "hep-th/9901001").Return(samplePaper(), nil).Twice()

		assert.Equal(t, http.StatusOK, ts.do("POST", "/arxiv/metadata/hep-th/9901001", nil, nil).Code)
		assert.Equal(t, http.StatusOK, ts.do("POST", "/arxiv/metadata/hep-th%2F9901001", nil, nil).Code)
		ts.assertExpectations(t)
	})

	t.Run("GET is not routed", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do("GET", "/arxiv/metadata/2402.10949", nil, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		ts.resolver.AssertNotCalled(t, "Resolve", "2402.10949")
	})
}

func TestHandleFetchMetadata_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid identifier", fmt.Errorf("%w \"x\"", resolver.ErrInvalidIdentifier), http.StatusBadRequest, CodeInvalidIdentifier},
		{"not found upstream", fmt.Errorf("fetching: %w", &arxiv.OAIError{Code: arxiv.CodeIDDoesNotExist}), http.StatusNotFound, CodeNotFound},
		{"invalid record", fmt.Errorf("%w: missing title", resolver.ErrValidation), http.StatusBadGateway, CodeUpstreamInvalid},
		{"malformed XML", fmt.Errorf("fetching: %w", arxiv.ErrInvalidResponse), http.StatusBadGateway, CodeUpstreamInvalid},
		{"unavailable", fmt.Errorf("fetching: %w", &arxiv.HTTPError{StatusCode: 503}), http.StatusBadGateway, CodeUpstreamUnavailable},
		{"timeout", fmt.Errorf("%w: %w", arxiv.ErrUnavailable, arxiv.ErrTimeout), http.StatusGatewayTimeout, CodeUpstreamTimeout},
		{"persistence", errors.New("pq: could not serialize access"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.resolver.On("Resolve", "2402.10949").Return(nil, tt.err)

			w := ts.do("POST", "/arxiv/metadata/2402.10949", nil, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body struct {
				Error ErrorBody `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, body.Error.Message, "pq:")
			}
		})
	}
}
