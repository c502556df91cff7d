package endpoints

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/arxiv"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/resolver"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
)

// Error codes carried in the "code" field of error responses
const (
	CodeBadRequest          = "bad_request"
	CodeInvalidIdentifier   = "invalid_identifier"
	CodeNotFound            = "not_found"
	CodeUpstreamInvalid     = "upstream_invalid"
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeUpstreamTimeout     = "upstream_timeout"
	CodeInternal            = "internal_error"
)

// ErrorBody is the payload under the "error" key of an error response
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AuthorResponse is one author in a paper response
type AuthorResponse struct {
	ID        uint   `json:"id"`
	Keyname   string `json:"keyname"`
	Forenames string `json:"forenames"`
}

// PaperResponse is the JSON shape of a cached paper
type PaperResponse struct {
	ID         uint             `json:"id"`
	Identifier string           `json:"identifier"`
	Datestamp  *time.Time       `json:"datestamp"`
	SetSpec    string           `json:"setSpec"`
	Created    *time.Time       `json:"created"`
	Updated    *time.Time       `json:"updated"`
	Authors    []AuthorResponse `json:"authors"`
	Title      string           `json:"title"`
	Categories string           `json:"categories"`
	License    string           `json:"license"`
	Abstract   string           `json:"abstract"`
}

// ToPaperResponse shapes a stored paper for JSON output.
func ToPaperResponse(p *store.Paper) PaperResponse {
	authors := make([]AuthorResponse, 0, len(p.Authors))
	for _, a := range p.Authors {
		authors = append(authors, AuthorResponse{ID: a.ID, Keyname: a.Keyname, Forenames: a.Forenames})
	}
	return PaperResponse{
		ID:         p.ID,
		Identifier: p.Identifier,
		Datestamp:  p.Datestamp,
		SetSpec:    p.SetSpec,
		Created:    p.Created,
		Updated:    p.Updated,
		Authors:    authors,
		Title:      p.Title,
		Categories: p.Categories,
		License:    p.License,
		Abstract:   p.Abstract,
	}
}

// ToPaperResponses always returns a non-nil slice so empty results encode as [].
func ToPaperResponses(papers []store.Paper) []PaperResponse {
	out := make([]PaperResponse, 0, len(papers))
	for i := range papers {
		out = append(out, ToPaperResponse(&papers[i]))
	}
	return out
}

// classifyError maps a resolver or store error onto a status and code.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, resolver.ErrInvalidIdentifier):
		return http.StatusBadRequest, CodeInvalidIdentifier
	case errors.Is(err, arxiv.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, resolver.ErrValidation), errors.Is(err, arxiv.ErrInvalidResponse):
		return http.StatusBadGateway, CodeUpstreamInvalid
	case errors.Is(err, arxiv.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeUpstreamTimeout
	case errors.Is(err, arxiv.ErrUnavailable):
		return http.StatusBadGateway, CodeUpstreamUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// respondWithClassifiedError writes err with the status classifyError
// picks. Internal errors are logged and not echoed to the client.
func respondWithClassifiedError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status, code := classifyError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		message = "internal server error"
	}
	respondWithError(w, status, ErrorBody{Code: code, Message: message})
}

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
