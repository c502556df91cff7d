package arxiv

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// BaseURL is the arXiv OAI-PMH endpoint.
	BaseURL = "https://export.arxiv.org/oai2"

	// DefaultTimeout bounds a single GetRecord call.
	DefaultTimeout = 30 * time.Second

	// MetadataPrefix selects the arXiv-specific metadata format, which
	// carries split author names and the created/updated dates.
	MetadataPrefix = "arXiv"

	// CatalogPrefix turns a bare arXiv id into an OAI identifier.
	CatalogPrefix = "oai:arXiv.org:"

	maxResponseBytes = 8 << 20
)

// CatalogID returns the OAI identifier for a bare arXiv id, the key papers
// are cached under.
func CatalogID(id string) string {
	return CatalogPrefix + id
}

// Client fetches records from the arXiv OAI-PMH service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom endpoint (for testing or mirrors).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "?")
	}
}

// WithTimeout bounds each lookup. Zero or negative keeps the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent upstream.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new OAI-PMH client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    BaseURL,
		timeout:    DefaultTimeout,
		userAgent:  "arxiv-cache",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetRecord fetches the metadata of a single preprint by its bare arXiv id
// (e.g. "2402.10949" or "hep-th/9901001").
func (c *Client) GetRecord(ctx context.Context, id string) (*Record, error) {
	identifier := CatalogID(id)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL, err := c.recordURL(identifier)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Identifier: identifier}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	return decodeRecord(body, identifier)
}

func (c *Client) recordURL(identifier string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: bad base URL %q: %v", ErrUnavailable, c.baseURL, err)
	}
	q := u.Query()
	q.Set("verb", "GetRecord")
	q.Set("identifier", identifier)
	q.Set("metadataPrefix", MetadataPrefix)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func classifyTransportError(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w: %v", ErrUnavailable, ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// decodeRecord parses a GetRecord response body.
func decodeRecord(body []byte, identifier string) (*Record, error) {
	var envelope oaiResponse
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding OAI-PMH response: %v", ErrInvalidResponse, err)
	}

	if len(envelope.Errors) > 0 {
		e := envelope.Errors[0]
		return nil, &OAIError{
			Code:       e.Code,
			Message:    strings.TrimSpace(e.Message),
			Identifier: identifier,
		}
	}

	if envelope.GetRecord == nil {
		return nil, fmt.Errorf("%w: response has no GetRecord element", ErrInvalidResponse)
	}

	rec := envelope.GetRecord.Record
	if rec.Header.Status == "deleted" {
		return nil, fmt.Errorf("%w: %s is marked deleted", ErrNotFound, identifier)
	}
	meta := rec.Metadata.ArXiv
	if meta == nil {
		return nil, fmt.Errorf("%w: record has no arXiv metadata", ErrInvalidResponse)
	}

	record := &Record{
		Identifier: strings.TrimSpace(rec.Header.Identifier),
		Datestamp:  strings.TrimSpace(rec.Header.Datestamp),
		Created:    strings.TrimSpace(meta.Created),
		Updated:    strings.TrimSpace(meta.Updated),
		Title:      collapseSpace(meta.Title),
		Categories: strings.TrimSpace(meta.Categories),
		License:    strings.TrimSpace(meta.License),
		Abstract:   strings.TrimSpace(meta.Abstract),
		Authors:    make([]Author, 0, len(meta.Authors)),
	}
	if len(rec.Header.SetSpecs) > 0 {
		record.SetSpec = strings.TrimSpace(rec.Header.SetSpecs[0])
	}
	for _, a := range meta.Authors {
		record.Authors = append(record.Authors, Author{
			Keyname:   collapseSpace(a.Keyname),
			Forenames: collapseSpace(a.Forenames),
		})
	}

	return record, nil
}

// collapseSpace folds the line breaks and indentation arXiv puts in long
// titles and names into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
