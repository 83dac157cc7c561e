// Package transport provides the HTTP plumbing shared by the source readers.
// Both external collaborators are anonymous read-only endpoints, so the
// client carries no authentication, only a generous per-source timeout:
// category-subcategory expansion and federated SPARQL queries are slow.
package transport

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/enbywiki/enbyscan/pkg/errors"
)

// DefaultHTTPTimeout bounds a single request when no source-specific
// timeout is configured.
var DefaultHTTPTimeout = 3 * time.Minute

// userAgent identifies the tool per the Wikimedia API etiquette.
const userAgent = "enbyscan/1.0 (https://github.com/enbywiki/enbyscan)"

// Client performs HTTP requests against one external source.
type Client struct {
	http   *http.Client
	source string
}

// New creates a transport client for the named source with the given timeout.
// A zero timeout falls back to DefaultHTTPTimeout.
func New(source string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &Client{
		http:   &http.Client{Timeout: timeout},
		source: source,
	}
}

// Get performs a GET request with the given query parameters and extra
// headers. Transport-level failures are returned as APIError with no
// status code so they match errors.ErrTransport.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values, headers http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &errors.APIError{
			Source:   c.source,
			Endpoint: rawURL,
			Message:  "failed to build request",
			Err:      err,
		}
	}

	if params != nil {
		req.URL.RawQuery = params.Encode()
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for key, values := range headers {
		for _, value := range values {
			req.Header.Set(key, value)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.APIError{
			Source:   c.source,
			Endpoint: rawURL,
			Message:  "request failed",
			Err:      err,
		}
	}

	return resp, nil
}
