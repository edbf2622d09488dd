// Package wikipedia fetches page summaries from the Wikipedia REST API.
package wikipedia

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/verdantlabs/plantid/internal/transport"
	"github.com/verdantlabs/plantid/pkg/constants"
	"github.com/verdantlabs/plantid/pkg/errors"
	"github.com/verdantlabs/plantid/pkg/plants"
)

// ServiceName identifies Wikipedia in errors and logs.
const ServiceName = "wikipedia"

// PageSummary is the subset of the page/summary response wikipedia reads.
type PageSummary struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Client looks up page summaries. It needs no credentials.
type Client struct {
	transport *transport.Client
	baseURL   string
}

// NewClient creates a Wikipedia client. An empty baseURL selects English Wikipedia.
func NewClient(baseURL string, opts ...transport.Option) *Client {
	if baseURL == "" {
		baseURL = constants.WikipediaBaseURL
	}
	return &Client{
		transport: transport.New(ServiceName, &transport.NoAuth{}, opts...),
		baseURL:   baseURL,
	}
}

// Timeout returns the HTTP request timeout.
func (c *Client) Timeout() time.Duration {
	return c.transport.Timeout()
}

// Summary returns the plain-text extract of the page titled name.
// Spaces in name become underscores. A missing page or an empty extract
// is reported as a not found error.
func (c *Client) Summary(ctx context.Context, name string) (string, error) {
	title := plants.TitleKey(name)
	if title == "" {
		return "", errors.NewValidationError("title", name, "cannot be empty")
	}

	endpoint := transport.JoinURL(c.baseURL, "page/summary/"+url.PathEscape(title))
	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return "", err
	}

	var page PageSummary
	if err := transport.DecodeResponse(resp, ServiceName, &page); err != nil {
		return "", err
	}

	extract := strings.TrimSpace(page.Extract)
	if extract == "" {
		return "", errors.NewNotFoundError("summary", title)
	}
	return extract, nil
}
