// Package plantid provides a client for the Plant.id v3 identification API.
package plantid

import (
	"context"
	"strings"
	"time"

	"github.com/verdantlabs/plantid/internal/transport"
	"github.com/verdantlabs/plantid/pkg/constants"
	"github.com/verdantlabs/plantid/pkg/errors"
	"github.com/verdantlabs/plantid/pkg/plants"
)

// ServiceName identifies Plant.id in errors and logs.
const ServiceName = "plant.id"

// Modifiers requested on every identification.
var Modifiers = []string{"crops_fast", "similar_images"}

// Details requested for each suggestion.
var Details = []string{"common_names", "scientific_name"}

// IdentificationRequest is the body of POST /identification.
type IdentificationRequest struct {
	Images       []string `json:"images"`
	Modifiers    []string `json:"modifiers,omitempty"`
	PlantDetails []string `json:"plant_details,omitempty"`
}

// IdentificationResponse is the subset of the Plant.id response plantid reads.
type IdentificationResponse struct {
	Result *struct {
		Classification *struct {
			Suggestions []SuggestionData `json:"suggestions"`
		} `json:"classification"`
	} `json:"result"`
}

// SuggestionData is one ranked suggestion as returned by Plant.id.
type SuggestionData struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	Details     *struct {
		CommonNames    []string `json:"common_names"`
		ScientificName string   `json:"scientific_name"`
	} `json:"details"`
}

// Client calls the Plant.id identification endpoint.
type Client struct {
	transport *transport.Client
	baseURL   string
}

// NewClient creates a Plant.id client. An empty baseURL selects the public API.
func NewClient(apiKey, baseURL string, opts ...transport.Option) *Client {
	if baseURL == "" {
		baseURL = constants.PlantIDBaseURL
	}
	opts = append([]transport.Option{transport.WithAPIKey(apiKey)}, opts...)
	return &Client{
		transport: transport.New(ServiceName, &transport.HeaderAuth{Header: "Api-Key"}, opts...),
		baseURL:   baseURL,
	}
}

// HasAPIKey returns true if the client has an API key.
func (c *Client) HasAPIKey() bool {
	return c.transport.HasAPIKey()
}

// Timeout returns the HTTP request timeout.
func (c *Client) Timeout() time.Duration {
	return c.transport.Timeout()
}

// Classify submits one image and returns the ranked suggestions, best first.
// An empty slice means Plant.id found no match.
func (c *Client) Classify(ctx context.Context, image plants.ImagePayload) ([]plants.Suggestion, error) {
	if !c.HasAPIKey() {
		return nil, errors.NewAuthenticationError(ServiceName, "api_key", "PLANT_ID_API_KEY is not configured", nil)
	}

	body := IdentificationRequest{
		Images:       []string{image.String()},
		Modifiers:    Modifiers,
		PlantDetails: Details,
	}

	resp, err := c.transport.PostJSON(ctx, transport.JoinURL(c.baseURL, "identification"), body)
	if err != nil {
		return nil, err
	}

	var result IdentificationResponse
	if err := transport.DecodeResponse(resp, ServiceName, &result); err != nil {
		return nil, err
	}

	if result.Result == nil || result.Result.Classification == nil {
		return nil, nil
	}

	suggestions := make([]plants.Suggestion, 0, len(result.Result.Classification.Suggestions))
	for _, s := range result.Result.Classification.Suggestions {
		suggestions = append(suggestions, s.toSuggestion())
	}
	return suggestions, nil
}

func (s SuggestionData) toSuggestion() plants.Suggestion {
	out := plants.Suggestion{
		ScientificName: strings.TrimSpace(s.Name),
		Probability:    s.Probability,
	}
	if s.Details != nil {
		out.CommonNames = s.Details.CommonNames
		if out.ScientificName == "" {
			out.ScientificName = strings.TrimSpace(s.Details.ScientificName)
		}
	}
	return out
}
