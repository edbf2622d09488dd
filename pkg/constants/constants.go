// Package constants provides shared constants used throughout the plantid codebase.
// This includes timeouts, limits, placeholders, and upstream endpoints that
// should be consistent across the server, the client, and the CLI.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout applies to outbound HTTP clients built without an explicit timeout
	DefaultHTTPTimeout = 30 * time.Second

	// ClassifyTimeout bounds the Plant.id identification call
	ClassifyTimeout = 30 * time.Second

	// SummaryTimeout bounds each Wikipedia summary lookup
	SummaryTimeout = 8 * time.Second

	// TranslateTimeout bounds the Gemini translation call
	TranslateTimeout = 8 * time.Second

	// ClientTimeout is the default timeout for the identify command's request
	ClientTimeout = 90 * time.Second

	// ShutdownTimeout is how long the server waits for in-flight requests on shutdown
	ShutdownTimeout = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxRequestBodyBytes is the largest identify request body accepted (10 MiB)
	MaxRequestBodyBytes = 10 << 20

	// MaxErrorBodyBytes caps how much of an upstream error body is kept in an error
	MaxErrorBodyBytes = 512
)

// Placeholder values substituted when enrichment fails
const (
	// UnknownName stands in for a missing common name list
	UnknownName = "Unknown"

	// NoDescription is used when both encyclopedia lookups fail
	NoDescription = "No description available"

	// NoTranslation is used for every language when translation fails
	NoTranslation = "N/A"

	// EnglishLabel is the common-names key holding the English name list
	EnglishLabel = "English"
)

// User-facing error messages returned by the identify endpoint
const (
	// ErrMsgNoImage is returned with 400 when the request has no image
	ErrMsgNoImage = "No image provided"

	// ErrMsgNoPlant is returned with 404 when the classifier finds nothing
	ErrMsgNoPlant = "No plant identified"

	// ErrMsgIdentifyFailed is returned with 500 on any other failure
	ErrMsgIdentifyFailed = "Identification failed. Please try again."

	// ErrMsgTooLarge is returned with 413 when the body exceeds MaxRequestBodyBytes
	ErrMsgTooLarge = "Image too large"
)

// Upstream endpoints and defaults
const (
	// PlantIDBaseURL is the Plant.id v3 API root
	PlantIDBaseURL = "https://api.plant.id/v3"

	// WikipediaBaseURL is the Wikipedia REST API root
	WikipediaBaseURL = "https://en.wikipedia.org/api/rest_v1"

	// DefaultGeminiModel is the generative model used for translations
	DefaultGeminiModel = "gemini-1.5-flash"

	// UserAgent identifies plantid to upstream services
	UserAgent = "plantid/1.0 (+https://github.com/verdantlabs/plantid)"
)

// Server defaults
const (
	// DefaultHost is the default bind address
	DefaultHost = "localhost"

	// DefaultPort matches the port the browser page posts to
	DefaultPort = 5000

	// DefaultPathPrefix is the versioned API prefix
	DefaultPathPrefix = "/api/v1"

	// DefaultServerURL is where the identify command sends requests
	DefaultServerURL = "http://localhost:5000"
)
