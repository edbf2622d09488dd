package server

import (
	"time"

	"github.com/verdantlabs/plantid/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Request limits
	MaxBodyBytes int64

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Features
	WebEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
// WriteTimeout covers the three sequential upstream calls.
func DefaultConfig() Config {
	return Config{
		Host:         constants.DefaultHost,
		Port:         constants.DefaultPort,
		PathPrefix:   constants.DefaultPathPrefix,
		CORSEnabled:  true,
		CORSOrigins:  []string{},
		MaxBodyBytes: constants.MaxRequestBodyBytes,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		WebEnabled:   true,
	}
}
