// Package handlers provides HTTP request handlers for the plantid API.
package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/verdantlabs/plantid/pkg/plants"
)

// Identifier runs one identification.
type Identifier interface {
	Identify(ctx context.Context, image plants.ImagePayload) (*plants.Result, error)
}

// Check is a named readiness condition.
type Check struct {
	Name  string
	Ready func() bool
}

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	identifier Identifier
	checks     []Check
	build      BuildInfo
	logger     *zerolog.Logger
}

// New creates a new Handlers instance.
func New(identifier Identifier, checks []Check, build BuildInfo, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		identifier: identifier,
		checks:     checks,
		build:      build,
		logger:     logger,
	}
}
