// Package application provides the application interface for plantid commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            identifier, err := app.Identifier()
//	            if err != nil {
//	                return err
//	            }
//	            // ... use identifier
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    ClientFunc: func() *client.Client {
//	        return client.New(srv.URL)
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/verdantlabs/plantid/internal/server/handlers"
	"github.com/verdantlabs/plantid/pkg/client"
	"github.com/verdantlabs/plantid/pkg/plants"
)

// Application provides the application interface that commands need.
// The App struct from cmd/plantid/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Identifier returns the identification service, creating it on first use.
	Identifier() (handlers.Identifier, error)

	// Checks returns the readiness conditions reported by the server.
	Checks() []handlers.Check

	// Languages returns the configured translation targets.
	Languages() (plants.Languages, error)

	// Client returns a client for a running plantid server.
	Client() *client.Client

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
