package application

import (
	"github.com/rs/zerolog"

	"github.com/verdantlabs/plantid/internal/server/handlers"
	"github.com/verdantlabs/plantid/pkg/client"
	"github.com/verdantlabs/plantid/pkg/plants"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	IdentifierFunc   func() (handlers.Identifier, error)
	ChecksFunc       func() []handlers.Check
	LanguagesFunc    func() (plants.Languages, error)
	ClientFunc       func() *client.Client
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

var _ Application = (*Mock)(nil)

// Identifier returns an identifier using the mock function or nil.
func (m *Mock) Identifier() (handlers.Identifier, error) {
	if m.IdentifierFunc != nil {
		return m.IdentifierFunc()
	}
	return nil, nil
}

// Checks returns readiness checks using the mock function or none.
func (m *Mock) Checks() []handlers.Check {
	if m.ChecksFunc != nil {
		return m.ChecksFunc()
	}
	return nil
}

// Languages returns languages using the mock function or the defaults.
func (m *Mock) Languages() (plants.Languages, error) {
	if m.LanguagesFunc != nil {
		return m.LanguagesFunc()
	}
	return plants.DefaultLanguages(), nil
}

// Client returns a client using the mock function or one for the default server.
func (m *Mock) Client() *client.Client {
	if m.ClientFunc != nil {
		return m.ClientFunc()
	}
	return client.New("")
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
