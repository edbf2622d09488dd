// Package app provides the application context and dependency management
// for the plantid CLI. It centralizes configuration, logging, and the
// lazily built identification service shared by the commands.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/verdantlabs/plantid/internal/cmd/application"
	"github.com/verdantlabs/plantid/internal/identify"
	"github.com/verdantlabs/plantid/internal/server/handlers"
	"github.com/verdantlabs/plantid/internal/sources/gemini"
	"github.com/verdantlabs/plantid/internal/sources/plantid"
	"github.com/verdantlabs/plantid/internal/sources/wikipedia"
	"github.com/verdantlabs/plantid/internal/transport"
	"github.com/verdantlabs/plantid/pkg/client"
	"github.com/verdantlabs/plantid/pkg/constants"
	"github.com/verdantlabs/plantid/pkg/errors"
	"github.com/verdantlabs/plantid/pkg/logging"
	"github.com/verdantlabs/plantid/pkg/plants"
)

// App represents the plantid application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Identification service (lazy-initialized, singleton)
	mu      sync.RWMutex
	service *identify.Service
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "load config", err)
	}
	app.config = config

	logger := NewLogger(config)
	logging.SetDefault(logger)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Languages resolves the configured translation targets.
func (a *App) Languages() (plants.Languages, error) {
	if len(a.config.TargetLanguages) == 0 {
		return plants.DefaultLanguages(), nil
	}
	langs, err := plants.ParseLanguages(a.config.TargetLanguages)
	if err != nil {
		return nil, errors.NewConfigError("target_languages", err.Error(), err)
	}
	return langs, nil
}

// Identifier returns the identification service.
func (a *App) Identifier() (handlers.Identifier, error) {
	svc, err := a.Service()
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// Service returns the identification service, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Service() (*identify.Service, error) {
	a.mu.RLock()
	if a.service != nil {
		svc := a.service
		a.mu.RUnlock()
		return svc, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.service != nil {
		return a.service, nil
	}

	svc, err := a.buildService()
	if err != nil {
		return nil, err
	}

	a.service = svc
	return svc, nil
}

// buildService wires the upstream clients from the configuration.
func (a *App) buildService() (*identify.Service, error) {
	langs, err := a.Languages()
	if err != nil {
		return nil, err
	}

	cfg := identify.Config{
		Languages:        langs,
		ClassifyTimeout:  a.config.ClassifyTimeout,
		SummaryTimeout:   a.config.SummaryTimeout,
		TranslateTimeout: a.config.TranslateTimeout,
	}.WithDefaults()

	classifier, summarizer := a.upstreams(cfg)
	translator := gemini.NewTranslator(a.config.GeminiAPIKey, a.config.GeminiModel)

	a.logger.Debug().
		Strs("languages", langs.Labels()).
		Str("model", translator.Model()).
		Bool("plant_id_key", classifier.HasAPIKey()).
		Bool("gemini_key", translator.HasAPIKey()).
		Dur("classify_timeout", classifier.Timeout()).
		Dur("summary_timeout", summarizer.Timeout()).
		Msg("Identification service created")

	return identify.NewService(classifier, summarizer, translator, cfg), nil
}

// upstreams builds the HTTP source clients. Each client's timeout is its
// step timeout, so a step longer than the transport default is not cut short.
func (a *App) upstreams(cfg identify.Config) (*plantid.Client, *wikipedia.Client) {
	ua := transport.WithUserAgent(constants.UserAgent)
	classifier := plantid.NewClient(a.config.PlantIDAPIKey, a.config.PlantIDBaseURL,
		ua, transport.WithTimeout(cfg.ClassifyTimeout))
	summarizer := wikipedia.NewClient(a.config.WikipediaBaseURL,
		ua, transport.WithTimeout(cfg.SummaryTimeout))
	return classifier, summarizer
}

// Checks reports whether each upstream credential is configured.
func (a *App) Checks() []handlers.Check {
	return []handlers.Check{
		{Name: "plant_id_api_key", Ready: func() bool { return a.config.PlantIDAPIKey != "" }},
		{Name: "gemini_api_key", Ready: func() bool { return a.config.GeminiAPIKey != "" }},
	}
}

// Client returns a client for the configured server URL.
func (a *App) Client() *client.Client {
	return client.New(a.config.ServerURL)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithService sets a custom identification service (useful for testing).
func WithService(svc *identify.Service) Option {
	return func(a *App) error {
		a.service = svc
		return nil
	}
}
