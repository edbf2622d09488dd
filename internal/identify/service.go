// Package identify runs one plant identification: classify the image, describe
// the best match, translate its common name, and assemble the result.
package identify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/verdantlabs/plantid/pkg/constants"
	"github.com/verdantlabs/plantid/pkg/errors"
	"github.com/verdantlabs/plantid/pkg/logging"
	"github.com/verdantlabs/plantid/pkg/plants"
)

// Classifier returns ranked suggestions for an image, best first.
type Classifier interface {
	Classify(ctx context.Context, image plants.ImagePayload) ([]plants.Suggestion, error)
}

// Summarizer returns an encyclopedia summary for a page title.
type Summarizer interface {
	Summary(ctx context.Context, title string) (string, error)
}

// Translator returns one translated name per language label.
type Translator interface {
	Translate(ctx context.Context, name string, langs plants.Languages) (plants.TranslationSet, error)
}

// Config holds the service settings.
type Config struct {
	// Languages are the translation targets, in display order.
	Languages plants.Languages

	ClassifyTimeout  time.Duration
	SummaryTimeout   time.Duration
	TranslateTimeout time.Duration
}

// DefaultConfig returns Hindi, Tamil and Kannada with the default step timeouts.
func DefaultConfig() Config {
	return Config{
		Languages:        plants.DefaultLanguages(),
		ClassifyTimeout:  constants.ClassifyTimeout,
		SummaryTimeout:   constants.SummaryTimeout,
		TranslateTimeout: constants.TranslateTimeout,
	}
}

// WithDefaults returns c with zero values taken from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if len(c.Languages) == 0 {
		c.Languages = d.Languages
	}
	if c.ClassifyTimeout <= 0 {
		c.ClassifyTimeout = d.ClassifyTimeout
	}
	if c.SummaryTimeout <= 0 {
		c.SummaryTimeout = d.SummaryTimeout
	}
	if c.TranslateTimeout <= 0 {
		c.TranslateTimeout = d.TranslateTimeout
	}
	return c
}

// Service identifies plants. It holds no per-request state and is safe for
// concurrent use if its collaborators are.
type Service struct {
	classifier Classifier
	summarizer Summarizer
	translator Translator
	config     Config
}

// NewService creates a Service. Zero values in cfg take their defaults.
func NewService(classifier Classifier, summarizer Summarizer, translator Translator, cfg Config) *Service {
	return &Service{
		classifier: classifier,
		summarizer: summarizer,
		translator: translator,
		config:     cfg.WithDefaults(),
	}
}

// Languages returns the configured translation targets.
func (s *Service) Languages() plants.Languages {
	return s.config.Languages
}

// Identify runs the identification steps in order. Each outbound call is awaited
// before the next begins.
//
// Errors:
//   - *errors.ValidationError when image is empty or not base64; nothing is called.
//   - *errors.NotFoundError when the classifier has no suggestion; nothing else is called.
//   - any other error when classification fails.
//
// Description and translation failures are logged and replaced by placeholders.
func (s *Service) Identify(ctx context.Context, image plants.ImagePayload) (*plants.Result, error) {
	logger := logging.FromContext(ctx)

	if image.Empty() {
		return nil, errors.NewValidationError("image", nil, constants.ErrMsgNoImage)
	}
	if _, err := image.Decode(); err != nil {
		return nil, &errors.ValidationError{Field: "image", Message: "image is not valid base64"}
	}

	suggestion, err := s.classify(ctx, image)
	if err != nil {
		return nil, err
	}

	names := suggestion.Names()
	logger.Debug().
		Str("scientific_name", suggestion.ScientificName).
		Float64("probability", suggestion.Probability).
		Strs("common_names", names).
		Msg("plant classified")

	description := s.describe(ctx, suggestion.ScientificName, names[0])
	translations := s.translate(ctx, names[0])

	return &plants.Result{
		ScientificName: suggestion.ScientificName,
		Description:    description,
		CommonNames: plants.CommonNames{
			English:      names,
			Translations: translations,
		},
	}, nil
}

func (s *Service) classify(ctx context.Context, image plants.ImagePayload) (*plants.Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.ClassifyTimeout)
	defer cancel()

	suggestions, err := s.classifier.Classify(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("classify image: %w", err)
	}
	if len(suggestions) == 0 {
		return nil, errors.NewNotFoundError("plant", "")
	}
	return &suggestions[0], nil
}

// describe tries the scientific name, then the first common name, then
// settles for the placeholder.
func (s *Service) describe(ctx context.Context, scientificName, commonName string) string {
	logger := logging.FromContext(ctx)

	for _, title := range []string{scientificName, commonName} {
		if plants.TitleKey(title) == "" {
			continue
		}
		text, err := s.summary(ctx, title)
		if err == nil {
			return text
		}
		event, msg := stepFailure(logger, err, "summary lookup")
		event.Str("title", plants.TitleKey(title)).Msg(msg)
	}
	return constants.NoDescription
}

func (s *Service) summary(ctx context.Context, title string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.SummaryTimeout)
	defer cancel()
	return s.summarizer.Summary(ctx, title)
}

func (s *Service) translate(ctx context.Context, name string) plants.TranslationSet {
	langs := s.config.Languages

	ctx, cancel := context.WithTimeout(ctx, s.config.TranslateTimeout)
	defer cancel()

	set, err := s.translator.Translate(ctx, name, langs)
	if err == nil && set.Complete(langs) {
		out := make(plants.TranslationSet, len(langs))
		for _, l := range langs {
			out[l.Label] = set[l.Label]
		}
		return out
	}
	if err == nil {
		err = errors.NewParseError("json", "translation", "incomplete translation set", nil)
	}
	event, msg := stepFailure(logging.FromContext(ctx), err, "translation")
	event.Str("name", name).Msg(msg)
	return plants.NewPlaceholderTranslations(langs)
}

// stepFailure picks the log level and message for a step whose failure is
// replaced by a placeholder. Cancellation means the caller went away, so it
// is only logged at debug level.
func stepFailure(logger *zerolog.Logger, err error, step string) (*zerolog.Event, string) {
	switch {
	case errors.IsCanceled(err):
		return logger.Debug().Err(err), step + " canceled"
	case errors.IsTimeout(err):
		return logger.Warn().Err(err), step + " timed out"
	case errors.IsRateLimited(err):
		return logger.Warn().Err(err), step + " rate limited"
	}
	return logger.Warn().Err(err), step + " failed"
}
