// Package gemini translates plant names with the Gemini generative API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/verdantlabs/plantid/pkg/constants"
	"github.com/verdantlabs/plantid/pkg/errors"
	"github.com/verdantlabs/plantid/pkg/plants"
)

// ServiceName identifies Gemini in errors and logs.
const ServiceName = "gemini"

// generator is the slice of *genai.Models the translator calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Translator turns an English plant name into names in other languages.
type Translator struct {
	apiKey string
	model  string

	// lazily created on first use and reused afterwards
	gen generator

	mu sync.Mutex
}

// NewTranslator creates a translator. An empty model selects the default.
func NewTranslator(apiKey, model string) *Translator {
	if model == "" {
		model = constants.DefaultGeminiModel
	}
	return &Translator{
		apiKey: apiKey,
		model:  model,
	}
}

// HasAPIKey returns true if the translator has an API key.
func (t *Translator) HasAPIKey() bool {
	return t.apiKey != ""
}

// Model returns the model name used for generation.
func (t *Translator) Model() string {
	return t.model
}

// client returns the cached generator, creating a genai client if needed.
func (t *Translator) client(ctx context.Context) (generator, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.gen != nil {
		return t.gen, nil
	}

	if !t.HasAPIKey() {
		return nil, errors.NewAuthenticationError(ServiceName, "api_key", "GEMINI_API_KEY is not configured", nil)
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  t.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &errors.ConfigError{
			Component: ServiceName,
			Message:   "failed to create genai client",
			Err:       err,
		}
	}

	t.gen = c.Models
	return t.gen, nil
}

// Translate asks the model for name in every language of langs. The result
// holds exactly one non-empty entry per language label; anything less is an error.
func (t *Translator) Translate(ctx context.Context, name string, langs plants.Languages) (plants.TranslationSet, error) {
	if len(langs) == 0 {
		return plants.TranslationSet{}, nil
	}

	gen, err := t.client(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := gen.GenerateContent(ctx, t.model, genai.Text(Prompt(name, langs)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0),
	})
	if err != nil {
		return nil, errors.WrapAPI(ServiceName, 0, err)
	}
	if resp == nil {
		return nil, errors.NewAPIError(ServiceName, 0, "empty response")
	}

	return ParseTranslations(resp.Text(), langs)
}

// Prompt builds the instruction sent to the model.
func Prompt(name string, langs plants.Languages) string {
	labels := langs.Labels()
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = fmt.Sprintf("%q", l)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Translate the plant name %q into %s.\n", name, strings.Join(labels, ", "))
	fmt.Fprintf(&b, "Respond with only a JSON object with exactly these keys: %s.\n", strings.Join(quoted, ", "))
	b.WriteString("Each value must be the name written in the native script of that language. ")
	b.WriteString("Do not add any explanation.")
	return b.String()
}

// ParseTranslations decodes the model's JSON reply. Markdown code fences are
// stripped first. Keys outside langs are dropped.
func ParseTranslations(text string, langs plants.Languages) (plants.TranslationSet, error) {
	raw := stripFences(text)
	if raw == "" {
		return nil, errors.NewParseError("json", ServiceName, "empty response text", nil)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, errors.WrapParse("json", ServiceName, err)
	}

	set := make(plants.TranslationSet, len(langs))
	for _, l := range langs {
		v, ok := decoded[l.Label].(string)
		if !ok || strings.TrimSpace(v) == "" {
			return nil, errors.NewParseError("json", ServiceName, fmt.Sprintf("missing translation for %s", l.Label), nil)
		}
		set[l.Label] = strings.TrimSpace(v)
	}
	return set, nil
}

func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		// drop the info string, e.g. ```json
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
