package gemini

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/verdantlabs/plantid/pkg/errors"
	"github.com/verdantlabs/plantid/pkg/plants"
)

type fakeGenerator struct {
	text   string
	err    error
	calls  int
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(f.text, genai.RoleModel)},
		},
	}, nil
}

func newTestTranslator(gen generator) *Translator {
	t := NewTranslator("test-key", "")
	t.gen = gen
	return t
}

func TestTranslate(t *testing.T) {
	gen := &fakeGenerator{text: `{"Hindi":"गुलाब","Tamil":"ரோஜா","Kannada":"ರೋಜ"}`}
	tr := newTestTranslator(gen)

	set, err := tr.Translate(context.Background(), "Rose", plants.DefaultLanguages())
	require.NoError(t, err)
	assert.Equal(t, plants.TranslationSet{
		"Hindi":   "गुलाब",
		"Tamil":   "ரோஜா",
		"Kannada": "ರೋಜ",
	}, set)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "gemini-1.5-flash", gen.model)
	assert.Equal(t, "application/json", gen.config.ResponseMIMEType)
	assert.Contains(t, gen.prompt, `"Rose"`)
	assert.Contains(t, gen.prompt, `"Hindi", "Tamil", "Kannada"`)
}

func TestTranslateFencedResponse(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n{\"Hindi\":\"गुलाब\",\"Tamil\":\"ரோஜா\",\"Kannada\":\"ರೋಜ\",\"French\":\"Rose\"}\n```"}

	set, err := newTestTranslator(gen).Translate(context.Background(), "Rose", plants.DefaultLanguages())
	require.NoError(t, err)
	assert.Len(t, set, 3)
	assert.NotContains(t, set, "French")
}

func TestTranslateFailures(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"generate error", &fakeGenerator{err: stderrors.New("quota exceeded")}},
		{"not json", &fakeGenerator{text: "Hindi: gulab"}},
		{"empty text", &fakeGenerator{text: ""}},
		{"missing key", &fakeGenerator{text: `{"Hindi":"गुलाब","Tamil":"ரோஜா"}`}},
		{"empty value", &fakeGenerator{text: `{"Hindi":"गुलाब","Tamil":"ரோஜா","Kannada":" "}`}},
		{"non-string value", &fakeGenerator{text: `{"Hindi":"गुलाब","Tamil":"ரோஜா","Kannada":7}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := newTestTranslator(tt.gen).Translate(context.Background(), "Rose", plants.DefaultLanguages())
			assert.Error(t, err)
			assert.Nil(t, set)
		})
	}
}

func TestTranslateMissingKey(t *testing.T) {
	tr := NewTranslator("", "gemini-2.0-flash")
	assert.False(t, tr.HasAPIKey())
	assert.Equal(t, "gemini-2.0-flash", tr.Model())

	_, err := tr.Translate(context.Background(), "Rose", plants.DefaultLanguages())
	assert.True(t, errors.IsAPIKeyError(err))
}

func TestTranslateNoLanguages(t *testing.T) {
	gen := &fakeGenerator{}
	set, err := newTestTranslator(gen).Translate(context.Background(), "Rose", nil)
	require.NoError(t, err)
	assert.Empty(t, set)
	assert.Zero(t, gen.calls)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripFences("  {\"a\":1} "))
}
