package plants_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/plantid/pkg/errors"
	"github.com/verdantlabs/plantid/pkg/plants"
)

func TestImagePayloadRoundTrip(t *testing.T) {
	raw := make([]byte, 1024)
	for i := range raw {
		raw[i] = byte(i * 7)
	}

	payload := plants.EncodeImage(raw)
	decoded, err := payload.Decode()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(raw, decoded))
}

func TestImagePayloadDataURL(t *testing.T) {
	payload := plants.ImagePayload("data:image/png;base64," + string(plants.EncodeImage([]byte("leaf"))))

	decoded, err := payload.Decode()
	require.NoError(t, err)
	assert.Equal(t, "leaf", string(decoded))
	assert.Equal(t, "bGVhZg==", payload.String())
}

func TestImagePayloadInvalid(t *testing.T) {
	_, err := plants.ImagePayload("not base64!").Decode()
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestImagePayloadEmpty(t *testing.T) {
	assert.True(t, plants.ImagePayload("").Empty())
	assert.True(t, plants.ImagePayload("  ").Empty())
	assert.False(t, plants.ImagePayload("aGk=").Empty())
}

func TestSuggestionNames(t *testing.T) {
	assert.Equal(t, []string{"Unknown"}, plants.Suggestion{}.Names())
	assert.Equal(t, []string{"Unknown"}, plants.Suggestion{CommonNames: []string{"", " "}}.Names())
	assert.Equal(t, []string{"Rose", "Indian rose"}, plants.Suggestion{CommonNames: []string{"Rose", "Indian rose"}}.Names())
}

func TestTitleKey(t *testing.T) {
	assert.Equal(t, "Rosa_indica", plants.TitleKey("Rosa indica"))
	assert.Equal(t, "Sacred_fig_tree", plants.TitleKey(" Sacred fig tree "))
}

func TestPlaceholderTranslations(t *testing.T) {
	langs := plants.DefaultLanguages()
	set := plants.NewPlaceholderTranslations(langs)

	assert.Equal(t, plants.TranslationSet{"Hindi": "N/A", "Tamil": "N/A", "Kannada": "N/A"}, set)
	assert.True(t, set.Complete(langs))

	delete(set, "Tamil")
	assert.False(t, set.Complete(langs))
}

func TestResultJSON(t *testing.T) {
	result := plants.Result{
		ScientificName: "Rosa indica",
		Description:    "A flowering shrub...",
		CommonNames: plants.CommonNames{
			English:      []string{"Rose"},
			Translations: plants.TranslationSet{"Hindi": "गुलाब", "Tamil": "ரோஜா", "Kannada": "ರೋಜ"},
		},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"scientific_name": "Rosa indica",
		"description": "A flowering shrub...",
		"common_names": {
			"English": ["Rose"],
			"Hindi": "गुलाब",
			"Tamil": "ரோஜா",
			"Kannada": "ರೋಜ"
		}
	}`, string(data))

	var decoded plants.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result, decoded)
}

func TestCommonNamesEnglishAlwaysPresent(t *testing.T) {
	data, err := json.Marshal(plants.CommonNames{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"English":[]}`, string(data))
}

func TestResultAccessors(t *testing.T) {
	r := &plants.Result{}
	assert.Equal(t, "Unknown", r.PrimaryName())
	assert.Equal(t, "N/A", r.Translation("Hindi"))

	r.CommonNames = plants.CommonNames{
		English:      []string{"Tulsi", "Holy basil"},
		Translations: plants.TranslationSet{"Hindi": "तुलसी"},
	}
	assert.Equal(t, "Tulsi", r.PrimaryName())
	assert.Equal(t, "तुलसी", r.Translation("Hindi"))
}
