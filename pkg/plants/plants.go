// Package plants defines the values that flow through one identification
// request: the uploaded image, the classifier's suggestion, the translated
// names, and the assembled result returned to the client.
package plants

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"sort"
	"strings"

	"github.com/verdantlabs/plantid/pkg/constants"
	"github.com/verdantlabs/plantid/pkg/errors"
)

// ImagePayload is a base64-encoded image as sent by the client.
type ImagePayload string

// EncodeImage base64-encodes raw image bytes.
func EncodeImage(data []byte) ImagePayload {
	return ImagePayload(base64.StdEncoding.EncodeToString(data))
}

// StripDataURL removes a "data:<mime>;base64," prefix if present.
func StripDataURL(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.Index(s, ","); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Empty reports whether the payload carries no image data.
func (p ImagePayload) Empty() bool {
	return strings.TrimSpace(string(p)) == ""
}

// String returns the payload body without any data-URL prefix.
func (p ImagePayload) String() string {
	return strings.TrimSpace(StripDataURL(string(p)))
}

// Decode returns the raw image bytes.
func (p ImagePayload) Decode() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(p.String())
	if err != nil {
		return nil, errors.WrapParse("base64", "image", err)
	}
	return data, nil
}

// Suggestion is one ranked match returned by the classifier.
type Suggestion struct {
	ScientificName string   `json:"scientific_name"`
	CommonNames    []string `json:"common_names"`
	Probability    float64  `json:"probability"`
}

// Names returns the common names, or a single placeholder when there are none.
func (s Suggestion) Names() []string {
	names := make([]string, 0, len(s.CommonNames))
	for _, n := range s.CommonNames {
		if strings.TrimSpace(n) != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return []string{constants.UnknownName}
	}
	return names
}

// TitleKey converts a name into an encyclopedia page title.
func TitleKey(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// TranslationSet maps a language label ("Hindi") to a translated name.
type TranslationSet map[string]string

// NewPlaceholderTranslations maps every language to the "N/A" placeholder.
func NewPlaceholderTranslations(langs Languages) TranslationSet {
	set := make(TranslationSet, len(langs))
	for _, l := range langs {
		set[l.Label] = constants.NoTranslation
	}
	return set
}

// Complete reports whether every language has a non-empty entry.
func (t TranslationSet) Complete(langs Languages) bool {
	for _, l := range langs {
		if strings.TrimSpace(t[l.Label]) == "" {
			return false
		}
	}
	return true
}

// CommonNames holds the English name list plus one entry per target language.
// It marshals as a flat object: {"English": [...], "Hindi": "...", ...}.
type CommonNames struct {
	English      []string
	Translations TranslationSet
}

// MarshalJSON implements json.Marshaler.
func (c CommonNames) MarshalJSON() ([]byte, error) {
	english := c.English
	if english == nil {
		english = []string{}
	}

	keys := make([]string, 0, len(c.Translations))
	for k := range c.Translations {
		if k != constants.EnglishLabel {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeField(&buf, constants.EnglishLabel, english); err != nil {
		return nil, err
	}
	for _, k := range keys {
		buf.WriteByte(',')
		if err := writeField(&buf, k, c.Translations[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CommonNames) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.English = nil
	c.Translations = make(TranslationSet, len(raw))
	for k, v := range raw {
		if k == constants.EnglishLabel {
			if err := json.Unmarshal(v, &c.English); err != nil {
				return errors.WrapParse("json", "common_names.English", err)
			}
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return errors.WrapParse("json", "common_names."+k, err)
		}
		c.Translations[k] = s
	}
	return nil
}

func writeField(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// Result is the identification payload returned to the client.
type Result struct {
	ScientificName string      `json:"scientific_name" yaml:"scientific_name"`
	Description    string      `json:"description" yaml:"description"`
	CommonNames    CommonNames `json:"common_names" yaml:"common_names"`
}

// PrimaryName returns the first English common name.
func (r *Result) PrimaryName() string {
	if len(r.CommonNames.English) == 0 {
		return constants.UnknownName
	}
	return r.CommonNames.English[0]
}

// Translation returns the translated name for a language label, or the placeholder.
func (r *Result) Translation(label string) string {
	if v, ok := r.CommonNames.Translations[label]; ok && v != "" {
		return v
	}
	return constants.NoTranslation
}
