package plants

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a translation target: a BCP 47 tag and its English label.
type Language struct {
	Tag   language.Tag
	Label string
}

// Languages is an ordered set of translation targets.
type Languages []Language

// DefaultLanguageTags are the targets used when none are configured.
var DefaultLanguageTags = []string{"hi", "ta", "kn"}

// ParseLanguages resolves BCP 47 tags into labelled languages. Duplicate
// labels are dropped, and "English" is rejected since it is always present.
func ParseLanguages(tags []string) (Languages, error) {
	namer := display.English.Languages()
	seen := make(map[string]bool, len(tags))
	langs := make(Languages, 0, len(tags))

	for _, raw := range tags {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		tag, err := language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid language tag %q: %w", raw, err)
		}
		label := namer.Name(tag)
		if label == "" {
			return nil, fmt.Errorf("no English name for language tag %q", raw)
		}
		if label == "English" {
			return nil, fmt.Errorf("language tag %q: English names are always included", raw)
		}
		if seen[label] {
			continue
		}
		seen[label] = true
		langs = append(langs, Language{Tag: tag, Label: label})
	}

	if len(langs) == 0 {
		return nil, fmt.Errorf("no target languages configured")
	}
	return langs, nil
}

// DefaultLanguages returns Hindi, Tamil and Kannada.
func DefaultLanguages() Languages {
	langs, err := ParseLanguages(DefaultLanguageTags)
	if err != nil {
		panic("programming error: default language tags invalid: " + err.Error())
	}
	return langs
}

// Labels returns the English labels in order.
func (l Languages) Labels() []string {
	labels := make([]string, len(l))
	for i, lang := range l {
		labels[i] = lang.Label
	}
	return labels
}
