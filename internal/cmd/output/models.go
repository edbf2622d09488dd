package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/verdantlabs/plantid/pkg/constants"
	"github.com/verdantlabs/plantid/pkg/plants"
)

// ResultToTableData lays a result out as Property/Value rows: the common name,
// scientific name, description, any further English names, then one row per
// target language in langs order.
func ResultToTableData(result *plants.Result, langs plants.Languages) Data {
	caser := cases.Title(language.English)

	rows := [][]string{
		{"Common Name", caser.String(result.PrimaryName())},
		{"Scientific Name", result.ScientificName},
		{"Description", result.Description},
	}
	if len(result.CommonNames.English) > 1 {
		rows = append(rows, []string{"Other Names", strings.Join(result.CommonNames.English[1:], ", ")})
	}
	for _, label := range translationLabels(result, langs) {
		rows = append(rows, []string{label, result.Translation(label)})
	}

	return Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}

// ResultToYAML keeps the JSON field order: English first, then the languages.
func ResultToYAML(result *plants.Result, langs plants.Languages) yaml.MapSlice {
	english := result.CommonNames.English
	if english == nil {
		english = []string{}
	}
	names := yaml.MapSlice{{Key: constants.EnglishLabel, Value: english}}
	for _, label := range translationLabels(result, langs) {
		names = append(names, yaml.MapItem{Key: label, Value: result.Translation(label)})
	}

	return yaml.MapSlice{
		{Key: "scientific_name", Value: result.ScientificName},
		{Key: "description", Value: result.Description},
		{Key: "common_names", Value: names},
	}
}

// translationLabels returns the configured labels, or the labels present in
// the result when none are configured.
func translationLabels(result *plants.Result, langs plants.Languages) []string {
	if len(langs) > 0 {
		return langs.Labels()
	}
	var labels []string
	for label := range result.CommonNames.Translations {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// FormatResult writes result to w in the given format.
func FormatResult(w io.Writer, format Format, result *plants.Result, langs plants.Languages) error {
	formatter := NewFormatter(format)

	var data any
	switch format {
	case FormatJSON:
		data = result
	case FormatYAML:
		data = ResultToYAML(result, langs)
	default:
		data = ResultToTableData(result, langs)
	}

	return formatter.Format(w, data)
}

// FormatError writes the error panel shown when an identification fails.
func FormatError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", message)
}
