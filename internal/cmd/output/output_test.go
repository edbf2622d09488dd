package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/plantid/pkg/plants"
)

func roseResult() *plants.Result {
	return &plants.Result{
		ScientificName: "Rosa indica",
		Description:    "A rose.",
		CommonNames: plants.CommonNames{
			English: []string{"rose", "indian rose"},
			Translations: plants.TranslationSet{
				"Hindi":   "गुलाब",
				"Tamil":   "ரோஜா",
				"Kannada": "ರೋಜ",
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" YAML ", FormatYAML, false},
		{"table", FormatTable, false},
		{"", "", false},
		{"wide", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestResultToTableData(t *testing.T) {
	data := ResultToTableData(roseResult(), plants.DefaultLanguages())

	assert.Equal(t, []string{"Property", "Value"}, data.Headers)
	assert.Equal(t, [][]string{
		{"Common Name", "Rose"},
		{"Scientific Name", "Rosa indica"},
		{"Description", "A rose."},
		{"Other Names", "indian rose"},
		{"Hindi", "गुलाब"},
		{"Tamil", "ரோஜா"},
		{"Kannada", "ರೋಜ"},
	}, data.Rows)
}

func TestResultToTableDataPlaceholders(t *testing.T) {
	result := &plants.Result{
		ScientificName: "Rosa indica",
		Description:    "No description available",
		CommonNames: plants.CommonNames{
			English:      []string{"Unknown"},
			Translations: plants.NewPlaceholderTranslations(plants.DefaultLanguages()),
		},
	}

	data := ResultToTableData(result, nil)

	assert.Equal(t, []string{"Common Name", "Unknown"}, data.Rows[0])
	// labels come back sorted when no languages are configured
	assert.Equal(t, []string{"Hindi", "N/A"}, data.Rows[3])
	assert.Equal(t, []string{"Kannada", "N/A"}, data.Rows[4])
	assert.Equal(t, []string{"Tamil", "N/A"}, data.Rows[5])
}

func TestFormatResultJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatResult(&buf, FormatJSON, roseResult(), plants.DefaultLanguages()))

	out := buf.String()
	assert.Contains(t, out, `"scientific_name": "Rosa indica"`)
	assert.Contains(t, out, `"English": [`)
	assert.Contains(t, out, `"Hindi": "गुलाब"`)
}

func TestFormatResultYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatResult(&buf, FormatYAML, roseResult(), plants.DefaultLanguages()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "scientific_name: Rosa indica\ndescription: A rose.\ncommon_names:\n"), out)

	english := strings.Index(out, "English:")
	hindi := strings.Index(out, "Hindi:")
	tamil := strings.Index(out, "Tamil:")
	kannada := strings.Index(out, "Kannada:")
	assert.True(t, english < hindi && hindi < tamil && tamil < kannada, out)
}

func TestFormatResultTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatResult(&buf, FormatTable, roseResult(), plants.DefaultLanguages()))

	out := buf.String()
	for _, want := range []string{"Rose", "Rosa indica", "A rose.", "indian rose", "ರೋಜ"} {
		assert.Contains(t, out, want)
	}
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, map[string]string{"status": "ok"}))
	assert.Contains(t, buf.String(), `"status": "ok"`)
}

func TestFormatError(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, "No plant identified")
	assert.Equal(t, "Error: No plant identified\n", buf.String())
}
