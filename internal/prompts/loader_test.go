package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AllEmbeddedPrompts(t *testing.T) {
	for _, tc := range []struct {
		file string
		key  string
	}{
		{"discovery.json", "extract_company"},
		{"research.json", "report"},
		{"analysis.json", "partnership"},
	} {
		prompt, err := Get(tc.file, tc.key)
		require.NoError(t, err, "%s/%s", tc.file, tc.key)
		assert.NotEmpty(t, prompt)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("research.json", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "report")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("missing.json", "report")
	})
}

func TestFormat(t *testing.T) {
	result := Format("Find {{.Sector}} companies in {{.Location}}.", map[string]string{
		"Sector":   "fintech",
		"Location": "Singapore",
	})
	assert.Equal(t, "Find fintech companies in Singapore.", result)
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	result := Format("Hello {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Name}}", result)
}

func TestPromptPlaceholdersPresent(t *testing.T) {
	discovery := MustGet("discovery.json", "extract_company")
	for _, ph := range []string{"{{.Sector}}", "{{.Location}}", "{{.KnownCompanies}}", "{{.SearchResults}}"} {
		assert.Contains(t, discovery, ph)
	}

	research := MustGet("research.json", "report")
	for _, ph := range []string{"{{.CompanyName}}", "{{.Sector}}", "{{.Sources}}"} {
		assert.Contains(t, research, ph)
	}

	analysis := MustGet("analysis.json", "partnership")
	for _, ph := range []string{"{{.Context}}", "{{.Question}}"} {
		assert.Contains(t, analysis, ph)
	}
}
