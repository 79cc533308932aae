package rag

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInputCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	file, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(file)
	require.NoError(t, w.WriteAll(rows))
	require.NoError(t, file.Close())
	return path
}

func newBatchAnalyzer(t *testing.T, client *fakeLLM) *Analyzer {
	t.Helper()
	analyzer := NewAnalyzer(client, fakeEmbedder{}, NewMemoryStore(), nopPacer{}, false)
	_, err := analyzer.IndexCorpus(context.Background(), []Document{
		{Path: "a.md", Content: "solar panel manufacturing capabilities"},
	})
	require.NoError(t, err)
	return analyzer
}

func TestProcessCSV_AppendsAnalysisColumn(t *testing.T) {
	client := &fakeLLM{response: "Partnership score: 8/10"}
	analyzer := newBatchAnalyzer(t, client)

	input := writeInputCSV(t, [][]string{
		{"Company_Name", "Location", "Services", "Detailed_Report"},
		{"Acme Corp", "Berlin", "solar installs", "Full report about Acme."},
		{"Beta LLC", "Madrid", "wind farms", "Full report about Beta."},
	})
	output := filepath.Join(t.TempDir(), "output.csv")

	result, err := ProcessCSV(context.Background(), analyzer, BatchOptions{
		InputPath:  input,
		OutputPath: output,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Analyzed)
	assert.Equal(t, 0, result.Failed)

	file, err := os.Open(output)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Company_Name", "Location", "Services", "Detailed_Report", DefaultAnalysisColumn}, rows[0])
	assert.Equal(t, "Partnership score: 8/10", rows[1][4])
	assert.Equal(t, "Beta LLC", rows[2][0])
}

func TestProcessCSV_ProfilePrioritizesDetailedReport(t *testing.T) {
	client := &fakeLLM{response: "ok"}
	analyzer := newBatchAnalyzer(t, client)

	input := writeInputCSV(t, [][]string{
		{"Company_Name", "Location", "Services", "Detailed_Report"},
		{"Acme Corp", "Berlin", "solar installs", "Deep dive into Acme operations."},
	})

	_, err := ProcessCSV(context.Background(), analyzer, BatchOptions{
		InputPath:  input,
		OutputPath: filepath.Join(t.TempDir(), "out.csv"),
	})
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "COMPANY: Acme Corp")
	assert.Contains(t, client.prompts[0], "Deep dive into Acme operations.")
	assert.Contains(t, client.prompts[0], "Location: Berlin")
}

func TestProcessCSV_EmptyInput(t *testing.T) {
	client := &fakeLLM{response: "ok"}
	analyzer := newBatchAnalyzer(t, client)

	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := ProcessCSV(context.Background(), analyzer, BatchOptions{
		InputPath:  path,
		OutputPath: filepath.Join(t.TempDir(), "out.csv"),
	})
	assert.Error(t, err)
}

func TestBuildCompanyProfile(t *testing.T) {
	header := []string{"Company_Name", "Location", "Website", "Services", "Detailed_Report"}
	row := []string{"Acme Corp", "Berlin", "https://acme.example", "solar installs", "The report."}

	profile := buildCompanyProfile(header, row)
	assert.Contains(t, profile, "COMPANY: Acme Corp")
	assert.Contains(t, profile, "SERVICES OVERVIEW: solar installs")
	assert.Contains(t, profile, "DETAILED COMPANY REPORT:\nThe report.")
	assert.Contains(t, profile, "Location: Berlin")
	assert.Contains(t, profile, "Website: https://acme.example")
}
