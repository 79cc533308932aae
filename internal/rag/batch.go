package rag

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// DefaultAnalysisColumn is the column appended to the output CSV.
const DefaultAnalysisColumn = "Strategic_Partnership_Analysis"

// saveEvery controls how often intermediate progress is written to disk.
const saveEvery = 10

// BatchOptions configures a CSV analysis batch.
type BatchOptions struct {
	InputPath  string
	OutputPath string
	ColumnName string
	Verbose    bool
}

// BatchResult summarizes a completed batch.
type BatchResult struct {
	Total    int
	Analyzed int
	Failed   int
}

// ProcessCSV reads the research report CSV, runs the partnership analysis for
// every company row, and writes the input columns plus the analysis column to
// the output file. Progress is saved every few rows so a crash loses little.
// A failed analysis records the failure in the row and continues.
func ProcessCSV(ctx context.Context, analyzer *Analyzer, opts BatchOptions) (*BatchResult, error) {
	if opts.ColumnName == "" {
		opts.ColumnName = DefaultAnalysisColumn
	}

	header, rows, err := readCSV(opts.InputPath)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Loaded %d companies from %s\n", len(rows), opts.InputPath)

	outHeader := append(append([]string{}, header...), opts.ColumnName)
	analyses := make([]string, len(rows))
	result := &BatchResult{Total: len(rows)}

	for i, row := range rows {
		name := columnValue(header, row, "Company_Name")
		if name == "" {
			name = fmt.Sprintf("row %d", i+1)
		}
		fmt.Printf("Analyzing company %d/%d: %s\n", i+1, len(rows), name)

		profile := buildCompanyProfile(header, row)
		analysis, err := analyzer.Analyze(ctx, profile)
		if err != nil {
			fmt.Printf("Warning: analysis failed for %s: %v\n", name, err)
			analyses[i] = fmt.Sprintf("Analysis failed: %v", err)
			result.Failed++
		} else {
			analyses[i] = analysis
			result.Analyzed++
		}

		if (i+1)%saveEvery == 0 {
			if err := writeCSV(opts.OutputPath, outHeader, rows, analyses, i+1); err != nil {
				fmt.Printf("Warning: could not save progress: %v\n", err)
			} else if opts.Verbose {
				fmt.Printf("[VERBOSE] Progress saved: %d/%d companies\n", i+1, len(rows))
			}
		}
	}

	if err := writeCSV(opts.OutputPath, outHeader, rows, analyses, len(rows)); err != nil {
		return result, fmt.Errorf("failed to write results: %w", err)
	}
	fmt.Printf("Analysis complete: %d analyzed, %d failed, results in %s\n",
		result.Analyzed, result.Failed, opts.OutputPath)
	return result, nil
}

// buildCompanyProfile assembles the retrieval query for one company row,
// leading with the detailed report because it carries most of the signal.
func buildCompanyProfile(header, row []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "COMPANY: %s\n\n", columnValue(header, row, "Company_Name"))
	fmt.Fprintf(&sb, "SERVICES OVERVIEW: %s\n\n", columnValue(header, row, "Services"))
	fmt.Fprintf(&sb, "DETAILED COMPANY REPORT:\n%s\n\n", columnValue(header, row, "Detailed_Report"))

	sb.WriteString("ADDITIONAL CONTEXT:\n")
	for i, col := range header {
		switch col {
		case "Company_Name", "Services", "Detailed_Report":
			continue
		}
		if i < len(row) && strings.TrimSpace(row[i]) != "" {
			fmt.Fprintf(&sb, "%s: %s\n", col, strings.TrimSpace(row[i]))
		}
	}
	return strings.TrimSpace(sb.String())
}

func columnValue(header, row []string, name string) string {
	for i, col := range header {
		if col == name && i < len(row) {
			return strings.TrimSpace(row[i])
		}
	}
	return ""
}

func readCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", path)
	}
	return records[0], records[1:], nil
}

// writeCSV writes the header plus the first n rows with their analyses.
func writeCSV(path string, header []string, rows [][]string, analyses []string, n int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	for i := 0; i < n && i < len(rows); i++ {
		out := append(append([]string{}, rows[i]...), analyses[i])
		if err := writer.Write(out); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
