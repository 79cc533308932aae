// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/anujpndt/bizdev-agent/internal/types"
	"github.com/anujpndt/bizdev-agent/internal/workflow"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunConfiguration outputs the resolved run parameters before the workflow starts.
func (p *Printer) PrintRunConfiguration(cfg types.RunConfiguration) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Sector:    %s\n", cfg.Sector))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", cfg.Location))
	sb.WriteString(fmt.Sprintf("Target:    %s\n", cfg.TargetDisplay()))
	sb.WriteString(fmt.Sprintf("Query:     %s", cfg.SearchQuery))
	p.printBox("RUN CONFIGURATION", sb.String())
}

// PrintCompany outputs one discovered company record.
func (p *Printer) PrintCompany(index int, record types.CompanyRecord) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", record.Name))
	if record.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", record.Location))
	}
	if record.Website != "" {
		sb.WriteString(fmt.Sprintf("Website:   %s\n", record.Website))
	}
	if record.Services != "" {
		services := record.Services
		if len(services) > 50 {
			services = services[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("Services:  %s\n", services))
	}
	if record.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:     %s\n", record.Email))
	}
	if record.DetailedReport != "" {
		sb.WriteString(fmt.Sprintf("Report:    %d characters", len(record.DetailedReport)))
	} else {
		sb.WriteString("Report:    pending")
	}
	p.printBox(fmt.Sprintf("COMPANY #%d", index), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCompanyList outputs the names currently in the registry.
func (p *Printer) PrintCompanyList(names []string) {
	if len(names) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Companies discovered: %d\n\n", len(names)))

	count := min(len(names), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, names[i]))
	}
	if len(names) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more companies", len(names)-maxItemsToShow))
	}

	p.printBox("DISCOVERED COMPANIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs the final workflow outcome.
func (p *Printer) PrintRunSummary(summary workflow.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Companies found:      %d\n", summary.CompaniesFound))
	sb.WriteString(fmt.Sprintf("Companies researched: %d\n", summary.CompaniesResearched))
	sb.WriteString(fmt.Sprintf("Workflow steps:       %d\n", summary.Steps))
	sb.WriteString(fmt.Sprintf("Final status:         %s", summary.LastStatus))
	p.printBox("RUN SUMMARY", sb.String())
}

// PrintAnalysisPreview outputs the opening of a partnership analysis.
func (p *Printer) PrintAnalysisPreview(companyName, analysis string) {
	preview := analysis
	if idx := strings.IndexByte(preview, '\n'); idx > 0 {
		preview = preview[:idx]
	}
	if len(preview) > 50 {
		preview = preview[:47] + "..."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:   %s\n", companyName))
	sb.WriteString(fmt.Sprintf("Length:    %d characters\n", len(analysis)))
	sb.WriteString(fmt.Sprintf("Preview:   %s", preview))
	p.printBox("PARTNERSHIP ANALYSIS", sb.String())
}
