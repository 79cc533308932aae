package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anujpndt/bizdev-agent/internal/types"
	"github.com/anujpndt/bizdev-agent/internal/workflow"
)

func TestPrintRunConfiguration(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunConfiguration(types.NewRunConfiguration("renewable energy", "Germany", 10))

	out := buf.String()
	assert.Contains(t, out, "RUN CONFIGURATION")
	assert.Contains(t, out, "renewable energy")
	assert.Contains(t, out, "Germany")
	assert.Contains(t, out, "10")
}

func TestPrintCompany(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCompany(1, types.CompanyRecord{
		Name:     "Acme Corp",
		Location: "Berlin",
		Website:  "https://acme.example",
	})

	out := buf.String()
	assert.Contains(t, out, "COMPANY #1")
	assert.Contains(t, out, "Acme Corp")
	assert.Contains(t, out, "pending")
}

func TestPrintCompany_TruncatesLongServices(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	long := "solar panel design, installation, maintenance, grid integration and consulting"
	p.PrintCompany(2, types.CompanyRecord{Name: "Acme Corp", Services: long})

	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), "consulting")
}

func TestPrintCompanyList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCompanyList([]string{"A One", "B Two", "C Three", "D Four", "E Five", "F Six", "G Seven"})

	out := buf.String()
	assert.Contains(t, out, "Companies discovered: 7")
	assert.Contains(t, out, "A One")
	assert.Contains(t, out, "and 2 more companies")
	assert.NotContains(t, out, "G Seven")
}

func TestPrintCompanyList_EmptyPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCompanyList(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary(workflow.Summary{
		CompaniesFound:      3,
		CompaniesResearched: 2,
		Steps:               9,
	})

	out := buf.String()
	assert.Contains(t, out, "RUN SUMMARY")
	assert.Contains(t, out, "Companies found:      3")
	assert.Contains(t, out, "Companies researched: 2")
}

func TestPrintAnalysisPreview(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysisPreview("Acme Corp", "First line of the analysis.\nSecond line.")

	out := buf.String()
	assert.Contains(t, out, "PARTNERSHIP ANALYSIS")
	assert.Contains(t, out, "Acme Corp")
	assert.Contains(t, out, "First line of the analysis.")
	assert.NotContains(t, out, "Second line.")
}
