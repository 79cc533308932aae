// Package types defines the shared data structures for the discovery and
// research workflow.
package types

import "strings"

// CompanyRecord holds everything collected about a single company.
// It is created during discovery and enriched exactly once during research,
// when the detailed report is attached.
type CompanyRecord struct {
	Name           string `json:"name"`
	Location       string `json:"location"`
	Website        string `json:"website"`
	Services       string `json:"services"`
	Email          string `json:"email"`
	ContactDetails string `json:"contact_details"`
	DetailedReport string `json:"detailed_report"`
}

// NormalizeName returns the canonical form of a company name used for
// deduplication: trimmed and lowercased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Trimmed returns a copy of the record with leading/trailing whitespace
// removed from every field.
func (c CompanyRecord) Trimmed() CompanyRecord {
	return CompanyRecord{
		Name:           strings.TrimSpace(c.Name),
		Location:       strings.TrimSpace(c.Location),
		Website:        strings.TrimSpace(c.Website),
		Services:       strings.TrimSpace(c.Services),
		Email:          strings.TrimSpace(c.Email),
		ContactDetails: strings.TrimSpace(c.ContactDetails),
		DetailedReport: c.DetailedReport,
	}
}
