// Package export persists finalized company records to a CSV report file.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/anujpndt/bizdev-agent/internal/types"
)

// Header is the fixed column layout of the research report.
var Header = []string{
	"Company_Name",
	"Location",
	"Website",
	"Services",
	"Email",
	"Contact_Details",
	"Detailed_Report",
}

// CSVWriter appends one row per finalized company. Every append is flushed
// and synced before returning, so a crash loses at most the in-flight row.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the report file and writes the header.
func NewCSVWriter(path string) (*CSVWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file %s: %w", path, err)
	}

	w := &CSVWriter{
		file:   file,
		writer: csv.NewWriter(file),
	}

	if err := w.writer.Write(Header); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to flush CSV header: %w", err)
	}

	return w, nil
}

// Append writes one company row and flushes it to disk.
func (w *CSVWriter) Append(record types.CompanyRecord) error {
	row := []string{
		record.Name,
		record.Location,
		record.Website,
		record.Services,
		record.Email,
		record.ContactDetails,
		record.DetailedReport,
	}
	if err := w.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write CSV row for %s: %w", record.Name, err)
	}
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV row for %s: %w", record.Name, err)
	}
	return w.file.Sync()
}

// Close flushes any buffered data and closes the file.
func (w *CSVWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
