// Package registry maintains the ordered, deduplicated collection of
// companies discovered during a run.
package registry

import (
	"fmt"

	"github.com/anujpndt/bizdev-agent/internal/types"
)

// ErrEmptyName is returned when a candidate has no usable name.
var ErrEmptyName = fmt.Errorf("company name is required")

// DuplicateError indicates a candidate whose name (trimmed, case-insensitive)
// already exists in the registry. It is not fatal; discovery logs and moves on.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("company %s already exists", e.Name)
}

// CapacityError indicates the registry already holds the target number of
// companies. Reaching capacity is a success condition, not a failure, but it
// is surfaced as an error so the register action can refuse the insert.
type CapacityError struct {
	Target int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("target reached: %d companies found", e.Target)
}

// Registry is an insertion-ordered set of company records. Names are unique
// under trimmed case-insensitive comparison, and the size never exceeds the
// target count (0 = unlimited). It is owned by a single run and is not safe
// for concurrent use.
type Registry struct {
	records []types.CompanyRecord
	names   map[string]bool
	target  int
}

// New creates a Registry capped at targetCount companies.
// types.UnlimitedTarget (0) removes the cap.
func New(targetCount int) *Registry {
	return &Registry{
		names:  make(map[string]bool),
		target: targetCount,
	}
}

// Add validates, deduplicates, and appends a candidate record.
// It returns the registry size after a successful insert, or ErrEmptyName,
// *DuplicateError, or *CapacityError when the candidate is rejected.
func (r *Registry) Add(candidate types.CompanyRecord) (int, error) {
	rec := candidate.Trimmed()
	if rec.Name == "" {
		return r.Size(), ErrEmptyName
	}

	if r.target > types.UnlimitedTarget && len(r.records) >= r.target {
		return r.Size(), &CapacityError{Target: r.target}
	}

	key := types.NormalizeName(rec.Name)
	if r.names[key] {
		return r.Size(), &DuplicateError{Name: rec.Name}
	}

	r.records = append(r.records, rec)
	r.names[key] = true
	return r.Size(), nil
}

// Size returns the number of registered companies.
func (r *Registry) Size() int {
	return len(r.records)
}

// At returns the record at the given insertion index.
func (r *Registry) At(index int) types.CompanyRecord {
	return r.records[index]
}

// SetReport attaches a detailed report to the record at index and returns the
// updated record. Each record is updated at most once, by the research phase.
func (r *Registry) SetReport(index int, report string) types.CompanyRecord {
	r.records[index].DetailedReport = report
	return r.records[index]
}

// IsComplete reports whether the registry has reached the target size.
// An unlimited registry never completes through this check; only the
// discovery attempt budget stops it.
func (r *Registry) IsComplete() bool {
	return r.target > types.UnlimitedTarget && len(r.records) >= r.target
}

// Names returns the registered company names in insertion order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.records))
	for _, rec := range r.records {
		names = append(names, rec.Name)
	}
	return names
}
