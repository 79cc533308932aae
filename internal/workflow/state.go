package workflow

import (
	"context"

	"github.com/anujpndt/bizdev-agent/internal/registry"
	"github.com/anujpndt/bizdev-agent/internal/types"
)

// SearchAgent is the external search-and-extract capability used by the
// discovery phase. Given a natural-language instruction it performs a
// bounded amount of searching, may register one company, and returns a
// terminal status text describing what happened.
type SearchAgent interface {
	Discover(ctx context.Context, instruction string) (string, error)
}

// ReportAgent is the external report-generation capability used by the
// research phase. Given a company name it returns a free-text report.
type ReportAgent interface {
	Research(ctx context.Context, companyName string) (string, error)
}

// Sink receives finalized company records one at a time. Each append must be
// durable on return; a run that crashes loses at most the in-flight record.
type Sink interface {
	Append(ctx context.Context, record types.CompanyRecord) error
}

// Pacer blocks until the next outbound search/LLM call may proceed.
type Pacer interface {
	Wait(ctx context.Context) error
}

// State is the run-scoped mutable state shared by the state machine and its
// controllers. The original kept this in module-level globals; here a single
// State is created per run and passed explicitly.
type State struct {
	Config   types.RunConfiguration
	Registry *registry.Registry

	// Cursor indexes the next record pending research. It is monotonically
	// non-decreasing and equals Registry.Size() when research is complete.
	Cursor int
}

// NewState creates the run state for a configuration, with an empty registry
// capped at the configured target count.
func NewState(cfg types.RunConfiguration) *State {
	return &State{
		Config:   cfg,
		Registry: registry.New(cfg.TargetCount),
	}
}
