// Package workflow orchestrates the discovery and research phases through a
// small state machine with explicit termination conditions.
package workflow

import "fmt"

// StatusKind identifies the outcome a phase controller reports back to the
// state machine. The original system exchanged string sentinels matched by
// substring; this closed set removes that ambiguity.
type StatusKind int

// Phase outcome kinds.
const (
	StatusDiscoveryComplete StatusKind = iota
	StatusDiscoveryError
	StatusResearchProgress
	StatusAllResearchComplete
	StatusResearchError
)

// Status is the marker a controller emits after each invocation. Err is set
// only for the error kinds.
type Status struct {
	Kind StatusKind
	Err  error
}

// IsError reports whether the status is fatal to the current phase.
func (s Status) IsError() bool {
	return s.Kind == StatusDiscoveryError || s.Kind == StatusResearchError
}

func (s Status) String() string {
	switch s.Kind {
	case StatusDiscoveryComplete:
		return "DISCOVERY_COMPLETE"
	case StatusDiscoveryError:
		return fmt.Sprintf("DISCOVERY_ERROR: %v", s.Err)
	case StatusResearchProgress:
		return "RESEARCH_PROGRESS"
	case StatusAllResearchComplete:
		return "ALL_RESEARCH_COMPLETE"
	case StatusResearchError:
		return fmt.Sprintf("RESEARCH_ERROR: %v", s.Err)
	default:
		return fmt.Sprintf("UNKNOWN_STATUS(%d)", int(s.Kind))
	}
}

func discoveryComplete() Status {
	return Status{Kind: StatusDiscoveryComplete}
}

func discoveryError(err error) Status {
	return Status{Kind: StatusDiscoveryError, Err: err}
}

func researchProgress() Status {
	return Status{Kind: StatusResearchProgress}
}

func allResearchComplete() Status {
	return Status{Kind: StatusAllResearchComplete}
}

func researchError(err error) Status {
	return Status{Kind: StatusResearchError, Err: err}
}
