package workflow

import (
	"context"
	"fmt"
)

// node identifies a state machine node.
type node int

const (
	nodeStart node = iota
	nodeDiscovery
	nodeResearch
	nodeEnd
)

func (n node) String() string {
	switch n {
	case nodeStart:
		return "start"
	case nodeDiscovery:
		return "discovery"
	case nodeResearch:
		return "research"
	case nodeEnd:
		return "end"
	default:
		return "unknown"
	}
}

// DefaultMaxSteps bounds the total number of node transitions so an
// ambiguous status can never loop the machine forever.
const DefaultMaxSteps = 50

// Summary describes how a run ended.
type Summary struct {
	CompaniesFound      int
	CompaniesResearched int
	Steps               int
	LastStatus          Status
}

// Machine runs the Discovery -> Research -> End graph. Discovery runs to
// completion or exhaustion before any research begins; the two phases never
// interleave.
type Machine struct {
	discovery *DiscoveryController
	research  *ResearchController
	maxSteps  int
	verbose   bool
}

// NewMachine wires the two phase controllers into a state machine.
// A non-positive maxSteps falls back to DefaultMaxSteps.
func NewMachine(discovery *DiscoveryController, research *ResearchController, maxSteps int, verbose bool) *Machine {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Machine{
		discovery: discovery,
		research:  research,
		maxSteps:  maxSteps,
		verbose:   verbose,
	}
}

// Run executes the workflow over the given run state until it reaches the
// end node or exceeds the step ceiling. Errors inside a phase end the run
// gracefully with partial results; only the step ceiling is a hard error.
func (m *Machine) Run(ctx context.Context, st *State) (Summary, error) {
	current := nodeStart
	var last Status

	for steps := 0; steps < m.maxSteps; steps++ {
		if m.verbose {
			fmt.Printf("[VERBOSE] Workflow step %d: node=%s\n", steps, current)
		}

		switch current {
		case nodeStart:
			current = nodeDiscovery

		case nodeDiscovery:
			last = m.discovery.Run(ctx, st)
			current = m.next(last, st)

		case nodeResearch:
			last = m.research.Step(ctx, st)
			current = m.next(last, st)

		case nodeEnd:
			if last.IsError() {
				fmt.Printf("Workflow ended with error: %s\n", last)
			}
			return Summary{
				CompaniesFound:      st.Registry.Size(),
				CompaniesResearched: st.Cursor,
				Steps:               steps,
				LastStatus:          last,
			}, nil
		}
	}

	return Summary{
		CompaniesFound:      st.Registry.Size(),
		CompaniesResearched: st.Cursor,
		Steps:               m.maxSteps,
		LastStatus:          last,
	}, fmt.Errorf("workflow exceeded step ceiling of %d transitions", m.maxSteps)
}

// next evaluates the transition rules against the most recent status.
// A cursor at or past the registry length is immediately terminal,
// independent of the marker, so the end of research is never ambiguous.
func (m *Machine) next(last Status, st *State) node {
	if last.IsError() {
		return nodeEnd
	}

	switch last.Kind {
	case StatusDiscoveryComplete:
		if st.Registry.Size() > 0 {
			return nodeResearch
		}
		return nodeEnd

	case StatusResearchProgress:
		if st.Cursor < st.Registry.Size() {
			return nodeResearch
		}
		return nodeEnd

	case StatusAllResearchComplete:
		return nodeEnd
	}

	return nodeEnd
}
