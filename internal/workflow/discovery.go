package workflow

import (
	"context"
	"fmt"
	"strings"
)

// DefaultMaxAttempts bounds the discovery loop. The external agent is not
// guaranteed to ever signal completion, so the budget is the safety property
// that makes discovery always terminate.
const DefaultMaxAttempts = 10

// DiscoveryController drives repeated single-company discovery attempts
// until the registry reaches its target or the attempt budget runs out.
type DiscoveryController struct {
	agent       SearchAgent
	pacer       Pacer
	maxAttempts int
	verbose     bool
}

// NewDiscoveryController creates a controller with the given attempt budget.
// A non-positive budget falls back to DefaultMaxAttempts.
func NewDiscoveryController(agent SearchAgent, pacer Pacer, maxAttempts int, verbose bool) *DiscoveryController {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &DiscoveryController{
		agent:       agent,
		pacer:       pacer,
		maxAttempts: maxAttempts,
		verbose:     verbose,
	}
}

// Run executes the discovery phase to completion or exhaustion. Partial
// results are not a failure: the phase reports StatusDiscoveryComplete
// whether or not the target was fully reached. Only an agent error is fatal.
func (d *DiscoveryController) Run(ctx context.Context, st *State) Status {
	if st.Registry.IsComplete() {
		fmt.Printf("Discovery already complete: %d companies registered\n", st.Registry.Size())
		return discoveryComplete()
	}

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if st.Registry.IsComplete() {
			break
		}

		fmt.Printf("Discovery attempt %d/%d (registered: %d, target: %s)\n",
			attempt, d.maxAttempts, st.Registry.Size(), st.Config.TargetDisplay())

		if err := d.pacer.Wait(ctx); err != nil {
			return discoveryError(fmt.Errorf("rate limit wait interrupted: %w", err))
		}

		statusText, err := d.agent.Discover(ctx, d.instruction(st))
		if err != nil {
			fmt.Printf("Warning: discovery agent failed: %v\n", err)
			return discoveryError(err)
		}

		if d.verbose {
			fmt.Printf("[VERBOSE] Discovery agent: %s\n", statusText)
		}

		lower := strings.ToLower(statusText)
		switch {
		case strings.Contains(lower, "target reached") || strings.Contains(lower, "success"):
			fmt.Printf("Discovery target reached after %d attempts\n", attempt)
			return discoveryComplete()
		case strings.Contains(lower, "already exists"):
			fmt.Printf("Duplicate company reported, continuing...\n")
		}
	}

	fmt.Printf("Discovery finished with %d companies (target: %s)\n",
		st.Registry.Size(), st.Config.TargetDisplay())
	return discoveryComplete()
}

// instruction builds the per-attempt agent instruction. Listing the known
// names keeps the agent from re-proposing companies the registry would
// reject anyway.
func (d *DiscoveryController) instruction(st *State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Find one %s company in %s that is not already in the list. ",
		st.Config.Sector, st.Config.Location)
	sb.WriteString("Use the search tool to find candidates and register exactly one new company. ")
	sb.WriteString("Stop if you cannot find more unique companies.")
	if names := st.Registry.Names(); len(names) > 0 {
		fmt.Fprintf(&sb, " Already listed: %s.", strings.Join(names, ", "))
	}
	return sb.String()
}
