package workflow

import (
	"context"
	"fmt"
)

// ResearchController processes exactly one pending registry record per
// invocation. The state machine re-invokes it until the cursor reaches the
// end; keeping each invocation to a single record bounds the context handed
// to the external agent and leaves iteration progress with the machine.
type ResearchController struct {
	agent   ReportAgent
	pacer   Pacer
	sink    Sink
	verbose bool
}

// NewResearchController creates a controller writing finalized records to sink.
func NewResearchController(agent ReportAgent, pacer Pacer, sink Sink, verbose bool) *ResearchController {
	return &ResearchController{
		agent:   agent,
		pacer:   pacer,
		sink:    sink,
		verbose: verbose,
	}
}

// Step researches the record at the cursor, attaches the report, commits the
// record to the sink, and advances the cursor. An agent failure is fatal to
// the phase and leaves the cursor on the failed record; a sink failure is
// logged and skipped so the in-memory report is not lost for later records.
func (r *ResearchController) Step(ctx context.Context, st *State) Status {
	if st.Cursor >= st.Registry.Size() {
		return allResearchComplete()
	}

	if err := r.pacer.Wait(ctx); err != nil {
		return researchError(fmt.Errorf("rate limit wait interrupted: %w", err))
	}

	record := st.Registry.At(st.Cursor)
	fmt.Printf("Researching company %d/%d: %s\n", st.Cursor+1, st.Registry.Size(), record.Name)

	report, err := r.agent.Research(ctx, record.Name)
	if err != nil {
		fmt.Printf("Warning: research agent failed for %s: %v\n", record.Name, err)
		return researchError(err)
	}

	// The report is attached verbatim; fact quality is the agent's problem.
	finalized := st.Registry.SetReport(st.Cursor, report)

	if err := r.sink.Append(ctx, finalized); err != nil {
		fmt.Printf("Warning: failed to persist %s: %v\n", finalized.Name, err)
	} else if r.verbose {
		fmt.Printf("[VERBOSE] Persisted row for %s\n", finalized.Name)
	}

	st.Cursor++
	return researchProgress()
}
