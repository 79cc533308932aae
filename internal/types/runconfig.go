package types

import (
	"fmt"
	"strings"
)

// UnlimitedTarget is the sentinel target count meaning "find as many
// companies as possible"; the discovery attempt budget is then the only
// stopping condition.
const UnlimitedTarget = 0

// RunConfiguration captures the user's research request. It is derived once
// before the workflow starts and never mutated afterwards.
type RunConfiguration struct {
	Sector      string `json:"sector" validate:"required"`
	Location    string `json:"location" validate:"required"`
	TargetCount int    `json:"target_count" validate:"gte=0"`
	SearchQuery string `json:"search_query"`
}

// NewRunConfiguration builds a RunConfiguration and derives its search query.
// A targetCount of UnlimitedTarget (0) removes the registry cap.
func NewRunConfiguration(sector, location string, targetCount int) RunConfiguration {
	cfg := RunConfiguration{
		Sector:      strings.TrimSpace(sector),
		Location:    strings.TrimSpace(location),
		TargetCount: targetCount,
	}
	cfg.SearchQuery = deriveSearchQuery(cfg.Sector, cfg.Location)
	return cfg
}

// Unlimited reports whether the run has no target cap.
func (c RunConfiguration) Unlimited() bool {
	return c.TargetCount <= UnlimitedTarget
}

// TargetDisplay returns a human-readable form of the target count.
func (c RunConfiguration) TargetDisplay() string {
	if c.Unlimited() {
		return "unlimited"
	}
	return fmt.Sprintf("%d", c.TargetCount)
}

func deriveSearchQuery(sector, location string) string {
	if strings.EqualFold(location, "global") {
		return fmt.Sprintf("top %s companies worldwide", sector)
	}
	return fmt.Sprintf("major %s companies in %s", sector, location)
}
