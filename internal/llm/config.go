package llm

// ModelTier represents the complexity level of a task.
type ModelTier string

const (
	// TierLite is for simple tasks: extraction, classification.
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: structured output, filtering.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: report writing, partnership analysis.
	TierAdvanced ModelTier = "advanced"
)

// Config maps task tiers to model names.
type Config struct {
	Models         map[ModelTier]string
	EmbeddingModel string
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		EmbeddingModel: "text-embedding-004",
	}
}

// GetModel returns the model name for a tier, falling back through standard
// and lite when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
