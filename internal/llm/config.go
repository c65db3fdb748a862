// Package llm provides the model client abstraction used for resume
// evaluation and pre-evaluation checks.
package llm

// ModelTier represents the complexity/capability level of a model.
type ModelTier string

const (
	// TierLite is for simple tasks: pre-evaluation checks, summaries.
	TierLite ModelTier = "lite"
	// TierStandard is for structured evaluation output.
	TierStandard ModelTier = "standard"
)

// Config holds the model configuration for the application.
type Config struct {
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini model configuration. Temperature is
// kept low so evaluation output stays consistent across runs.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: 0.1,
	}
}

// Model returns the model name for a tier, falling back to the standard tier
// when the requested one is not configured.
func (c *Config) Model(tier ModelTier) string {
	if m, ok := c.Models[tier]; ok {
		return m
	}
	return c.Models[TierStandard]
}

// WithModel returns a copy of the config with one tier's model replaced.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{
		Models:      make(map[ModelTier]string, len(c.Models)),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}
