// Package llm provides the narrow generation interface the three engines
// call through, plus centralized model configuration. Provider specifics
// (transport, auth, streaming) stay behind the Client interface.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: short structured drafts
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: multimodal extraction, structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: full competitiveness diagnosis
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the recognized generation options: the API key, an optional
// base URL override, and the model per tier. It is passed explicitly into
// each engine's constructor; there is no process-wide singleton.
type Config struct {
	Provider Provider
	APIKey   string
	BaseURL  string // optional endpoint override (e.g. a regional proxy)
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig(apiKey string) *Config {
	return &Config{
		Provider: ProviderGemini,
		APIKey:   apiKey,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
		Models:   make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
