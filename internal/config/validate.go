package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if strings.TrimSpace(c.Model.CRFPath) == "" {
		return fmt.Errorf("model.crf_path is required")
	}
	if c.Features.WindowSize < 0 {
		return fmt.Errorf("features.window_size must be >= 0 (got %d)", c.Features.WindowSize)
	}
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	if strings.TrimSpace(l.APIKey) == "" {
		return fmt.Errorf("api_key is required")
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.Temperature < 0 || l.Temperature > 1 {
		return fmt.Errorf("temperature must be in [0, 1] (got %v)", l.Temperature)
	}
	return nil
}
