package ai

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Provider is one upstream chat-completion endpoint and its default model.
type Provider struct {
	URL   string `yaml:"url"`
	Model string `yaml:"model"`
}

func defaultProviders() map[string]Provider {
	return map[string]Provider{
		"openai": {
			URL:   "https://api.openai.com/v1/chat/completions",
			Model: "gpt-4o-mini",
		},
		"anthropic": {
			URL:   "https://api.anthropic.com/v1/messages",
			Model: "claude-3-haiku-20240307",
		},
		"openrouter": {
			URL:   "https://openrouter.ai/api/v1/chat/completions",
			Model: "openai/gpt-4o-mini",
		},
	}
}

// LoadProviderFile merges endpoint/model overrides from a YAML file into the
// client's provider table. Lets a deployment point a provider kind at a
// compatible gateway without a rebuild.
func (c *Client) LoadProviderFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	overrides := map[string]Provider{}
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	for name, p := range overrides {
		base := c.providers[name]
		if p.URL != "" {
			base.URL = p.URL
		}
		if p.Model != "" {
			base.Model = p.Model
		}
		c.providers[name] = base
	}
	return nil
}
