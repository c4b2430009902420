package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Client talks to one of the supported chat-completion providers.
//
// Generate is total from the caller's point of view: any transport failure,
// error status or malformed envelope is logged and resolved to the
// deterministic fallback template instead of an error.
type Client struct {
	fallbackKey string
	httpClient  *http.Client
	providers   map[string]Provider
}

// New creates a provider client. fallbackKey is the process-wide API key used
// when a request carries no key of its own (BYOK); it may be empty.
func New(fallbackKey string) *Client {
	return &Client{
		fallbackKey: fallbackKey,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		providers:   defaultProviders(),
	}
}

// Generate sends the compiled prompt to the named provider and returns the
// generated text plus the provider and model tags actually used.
//
// Without a resolvable key it short-circuits to the fallback template with no
// network access at all.
func (c *Client) Generate(ctx context.Context, prompt, apiKey, provider, model string) (string, string, string) {
	key := apiKey
	if key == "" {
		key = c.fallbackKey
	}
	if key == "" {
		return Fallback(prompt), "fallback", "template"
	}

	cfg, ok := c.providers[provider]
	if !ok {
		provider = "openai"
		cfg = c.providers["openai"]
	}

	// "custom" is the frontend's sentinel for "no concrete model picked yet"
	if model != "" && model != "custom" {
		cfg.Model = model
	}

	var text string
	var err error
	switch provider {
	case "anthropic":
		text, err = c.generateAnthropic(ctx, prompt, key, cfg)
	default:
		text, err = c.generateOpenAI(ctx, prompt, key, cfg, provider == "openrouter")
	}
	if err != nil {
		log.Printf("%s API error: %v", provider, err)
		return Fallback(prompt), "fallback", cfg.Model
	}

	return text, provider, cfg.Model
}

// generateOpenAI covers both OpenAI and OpenRouter: the request and response
// envelopes are identical, OpenRouter just wants attribution headers.
func (c *Client) generateOpenAI(ctx context.Context, prompt, key string, cfg Provider, openrouter bool) (string, error) {
	payload := map[string]any{
		"model": cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": metapromptSystem},
			{"role": "user", "content": prompt},
		},
		"max_tokens":  2000,
		"temperature": 0.7,
	}

	raw, err := c.post(ctx, cfg.URL, payload, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+key)
		if openrouter {
			req.Header.Set("HTTP-Referer", "https://metaprompt.app")
			req.Header.Set("X-Title", "MetaPrompt Generator")
		}
	})
	if err != nil {
		return "", err
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}

	return out.Choices[0].Message.Content, nil
}

func (c *Client) generateAnthropic(ctx context.Context, prompt, key string, cfg Provider) (string, error) {
	payload := map[string]any{
		"model":      cfg.Model,
		"max_tokens": 2000,
		"system":     metapromptSystem,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	raw, err := c.post(ctx, cfg.URL, payload, func(req *http.Request) {
		req.Header.Set("x-api-key", key)
		req.Header.Set("anthropic-version", "2023-06-01")
	})
	if err != nil {
		return "", err
	}

	var out struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	if len(out.Content) == 0 {
		return "", fmt.Errorf("response contained no content blocks")
	}

	return out.Content[0].Text, nil
}

// post performs one bounded JSON request and returns the response body.
func (c *Client) post(ctx context.Context, url string, payload any, setHeaders func(*http.Request)) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	setHeaders(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}

	return raw, nil
}
