package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPrompt = "<Task>\nSummarize quarterly numbers for the board.\n</Task>\n\n<Inputs>\n{$REPORT}\n</Inputs>"

// capturedRequest records what the fake provider received.
type capturedRequest struct {
	auth    string
	apiKey  string
	version string
	referer string
	title   string
	body    map[string]any
}

func newFakeProvider(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()

	got := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.auth = r.Header.Get("Authorization")
		got.apiKey = r.Header.Get("x-api-key")
		got.version = r.Header.Get("anthropic-version")
		got.referer = r.Header.Get("HTTP-Referer")
		got.title = r.Header.Get("X-Title")

		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got.body)

		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	return srv, got
}

func TestGenerateWithoutAnyKeyUsesFallback(t *testing.T) {
	c := New("")

	text, provider, model := c.Generate(context.Background(), testPrompt, "", "openai", "")

	require.Equal(t, "fallback", provider)
	require.Equal(t, "template", model)
	require.Contains(t, text, "BEGIN TASK")
	require.Contains(t, text, "{$REPORT}")
}

func TestGenerateOpenAISuccess(t *testing.T) {
	srv, got := newFakeProvider(t, http.StatusOK,
		`{"choices":[{"message":{"content":"generated template"}}]}`)

	c := New("")
	c.providers["openai"] = Provider{URL: srv.URL, Model: "gpt-4o-mini"}

	text, provider, model := c.Generate(context.Background(), testPrompt, "sk-caller", "openai", "")

	require.Equal(t, "generated template", text)
	require.Equal(t, "openai", provider)
	require.Equal(t, "gpt-4o-mini", model)

	require.Equal(t, "Bearer sk-caller", got.auth)
	require.Equal(t, "gpt-4o-mini", got.body["model"])
	require.EqualValues(t, 2000, got.body["max_tokens"])

	messages, ok := got.body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
}

func TestGenerateAnthropicSuccess(t *testing.T) {
	srv, got := newFakeProvider(t, http.StatusOK,
		`{"content":[{"type":"text","text":"claude template"}]}`)

	c := New("process-key")
	c.providers["anthropic"] = Provider{URL: srv.URL, Model: "claude-3-haiku-20240307"}

	text, provider, model := c.Generate(context.Background(), testPrompt, "", "anthropic", "")

	require.Equal(t, "claude template", text)
	require.Equal(t, "anthropic", provider)
	require.Equal(t, "claude-3-haiku-20240307", model)

	// process-wide key resolved since the caller sent none
	require.Equal(t, "process-key", got.apiKey)
	require.Equal(t, "2023-06-01", got.version)
	require.Equal(t, metapromptSystem, got.body["system"])
}

func TestGenerateOpenRouterSendsAttributionHeaders(t *testing.T) {
	srv, got := newFakeProvider(t, http.StatusOK,
		`{"choices":[{"message":{"content":"routed"}}]}`)

	c := New("")
	c.providers["openrouter"] = Provider{URL: srv.URL, Model: "openai/gpt-4o-mini"}

	_, provider, _ := c.Generate(context.Background(), testPrompt, "or-key", "openrouter", "")

	require.Equal(t, "openrouter", provider)
	require.Equal(t, "https://metaprompt.app", got.referer)
	require.Equal(t, "MetaPrompt Generator", got.title)
}

func TestGenerateModelOverride(t *testing.T) {
	srv, got := newFakeProvider(t, http.StatusOK,
		`{"choices":[{"message":{"content":"ok"}}]}`)

	c := New("")
	c.providers["openai"] = Provider{URL: srv.URL, Model: "gpt-4o-mini"}

	_, _, model := c.Generate(context.Background(), testPrompt, "k", "openai", "gpt-4o")
	require.Equal(t, "gpt-4o", model)
	require.Equal(t, "gpt-4o", got.body["model"])

	// "custom" is a sentinel, not a model name
	_, _, model = c.Generate(context.Background(), testPrompt, "k", "openai", "custom")
	require.Equal(t, "gpt-4o-mini", model)
}

func TestGenerateUnknownProviderDefaultsToOpenAI(t *testing.T) {
	srv, _ := newFakeProvider(t, http.StatusOK,
		`{"choices":[{"message":{"content":"ok"}}]}`)

	c := New("")
	c.providers["openai"] = Provider{URL: srv.URL, Model: "gpt-4o-mini"}

	_, provider, model := c.Generate(context.Background(), testPrompt, "k", "no-such-provider", "")

	require.Equal(t, "openai", provider)
	require.Equal(t, "gpt-4o-mini", model)
}

func TestGenerateErrorStatusFallsBack(t *testing.T) {
	srv, _ := newFakeProvider(t, http.StatusInternalServerError, `{"error":"boom"}`)

	c := New("")
	c.providers["openai"] = Provider{URL: srv.URL, Model: "gpt-4o-mini"}

	text, provider, model := c.Generate(context.Background(), testPrompt, "k", "openai", "")

	require.Equal(t, "fallback", provider)
	require.Equal(t, "gpt-4o-mini", model)
	require.Contains(t, text, "{$REPORT}")
	require.Contains(t, text, "BEGIN TASK")
}

func TestGenerateBadEnvelopeFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		response string
	}{
		{"openai empty choices", "openai", `{"choices":[]}`},
		{"openai not json", "openai", `nope`},
		{"anthropic empty content", "anthropic", `{"content":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newFakeProvider(t, http.StatusOK, tt.response)

			c := New("")
			c.providers[tt.provider] = Provider{URL: srv.URL, Model: "m"}

			text, provider, _ := c.Generate(context.Background(), testPrompt, "k", tt.provider, "")

			require.Equal(t, "fallback", provider)
			require.Contains(t, text, "BEGIN TASK")
		})
	}
}

func TestGenerateUnreachableProviderFallsBack(t *testing.T) {
	c := New("")
	c.providers["openai"] = Provider{URL: "http://127.0.0.1:1", Model: "gpt-4o-mini"}

	text, provider, _ := c.Generate(context.Background(), testPrompt, "k", "openai", "")

	require.Equal(t, "fallback", provider)
	require.Contains(t, text, "BEGIN TASK")
}
