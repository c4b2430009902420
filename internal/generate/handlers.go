package generate

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"metaprompt-backend/internal/ai"
	"metaprompt-backend/internal/analytics"
)

// Handler serves prompt generation requests.
type Handler struct {
	AI              *ai.Client
	DB              *sql.DB
	DefaultProvider string
}

func New(aiClient *ai.Client, db *sql.DB, defaultProvider string) *Handler {
	return &Handler{
		AI:              aiClient,
		DB:              db,
		DefaultProvider: defaultProvider,
	}
}

type promptRequest struct {
	Task      string   `json:"task"`
	Inputs    []string `json:"inputs"`
	Structure string   `json:"structure"`
	APIKey    string   `json:"api_key"` // BYOK - Bring Your Own Key
	Provider  string   `json:"provider"`
	Model     string   `json:"model"`
}

type promptResponse struct {
	Prompt       string `json:"prompt"`
	TokensUsed   *int   `json:"tokens_used,omitempty"`
	ProviderUsed string `json:"provider_used"`
	ModelUsed    string `json:"model_used"`
}

// GeneratePrompt handles POST /api/generate-prompt: validate, compile the
// generation prompt, call the provider (or fall back), log, respond.
func (h *Handler) GeneratePrompt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var body promptRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if len(strings.TrimSpace(body.Task)) < 10 {
		http.Error(w, "task description must be at least 10 characters", http.StatusBadRequest)
		return
	}

	provider := body.Provider
	if provider == "" {
		provider = h.DefaultProvider
	}

	generationPrompt := ai.Compile(body.Task, body.Inputs, body.Structure)

	text, providerUsed, modelUsed := h.AI.Generate(
		r.Context(),
		generationPrompt,
		body.APIKey,
		provider,
		body.Model,
	)

	analytics.LogGeneration(r.Context(), h.DB, analytics.GenerationRecord{
		Task:            body.Task,
		Inputs:          body.Inputs,
		Structure:       body.Structure,
		GeneratedPrompt: text,
		ProviderUsed:    providerUsed,
		ModelUsed:       modelUsed,
	})

	resp := promptResponse{
		Prompt:       text,
		ProviderUsed: providerUsed,
		ModelUsed:    modelUsed,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
		return
	}
}
