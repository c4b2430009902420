package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"
)

// GenerationRecord is what we store with every generated prompt.
type GenerationRecord struct {
	Task            string
	Inputs          []string
	Structure       string
	GeneratedPrompt string
	ProviderUsed    string
	ModelUsed       string
}

// LogGeneration inserts one analytics row. Best-effort: a failed insert never
// breaks the response path, and a nil db is tolerated.
func LogGeneration(ctx context.Context, db *sql.DB, rec GenerationRecord) {
	if db == nil {
		return
	}

	inputs := rec.Inputs
	if inputs == nil {
		inputs = []string{}
	}
	b, err := json.Marshal(inputs)
	if err != nil {
		// if inputs can't marshal, don't break core flow
		return
	}

	_, _ = db.ExecContext(ctx, `
		INSERT INTO generated_prompts (
			task, inputs, structure,
			generated_prompt, provider_used, model_used,
			created_at
		)
		VALUES ($1, $2::jsonb, $3, $4, $5, $6, $7)
	`, rec.Task, string(b), nullIfEmpty(rec.Structure),
		rec.GeneratedPrompt, rec.ProviderUsed, rec.ModelUsed,
		time.Now().UTC(),
	)
}

func nullIfEmpty(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
