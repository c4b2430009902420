package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"PORT", "LLM_API_KEY", "DEFAULT_PROVIDER", "PROVIDERS_FILE", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	require.Equal(t, 5432, cfg.DBPort)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "openai", cfg.DefaultProvider)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.Empty(t, cfg.LLMKey)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "metaprompt")
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_API_KEY", "sk-process")
	t.Setenv("DEFAULT_PROVIDER", "anthropic")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg := Load()

	require.Equal(t, "db.internal", cfg.DBHost)
	require.Equal(t, 6543, cfg.DBPort)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "sk-process", cfg.LLMKey)
	require.Equal(t, "anthropic", cfg.DefaultProvider)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)

	require.Equal(t,
		"host=db.internal port=6543 user=svc password=secret dbname=metaprompt sslmode=disable",
		cfg.ConnString(),
	)
}
