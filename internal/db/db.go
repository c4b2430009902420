package db

import (
	"database/sql"

	_ "github.com/lib/pq"
)

func Connect(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the tables this service writes to, if missing.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS generated_prompts (
			id BIGSERIAL PRIMARY KEY,
			task TEXT NOT NULL,
			inputs JSONB NOT NULL DEFAULT '[]',
			structure TEXT,
			generated_prompt TEXT NOT NULL,
			provider_used TEXT NOT NULL,
			model_used TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS status_checks (
			id UUID PRIMARY KEY,
			client_name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	return err
}
