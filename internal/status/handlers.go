package status

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Check struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

func CreateHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var body struct {
			ClientName string `json:"client_name"`
		}

		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(body.ClientName) == "" {
			http.Error(w, "client_name is required", http.StatusBadRequest)
			return
		}

		check := Check{
			ID:         uuid.NewString(),
			ClientName: body.ClientName,
			Timestamp:  time.Now().UTC(),
		}

		_, err := dbx.ExecContext(
			r.Context(),
			`INSERT INTO status_checks (id, client_name, created_at)
             VALUES ($1, $2, $3)`,
			check.ID, check.ClientName, check.Timestamp,
		)
		if err != nil {
			http.Error(w, "db insert error", http.StatusInternalServerError)
			return
		}

		if err := json.NewEncoder(w).Encode(check); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
			return
		}
	}
}

func ListHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		rows, err := dbx.QueryContext(
			r.Context(),
			`SELECT id, client_name, created_at
             FROM status_checks
             ORDER BY created_at DESC
             LIMIT 1000`,
		)
		if err != nil {
			http.Error(w, "db query error", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		checks := []Check{}

		for rows.Next() {
			var c Check
			if err := rows.Scan(&c.ID, &c.ClientName, &c.Timestamp); err != nil {
				http.Error(w, "db scan error", http.StatusInternalServerError)
				return
			}
			checks = append(checks, c)
		}

		if err := rows.Err(); err != nil {
			http.Error(w, "db rows error", http.StatusInternalServerError)
			return
		}

		if err := json.NewEncoder(w).Encode(checks); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
			return
		}
	}
}
