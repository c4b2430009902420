package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/rs/cors"

	"metaprompt-backend/internal/ai"
	"metaprompt-backend/internal/config"
	"metaprompt-backend/internal/db"
	"metaprompt-backend/internal/generate"
	"metaprompt-backend/internal/status"
)

// ----------------------
//        MAIN
// ----------------------

func main() {
	cfg := config.Load()

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		log.Fatal("❌ Failed to connect DB:", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		log.Fatal("❌ Failed to prepare schema:", err)
	}

	log.Println("✅ Connected to PostgreSQL!")

	aiClient := ai.New(cfg.LLMKey)
	if cfg.ProvidersFile != "" {
		if err := aiClient.LoadProviderFile(cfg.ProvidersFile); err != nil {
			log.Fatal("❌ Failed to load providers file:", err)
		}
		log.Println("✅ Provider overrides loaded from", cfg.ProvidersFile)
	}
	if cfg.LLMKey == "" {
		log.Println("⚠️ No LLM_API_KEY set - requests without api_key use the template fallback")
	}

	gen := generate.New(aiClient, database, cfg.DefaultProvider)
	statusCreate := status.CreateHandler(database)
	statusList := status.ListHandler(database)

	mux := http.NewServeMux()

	// Health endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API root
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "MetaPrompt Generator API"})
	})

	// ----- GENERATE API -----
	mux.HandleFunc("/api/generate-prompt", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			gen.GeneratePrompt(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// ----- STATUS API -----
	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			statusList(w, r)
		case http.MethodPost:
			statusCreate(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	handler := c.Handler(recoverMiddleware(mux))

	log.Println("🚀 API server is running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}

// recoverMiddleware turns any handler panic into an opaque 500 so internal
// faults never leak details to the caller.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s: %v", r.URL.Path, rec)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
