package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	Port string

	// Process-wide provider key, used when a request carries no api_key (BYOK).
	LLMKey          string
	DefaultProvider string
	ProvidersFile   string

	CORSOrigins []string
}

func Load() *Config {

	portStr := os.Getenv("DB_PORT")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 5432 // fallback
	}

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	provider := os.Getenv("DEFAULT_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "*"
	}

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     port,
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		Port: httpPort,

		LLMKey:          os.Getenv("LLM_API_KEY"),
		DefaultProvider: provider,
		ProvidersFile:   os.Getenv("PROVIDERS_FILE"),

		CORSOrigins: strings.Split(origins, ","),
	}
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
