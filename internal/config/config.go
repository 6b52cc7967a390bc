// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Session   SessionConfig
	LLM       LLMConfig
	Documents DocumentConfig
	LogLevel  string
}

type ServerConfig struct {
	Port        string
	CorsOrigins []string
}

type SessionConfig struct {
	Store         string // "memory", "redis" or "file"
	RedisURL      string
	Dir           string
	TTL           time.Duration
	IdleTTL       time.Duration
	SweepInterval time.Duration
	EncryptionKey string
	FallbackKeys  string
}

type LLMConfig struct {
	Provider      string // "gemini", "ollama" or "memory"
	GeminiAPIKey  string
	GeminiModel   string
	OllamaBaseURL string
	OllamaModel   string
	Timeout       time.Duration
	PromptsFile   string
}

type DocumentConfig struct {
	Store       string // "memory", "loam" or "mongo"
	ArticleID   string
	ArticleFile string
	Dir         string
	MongoURI    string
	Database    string
	Collection  string
}

// Load reads the given .env files (".env" when none) and then the environment.
// Missing .env files are not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("SCRIBE_PORT", "8080"),
			CorsOrigins: splitList(getEnv("SCRIBE_CORS_ORIGINS", "*")),
		},
		Session: SessionConfig{
			Store:         getEnv("SESSION_STORE", "memory"),
			RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
			Dir:           getEnv("SESSION_DIR", ".scribe/sessions"),
			TTL:           getEnvAsDuration("SESSION_TTL", 0),
			IdleTTL:       getEnvAsDuration("SESSION_IDLE_TTL", 0),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", time.Minute),
			EncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", ""),
			FallbackKeys:  getEnv("SESSION_ENCRYPTION_FALLBACK_KEYS", ""),
		},
		LLM: LLMConfig{
			Provider:      getEnv("LLM_PROVIDER", "gemini"),
			GeminiAPIKey:  getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.1"),
			Timeout:       getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
			PromptsFile:   getEnv("SCRIBE_PROMPTS_FILE", ""),
		},
		Documents: DocumentConfig{
			Store:       getEnv("DOCUMENT_STORE", "memory"),
			ArticleID:   getEnv("ARTICLE_ID", ""),
			ArticleFile: getEnv("ARTICLE_FILE", ""),
			Dir:         getEnv("ARTICLES_DIR", "articles"),
			MongoURI:    getEnv("MONGO_URI", ""),
			Database:    getEnv("DATABASE_NAME", ""),
			Collection:  getEnv("COLLECTION_NAME", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error

	switch c.Session.Store {
	case "memory", "file":
	case "redis":
		if c.Session.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis session store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store))
	}

	switch c.LLM.Provider {
	case "memory", "ollama":
	case "gemini":
		if c.LLM.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GOOGLE_GEMINI_API_KEY is required for the gemini provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider))
	}

	switch c.Documents.Store {
	case "memory", "loam":
	case "mongo":
		if c.Documents.MongoURI == "" || c.Documents.Database == "" || c.Documents.Collection == "" {
			errs = append(errs, errors.New("MONGO_URI, DATABASE_NAME and COLLECTION_NAME are required for the mongo document store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DOCUMENT_STORE %q", c.Documents.Store))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(getEnv(key, ""))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
