package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret          string
	AccessPasswordHash string // bcrypt hash of the single operator password
	CredentialSecret   string // key material for credential encryption at rest
}

type AIConfig struct {
	LLMProvider      string // "gemini" or "ollama"
	LLMModel         string
	OllamaBaseURL    string
	GoogleGeminiKey  string // env fallback; stored credential takes priority
	IndexThreadTopic string
	LLMTraceFilePath string
	SchemaDialects   []string // script targets generated each turn
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret:          getEnv("JWT_SECRET", ""),
			AccessPasswordHash: getEnv("APP_ACCESS_PASSWORD_HASH", ""),
			CredentialSecret:   getEnv("CREDENTIAL_ENCRYPTION_SECRET", ""),
		},
		Ai: AIConfig{
			LLMProvider:      getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:         getEnv("LLM_MODEL", "gemini-1.5-flash"),
			OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GoogleGeminiKey:  getEnv("GOOGLE_GEMINI_API_KEY", ""),
			IndexThreadTopic: getEnv("INDEX_THREAD_TOPIC_NAME", "INDEX_THREAD"),
			LLMTraceFilePath: getEnv("LLM_TRACE_FILE_PATH", "llm.trace.log"),
			SchemaDialects:   splitList(getEnv("SCHEMA_DIALECTS", "sql")),
		},
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
