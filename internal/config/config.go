// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	Environment   string
	AllowedOrigin string
	DatabasePath  string

	JWTSecretKey     string
	JWTExpiryMinutes int

	// Completion providers, in fallback priority order: Groq, then
	// HuggingFace, then a local Ollama server. An empty key/URL means
	// the provider is not configured and is skipped without a call.
	GroqAPIKey           string
	GroqModel            string
	GroqVisionModel      string
	HuggingFaceAPIKey    string
	HuggingFaceModel     string
	OllamaBaseURL        string
	OllamaModel          string
	OllamaEmbeddingModel string

	AITemperature float32
	AIMaxTokens   int

	// EmbeddingModel must match the model the persisted index was built
	// with; mixing embedding spaces breaks similarity scores silently.
	EmbeddingModel    string
	KnowledgeBasePath string

	RateLimitPerMinute int
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("GO_ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8000"),
		Environment:   env,
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		DatabasePath:  getEnv("DATABASE_PATH", "medbridge.db"),

		JWTSecretKey:     getEnv("JWT_SECRET_KEY", ""),
		JWTExpiryMinutes: getEnvAsInt("JWT_EXPIRY_MINUTES", 10080), // 7 days

		GroqAPIKey:           getEnv("GROQ_API_KEY", ""),
		GroqModel:            getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqVisionModel:      getEnv("GROQ_VISION_MODEL", "llama-3.2-11b-vision-preview"),
		HuggingFaceAPIKey:    getEnv("HUGGINGFACE_API_KEY", ""),
		HuggingFaceModel:     getEnv("HUGGINGFACE_MODEL", "meta-llama/Meta-Llama-3-8B-Instruct"),
		OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", ""),
		OllamaModel:          getEnv("OLLAMA_MODEL", "llama3"),
		OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm:l6-v2"),

		AITemperature: getEnvAsFloat("AI_TEMPERATURE", 0.3),
		AIMaxTokens:   getEnvAsInt("AI_MAX_TOKENS", 1000),

		EmbeddingModel:    getEnv("EMBEDDING_MODEL", "sentence-transformers/all-MiniLM-L6-v2"),
		KnowledgeBasePath: getEnv("KNOWLEDGE_BASE_PATH", "knowledge_base.json"),

		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	if !cfg.HasAnyProvider() {
		log.Println("Warning: no AI provider configured; AI endpoints will return 503")
	}

	return cfg
}

// HasAnyProvider reports whether at least one completion provider has
// credentials or an endpoint.
func (c *Config) HasAnyProvider() bool {
	return c.GroqAPIKey != "" || c.HuggingFaceAPIKey != "" || c.OllamaBaseURL != ""
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

// getEnvAsFloat gets an env var as a float32, with a fallback.
func getEnvAsFloat(key string, defaultValue float32) float32 {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(strValue, 32)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as float. Using default value.", key)
		return defaultValue
	}
	return float32(floatValue)
}
