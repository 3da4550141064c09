package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, sourced from the environment.
type Config struct {
	API       APIConfig
	Gemini    GeminiConfig
	Knowledge KnowledgeConfig
	LogFile   string
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host string
	Port string
}

// GeminiConfig holds model and credential settings.
type GeminiConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Temperature    float64
	MaxTokens      int
}

// KnowledgeConfig holds storage locations and retrieval tuning.
type KnowledgeConfig struct {
	PersistDir   string
	DocumentDir  string
	RegistryDir  string
	Collection   string
	TopK         int
	ChunkSize    int
	ChunkOverlap int
}

// LoadConfig reads configuration from the environment, consulting a .env
// file when present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using process environment")
	}

	return &Config{
		API: APIConfig{
			Host: getEnv("API_HOST", "0.0.0.0"),
			Port: getEnv("API_PORT", "8000"),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			ChatModel:      getEnv("GEMINI_CHAT_MODEL", DefaultChatModel),
			EmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", DefaultEmbeddingModel),
			Temperature:    getEnvAsFloat("GEMINI_TEMPERATURE", DefaultTemperature),
			MaxTokens:      getEnvAsInt("GEMINI_MAX_TOKENS", DefaultMaxTokens),
		},
		Knowledge: KnowledgeConfig{
			PersistDir:   getEnv("PERSIST_DIR", DefaultPersistDir),
			DocumentDir:  getEnv("DOCUMENT_DIR", DefaultDocumentDir),
			RegistryDir:  getEnv("REGISTRY_DIR", DefaultRegistryDir),
			Collection:   getEnv("COLLECTION_NAME", CollectionName),
			TopK:         getEnvAsInt("RAG_TOP_K", RAGTopK),
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", ChunkSize),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", ChunkOverlap),
		},
		LogFile: getEnv("LOG_FILE_PATH", "logs/chatbot.log"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}
