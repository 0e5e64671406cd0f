package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	Keys APIKeys
	Rag  RagConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type APIKeys struct {
	GoogleGemini string
}

type RagConfig struct {
	ChunkSize      int
	ChunkOverlap   int
	MinChunkLength int
	DefaultTopK    int
	SnapshotPath   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/finbot.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Rag: RagConfig{
			ChunkSize:      getEnvAsInt("RAG_CHUNK_SIZE", 1000),
			ChunkOverlap:   getEnvAsInt("RAG_CHUNK_OVERLAP", 200),
			MinChunkLength: getEnvAsInt("RAG_MIN_CHUNK_LENGTH", 50),
			DefaultTopK:    getEnvAsInt("RAG_DEFAULT_TOP_K", 3),
			SnapshotPath:   getEnv("RAG_SNAPSHOT_PATH", "data/faq_index"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
