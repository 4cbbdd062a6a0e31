package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Budget    BudgetConfig
	Tier      TierConfig
	Chunk     ChunkConfig
	Embedding EmbeddingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	UploadDir          string
	MaxFileSizeMB      int
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenAI string
}

// BudgetConfig mirrors budget.Config's env-configurable fields.
type BudgetConfig struct {
	TotalWindow      int
	ReservedSystem   int
	ReservedHistory  int
	ReservedResponse int
}

// TierConfig mirrors tier.Thresholds's env-configurable fields.
type TierConfig struct {
	Tau1MaxTokens int
	Tau2MaxTokens int
	Tau3MaxTokens int
}

// ChunkConfig holds the CHUNK_* and RAG_TOP_K values read from the
// environment. The index builder and the assembler do not read it:
// chunking always uses chunker.DefaultConfig(), and a query without top_k
// uses the assembler's built-in default of 10.
type ChunkConfig struct {
	TargetTokens  int
	OverlapTokens int
	MaxTokens     int
	RAGTopK       int
}

type EmbeddingConfig struct {
	OllamaBaseURL string
	OllamaModel   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
			MaxFileSizeMB:      getEnvAsInt("MAX_FILE_SIZE_MB", 50),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DATABASE_URL", ""),
		},
		Keys: APIKeys{
			OpenAI: getEnv("OPENAI_API_KEY", ""),
		},
		Budget: BudgetConfig{
			TotalWindow:      getEnvAsInt("TOTAL_CONTEXT_WINDOW", 200_000),
			ReservedSystem:   getEnvAsInt("RESERVED_SYSTEM_TOKENS", 2_000),
			ReservedHistory:  getEnvAsInt("RESERVED_HISTORY_TOKENS", 10_000),
			ReservedResponse: getEnvAsInt("RESERVED_RESPONSE_TOKENS", 4_000),
		},
		Tier: TierConfig{
			Tau1MaxTokens: getEnvAsInt("TIER1_MAX_TOKENS", 12_000),
			Tau2MaxTokens: getEnvAsInt("TIER2_MAX_TOKENS", 25_000),
			Tau3MaxTokens: getEnvAsInt("TIER3_MAX_TOKENS", 50_000),
		},
		Chunk: ChunkConfig{
			TargetTokens:  getEnvAsInt("CHUNK_TARGET_TOKENS", 512),
			OverlapTokens: getEnvAsInt("CHUNK_OVERLAP_TOKENS", 64),
			MaxTokens:     getEnvAsInt("CHUNK_MAX_TOKENS", 768),
			RAGTopK:       getEnvAsInt("RAG_TOP_K", 10),
		},
		Embedding: EmbeddingConfig{
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
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
