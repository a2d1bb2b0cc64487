package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Search     SearchConfig
	Ranking    RankingConfig
	LLM        LLMConfig
	Memory     MemoryConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes priority
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// SearchConfig holds retrieval pipeline configuration
type SearchConfig struct {
	DefaultTopK       int
	MaxTopK           int
	RetrievalLimit    int     // candidates pulled from the vector index
	RerankLimit       int     // candidates sent to the reranking model
	ProximityRadiusKM float64 // radius for locality proximity filtering
	FuzzyThreshold    float64 // min 0-100 similarity to accept a fuzzy locality match
}

// RankingConfig holds composite scoring constants. The decay slope,
// keyword damping and clip bounds come from the scoring calibration and
// are tunable rather than re-derived.
type RankingConfig struct {
	WeightLivability    float64
	WeightInvestment    float64
	WeightAffordability float64
	WeightSimilarity    float64
	AffordabilitySlope  float64 // linear decay per unit of price/budget ratio
	KeywordDamping      float64 // keyword boosts are divided by this before applying
	BoostClipMin        float64
	BoostClipMax        float64
	NeutralScore        float64 // sub-score used when data is missing
	PPSFCeiling         float64 // price-per-sqft cap applied on affordability keywords
	PriceNoiseFloor     float64 // listings at or below this price are junk rows
}

// MemoryConfig holds conversation memory configuration
type MemoryConfig struct {
	HistorySize int
}

// LLMConfig holds configuration for the OpenAI-compatible LLM API used
// for filter extraction, reranking and answer summaries.
type LLMConfig struct {
	APIKey              string
	APIBase             string
	ChatModel           string
	ChatTemperature     float64
	EmbeddingModel      string
	EmbeddingDimensions int
	EmbeddingPrefix     string
	Timeout             int
	Enabled             bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "listings_rag"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Search: SearchConfig{
			DefaultTopK:       getEnvAsInt("SEARCH_DEFAULT_TOP_K", 5),
			MaxTopK:           getEnvAsInt("SEARCH_MAX_TOP_K", 20),
			RetrievalLimit:    getEnvAsInt("SEARCH_RETRIEVAL_LIMIT", 50),
			RerankLimit:       getEnvAsInt("SEARCH_RERANK_LIMIT", 20),
			ProximityRadiusKM: getEnvAsFloat("SEARCH_PROXIMITY_RADIUS_KM", 6.5),
			FuzzyThreshold:    getEnvAsFloat("SEARCH_FUZZY_THRESHOLD", 65),
		},
		Ranking: RankingConfig{
			WeightLivability:    getEnvAsFloat("RANK_WEIGHT_LIVABILITY", 0.35),
			WeightInvestment:    getEnvAsFloat("RANK_WEIGHT_INVESTMENT", 0.35),
			WeightAffordability: getEnvAsFloat("RANK_WEIGHT_AFFORDABILITY", 0.15),
			WeightSimilarity:    getEnvAsFloat("RANK_WEIGHT_SIMILARITY", 0.15),
			AffordabilitySlope:  getEnvAsFloat("RANK_AFFORDABILITY_SLOPE", 50),
			KeywordDamping:      getEnvAsFloat("RANK_KEYWORD_DAMPING", 3),
			BoostClipMin:        getEnvAsFloat("RANK_BOOST_CLIP_MIN", -5),
			BoostClipMax:        getEnvAsFloat("RANK_BOOST_CLIP_MAX", 15),
			NeutralScore:        getEnvAsFloat("RANK_NEUTRAL_SCORE", 5),
			PPSFCeiling:         getEnvAsFloat("RANK_PPSF_CEILING", 9000),
			PriceNoiseFloor:     getEnvAsFloat("RANK_PRICE_NOISE_FLOOR", 100),
		},
		Memory: MemoryConfig{
			HistorySize: getEnvAsInt("MEMORY_HISTORY_SIZE", 5),
		},
		LLM: LLMConfig{
			APIKey:              getEnv("GROQ_API_KEY", ""),
			APIBase:             getEnv("LLM_API_BASE", "https://api.groq.com/openai/v1"),
			ChatModel:           getEnv("LLM_CHAT_MODEL", "llama-3.3-70b-versatile"),
			ChatTemperature:     getEnvAsFloat("LLM_CHAT_TEMPERATURE", 0),
			EmbeddingModel:      getEnv("LLM_EMBEDDING_MODEL", "BAAI/bge-base-en-v1.5"),
			EmbeddingDimensions: getEnvAsInt("LLM_EMBEDDING_DIMENSIONS", 768),
			EmbeddingPrefix:     getEnv("LLM_EMBEDDING_PREFIX", "Represent this sentence for searching properties: "),
			Timeout:             getEnvAsInt("LLM_TIMEOUT", 30),
			Enabled:             getEnv("GROQ_API_KEY", "") != "",
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
