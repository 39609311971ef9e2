// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	OpenAI      OpenAIConfig
	Anthropic   AnthropicConfig
	AWS         AWSConfig
	Retrieval   RetrievalConfig
	Cache       CacheConfig
	Retailer    RetailerConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	DialTimeout int // in seconds
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	EmbeddingDim   int
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
}

type RetrievalConfig struct {
	RerankTopK     int
	FinalTopK      int
	OptimizedTopK  int
	Temperature    float64
	MaxTokens      int
	RequestTimeout int // in seconds, per LLM call
}

type CacheConfig struct {
	Enabled        bool
	QueryResultTTL int // in seconds
	SearchTermsTTL int
	EmbeddingTTL   int
}

type RetailerConfig struct {
	APIURL         string
	APIKey         string
	RequestTimeout int // in seconds
	MaxLogEntries  int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 60),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "stylist"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		Redis: RedisConfig{
			Host:        getEnv("REDIS_HOST", "localhost"),
			Port:        getEnv("REDIS_PORT", "6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
			DialTimeout: getEnvAsInt("REDIS_DIAL_TIMEOUT", 2),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			EmbeddingDim:   getEnvAsInt("EMBEDDING_DIMENSION", 1536),
		},
		Anthropic: AnthropicConfig{
			APIKey: getEnv("ANTHROPIC_API_KEY", ""),
			Model:  getEnv("ANTHROPIC_MODEL", "claude-3-sonnet-20240229"),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "stylist-catalogs"),
		},
		Retrieval: RetrievalConfig{
			RerankTopK:     getEnvAsInt("RERANK_TOP_K", 50),
			FinalTopK:      getEnvAsInt("FINAL_TOP_K", 15),
			OptimizedTopK:  getEnvAsInt("OPTIMIZED_TOP_K", 30),
			Temperature:    getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:      getEnvAsInt("LLM_MAX_TOKENS", 1500),
			RequestTimeout: getEnvAsInt("LLM_REQUEST_TIMEOUT", 30),
		},
		Cache: CacheConfig{
			Enabled:        getEnvAsBool("CACHE_ENABLED", true),
			QueryResultTTL: getEnvAsInt("CACHE_QUERY_RESULT_TTL", 1800),
			SearchTermsTTL: getEnvAsInt("CACHE_SEARCH_TERMS_TTL", 3600),
			EmbeddingTTL:   getEnvAsInt("CACHE_EMBEDDING_TTL", 7200),
		},
		Retailer: RetailerConfig{
			APIURL:         getEnv("RETAILER_API_URL", ""),
			APIKey:         getEnv("RETAILER_API_KEY", ""),
			RequestTimeout: getEnvAsInt("RETAILER_REQUEST_TIMEOUT", 30),
			MaxLogEntries:  getEnvAsInt("RETAILER_MAX_LOG_ENTRIES", 1000),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.OpenAI.EmbeddingDim <= 0 {
		return fmt.Errorf("embedding dimension must be positive")
	}

	if c.Retrieval.FinalTopK > c.Retrieval.RerankTopK {
		return fmt.Errorf("FINAL_TOP_K cannot exceed RERANK_TOP_K")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
