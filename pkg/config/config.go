package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Storage    StorageConfig
	OpenAI     OpenAIConfig
	Groq       GroqConfig
	Assembly   AssemblyConfig
	Crawler    CrawlerConfig
	Generation GenerationConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PublicBaseURL   string
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	ImageModel string
}

// GroqConfig holds Groq API configuration
type GroqConfig struct {
	APIKey   string
	BaseURL  string
	TTSModel string
	TTSVoice string
}

// AssemblyConfig holds AssemblyAI configuration
type AssemblyConfig struct {
	APIKey string
}

// CrawlerConfig holds source crawling limits
type CrawlerConfig struct {
	MaxPages     int
	MaxDepth     int
	MaxChars     int
	FetchTimeout time.Duration
	CacheTTL     time.Duration
}

// GenerationConfig holds slide generation tuning
type GenerationConfig struct {
	DefaultSlideCount int
	MaxSlideCount     int
	ImageWorkers      int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "pitch_assistant"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", "your-access-secret-change-in-production"),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", "your-refresh-secret-change-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", "15m"),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", "168h"),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "pitch-assistant"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PublicBaseURL:   getEnv("STORAGE_PUBLIC_URL", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			BaseURL:    getEnv("OPENAI_BASE_URL", ""),
			ChatModel:  getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			ImageModel: getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		},
		Groq: GroqConfig{
			APIKey:   getEnv("GROQ_API_KEY", ""),
			BaseURL:  getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			TTSModel: getEnv("GROQ_TTS_MODEL", "playai-tts"),
			TTSVoice: getEnv("GROQ_TTS_VOICE", "Fritz-PlayAI"),
		},
		Assembly: AssemblyConfig{
			APIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
		},
		Crawler: CrawlerConfig{
			MaxPages:     getEnvAsInt("CRAWLER_MAX_PAGES", 3),
			MaxDepth:     getEnvAsInt("CRAWLER_MAX_DEPTH", 1),
			MaxChars:     getEnvAsInt("CRAWLER_MAX_CHARS", 15000),
			FetchTimeout: getEnvAsDuration("CRAWLER_FETCH_TIMEOUT", "10s"),
			CacheTTL:     getEnvAsDuration("CRAWLER_CACHE_TTL", "1h"),
		},
		Generation: GenerationConfig{
			DefaultSlideCount: getEnvAsInt("GENERATION_DEFAULT_SLIDES", 8),
			MaxSlideCount:     getEnvAsInt("GENERATION_MAX_SLIDES", 30),
			ImageWorkers:      getEnvAsInt("GENERATION_IMAGE_WORKERS", 2),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.Generation.ImageWorkers < 1 {
		return fmt.Errorf("GENERATION_IMAGE_WORKERS must be at least 1")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
