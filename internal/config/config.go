package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
	Database                  DatabaseConfig
	Assistant                 AssistantConfig
	Speech                    SpeechConfig
	Chat                      ChatConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// AssistantConfig holds the external assistant service connection details
type AssistantConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// SpeechConfig holds voice output settings. When disabled the chat replies
// carry no audio.
type SpeechConfig struct {
	Enabled bool
	Voice   string
}

// ChatConfig holds the rate limit applied to the chat endpoint
type ChatConfig struct {
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "pranaya"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	assistantTimeout, err := strconv.Atoi(getEnv("ASSISTANT_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid ASSISTANT_TIMEOUT_SECONDS: %w", err)
	}

	chatRate, err := strconv.ParseFloat(getEnv("CHAT_RATE_LIMIT_PER_SECOND", "2"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CHAT_RATE_LIMIT_PER_SECOND: %w", err)
	}

	chatBurst, err := strconv.Atoi(getEnv("CHAT_RATE_LIMIT_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHAT_RATE_LIMIT_BURST: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:                      getEnv("PORT", "3001"),
		Origin:                    getEnv("ORIGIN", "http://localhost:3000"),
		Environment:               getEnv("APP_ENV", "development"),
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
		Database:                  dbConfig,
		Assistant: AssistantConfig{
			BaseURL:        getEnv("ASSISTANT_BASE_URL", "http://127.0.0.1:8000"),
			TimeoutSeconds: assistantTimeout,
		},
		Speech: SpeechConfig{
			Enabled: getEnv("TTS_ENABLED", "false") == "true",
			Voice:   getEnv("TTS_VOICE", "en-US-Wavenet-F"),
		},
		Chat: ChatConfig{
			RateLimitPerSecond: chatRate,
			RateLimitBurst:     chatBurst,
		},
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
