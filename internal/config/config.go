package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Database Configuration
	Database DatabaseConfig `json:"database"`

	// MongoDB Configuration (avatar media storage)
	MongoDB MongoConfig `json:"mongodb"`

	// Messaging Configuration
	Messaging MessagingConfig `json:"messaging"`

	// Logging Configuration
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	DMServicePort   string `json:"dm_service_port"`
	MediaServerPort string `json:"media_server_port"`
	MediaBaseURL    string `json:"media_base_url"`
	ReadTimeout     int    `json:"read_timeout"`
	WriteTimeout    int    `json:"write_timeout"`
	Environment     string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// MongoConfig contains the avatar media store connection configuration
type MongoConfig struct {
	Host           string `json:"host"`
	Port           string `json:"port"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Database       string `json:"database"`
	ConnectTimeout int    `json:"connect_timeout"` // seconds
	MaxPoolSize    int    `json:"max_pool_size"`
}

// MessagingConfig bounds the direct-messaging behavior
type MessagingConfig struct {
	RateLimitPerWindow int `json:"rate_limit_per_window"` // sends allowed per window
	RateWindowHours    int `json:"rate_window_hours"`     // trailing window size
	MaxContentLength   int `json:"max_content_length"`    // runes after trimming
	DefaultPageSize    int `json:"default_page_size"`
	MaxPageSize        int `json:"max_page_size"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	Format     string `json:"format"`      // json, text
	OutputPath string `json:"output_path"` // stdout, stderr, or file path
}

// LoadConfig builds the configuration from environment variables with defaults.
// Callers load .env themselves (godotenv) before calling this.
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			DMServicePort:   getEnvOrDefault("DM_SERVICE_PORT", "7004"),
			MediaServerPort: getEnvOrDefault("MEDIA_SERVER_PORT", "8080"),
			MediaBaseURL:    getEnvOrDefault("MEDIA_BASE_URL", "/media"),
			ReadTimeout:     getEnvIntOrDefault("SERVER_READ_TIMEOUT", 15),
			WriteTimeout:    getEnvIntOrDefault("SERVER_WRITE_TIMEOUT", 15),
			Environment:     getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "dmhub"),
			Password:     getEnvOrDefault("DB_PASSWORD", "dmhub123"),
			DatabaseName: getEnvOrDefault("DB_NAME", "dmhub_db"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoConfig{
			Host:           getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:           getEnvOrDefault("MONGO_PORT", "27017"),
			Username:       getEnvOrDefault("MONGO_USER", "admin"),
			Password:       getEnvOrDefault("MONGO_PASSWORD", "admin123"),
			Database:       getEnvOrDefault("MONGO_DB", "dmhub"),
			ConnectTimeout: getEnvIntOrDefault("MONGO_CONNECT_TIMEOUT", 10),
			MaxPoolSize:    getEnvIntOrDefault("MONGO_MAX_POOL_SIZE", 20),
		},
		Messaging: MessagingConfig{
			RateLimitPerWindow: getEnvIntOrDefault("DM_RATE_LIMIT", 5),
			RateWindowHours:    getEnvIntOrDefault("DM_RATE_WINDOW_HOURS", 24),
			MaxContentLength:   getEnvIntOrDefault("DM_MAX_CONTENT_LENGTH", 2000),
			DefaultPageSize:    getEnvIntOrDefault("DM_DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:        getEnvIntOrDefault("DM_MAX_PAGE_SIZE", 100),
		},
		Logging: LoggingConfig{
			Level:      getEnvOrDefault("LOG_LEVEL", "info"),
			Format:     getEnvOrDefault("LOG_FORMAT", "text"),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
		},
	}
}

// DSN builds the MySQL connection string
func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

// GetMongoURI builds the MongoDB connection string
func (cfg *Config) GetMongoURI() string {
	if cfg.MongoDB.Username == "" {
		return fmt.Sprintf("mongodb://%s:%s", cfg.MongoDB.Host, cfg.MongoDB.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s",
		cfg.MongoDB.Username,
		cfg.MongoDB.Password,
		cfg.MongoDB.Host,
		cfg.MongoDB.Port,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
