// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerPort     = 3000
	defaultTokenExpiry    = time.Hour
	defaultUploadDir      = "uploads"
	defaultMaxRequestSize = 10 * 1024 * 1024 // 10MB

	defaultCleanupSchedule = "0 3 * * *"
	defaultCleanupMinAge   = 24 * time.Hour
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Logging  LoggingConfig
	CORS     CORSConfig
	JWT      JWTConfig
	Upload   UploadConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port           int
	MaxRequestSize int64
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds bearer token settings
type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

// UploadConfig holds recipe image upload settings
type UploadConfig struct {
	Dir string
	// CleanupSchedule is a 5-field cron expression; empty disables the sweeper
	CleanupSchedule string
	CleanupMinAge   time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	// Empty passwords are common for local MySQL instances
	cfg.Database.Password = os.Getenv("DB_PASSWORD")

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	cfg.Server.Port = defaultServerPort
	if serverPortStr := os.Getenv("SERVER_PORT"); serverPortStr != "" {
		serverPort, err := strconv.Atoi(serverPortStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
		}
		cfg.Server.Port = serverPort
	}

	cfg.Server.MaxRequestSize = defaultMaxRequestSize
	if maxSizeStr := os.Getenv("MAX_REQUEST_SIZE"); maxSizeStr != "" {
		maxSize, err := strconv.ParseInt(maxSizeStr, 10, 64)
		if err != nil || maxSize <= 0 {
			return nil, fmt.Errorf("invalid MAX_REQUEST_SIZE: %q", maxSizeStr)
		}
		cfg.Server.MaxRequestSize = maxSize
	}

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWT.Secret = jwtSecret

	cfg.JWT.TokenExpiry = defaultTokenExpiry
	if expiryStr := os.Getenv("JWT_TOKEN_EXPIRY"); expiryStr != "" {
		expiry, err := time.ParseDuration(expiryStr)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TOKEN_EXPIRY: %w", err)
		}
		cfg.JWT.TokenExpiry = expiry
	}

	// Upload configuration
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = defaultUploadDir
	}
	cfg.Upload.Dir = uploadDir

	cfg.Upload.CleanupSchedule = defaultCleanupSchedule
	if schedule, ok := os.LookupEnv("UPLOAD_CLEANUP_SCHEDULE"); ok {
		schedule = strings.TrimSpace(schedule)
		if strings.EqualFold(schedule, "off") {
			schedule = ""
		}
		cfg.Upload.CleanupSchedule = schedule
	}

	cfg.Upload.CleanupMinAge = defaultCleanupMinAge
	if minAgeStr := os.Getenv("UPLOAD_CLEANUP_MIN_AGE"); minAgeStr != "" {
		minAge, err := time.ParseDuration(minAgeStr)
		if err != nil || minAge < 0 {
			return nil, fmt.Errorf("invalid UPLOAD_CLEANUP_MIN_AGE: %q", minAgeStr)
		}
		cfg.Upload.CleanupMinAge = minAge
	}

	return cfg, nil
}

// parseOrigins parses a comma-separated origins list, defaulting to "*"
func parseOrigins(raw string) []string {
	if raw == "" {
		// Default to allow all origins if not specified (for development)
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, origin := range parts {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// DSN returns the database connection string.
//
// clientFoundRows makes UPDATE report matched rows instead of changed rows,
// so an update that writes identical values is still reported as a match.
func (c *Config) DSN() string {
	if c.Database.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&clientFoundRows=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}
