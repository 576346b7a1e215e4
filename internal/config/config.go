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

// Config holds all configuration for the application.
// It is constructed once at process start and passed by reference into each
// component constructor; business logic never reads the environment itself.
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	JWT       JWTConfig
	Providers ProvidersConfig
	Offline   OfflineConfig
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
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds token validation settings
type JWTConfig struct {
	Secret string
}

// ProvidersConfig holds the external capability providers behind the
// adaptation pipeline: inference scorer, context-rich adapter, completion
// fallback and translation.
type ProvidersConfig struct {
	MLBaseURL         string
	AdaptBaseURL      string
	OpenAIBaseURL     string
	OpenAIKey         string
	OpenAIModel       string
	OpenAITemperature float64
	ScorerTimeout     time.Duration
	AdaptTimeout      time.Duration
	TranslateTimeout  time.Duration
	SourceLanguage    string
}

// OfflineConfig holds the device-side queue and sync settings
type OfflineConfig struct {
	StorePath    string
	ServerURL    string
	IngressAddr  string
	SyncSchedule string
	BackoffBase  time.Duration
	BackoffMax   time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional; env vars may be set directly)
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

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

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

	// Provider configuration
	if err := loadProviders(&cfg.Providers); err != nil {
		return nil, err
	}

	// Offline queue configuration (used by syncd)
	if err := loadOffline(&cfg.Offline); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadSync reads the subset of configuration the sync daemon needs; it has
// no database of its own, only the queue store and the server URL.
func LoadSync() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	cfg.Logging.Level = logLevel

	if err := loadOffline(&cfg.Offline); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadProviders(p *ProvidersConfig) error {
	p.MLBaseURL = os.Getenv("ML_SERVICE_URL")
	if p.MLBaseURL == "" {
		p.MLBaseURL = "http://localhost:8000"
	}

	p.AdaptBaseURL = os.Getenv("ADAPT_SERVICE_URL")
	if p.AdaptBaseURL == "" {
		p.AdaptBaseURL = "http://localhost:8100"
	}

	p.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	if p.OpenAIBaseURL == "" {
		p.OpenAIBaseURL = "https://api.openai.com"
	}
	p.OpenAIKey = os.Getenv("OPENAI_API_KEY")

	p.OpenAIModel = os.Getenv("OPENAI_MODEL")
	if p.OpenAIModel == "" {
		p.OpenAIModel = "gpt-4o-mini"
	}

	tempStr := os.Getenv("OPENAI_TEMPERATURE")
	if tempStr == "" {
		p.OpenAITemperature = 0.7
	} else {
		temp, err := strconv.ParseFloat(tempStr, 64)
		if err != nil {
			return fmt.Errorf("invalid OPENAI_TEMPERATURE: %w", err)
		}
		p.OpenAITemperature = temp
	}

	var err error
	p.ScorerTimeout, err = parseDuration("SCORER_TIMEOUT", 3*time.Second)
	if err != nil {
		return err
	}
	p.AdaptTimeout, err = parseDuration("ADAPT_TIMEOUT", 5*time.Second)
	if err != nil {
		return err
	}
	p.TranslateTimeout, err = parseDuration("TRANSLATE_TIMEOUT", 5*time.Second)
	if err != nil {
		return err
	}

	p.SourceLanguage = os.Getenv("ADAPTATION_SOURCE_LANGUAGE")
	if p.SourceLanguage == "" {
		p.SourceLanguage = "en"
	}

	return nil
}

func loadOffline(o *OfflineConfig) error {
	o.StorePath = os.Getenv("OFFLINE_STORE_PATH")
	if o.StorePath == "" {
		o.StorePath = "data/offline.db"
	}

	o.ServerURL = os.Getenv("SYNC_SERVER_URL")
	if o.ServerURL == "" {
		o.ServerURL = "http://localhost:8080"
	}

	o.IngressAddr = os.Getenv("OFFLINE_INGRESS_ADDR")
	if o.IngressAddr == "" {
		o.IngressAddr = "127.0.0.1:8090"
	}

	o.SyncSchedule = os.Getenv("SYNC_SCHEDULE")
	if o.SyncSchedule == "" {
		o.SyncSchedule = "@every 5m"
	}

	var err error
	o.BackoffBase, err = parseDuration("SYNC_BACKOFF_BASE", 30*time.Second)
	if err != nil {
		return err
	}
	o.BackoffMax, err = parseDuration("SYNC_BACKOFF_MAX", time.Hour)
	if err != nil {
		return err
	}

	return nil
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseOrigins(raw string) []string {
	if raw == "" {
		// Default to allow all origins if not specified (for development)
		return []string{"*"}
	}
	origins := strings.Split(raw, ",")
	parsed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			parsed = append(parsed, origin)
		}
	}
	if len(parsed) == 0 {
		return []string{"*"}
	}
	return parsed
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}
