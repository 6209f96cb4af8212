package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Providers ProvidersConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// DatabaseConfig holds the sqlite database location
type DatabaseConfig struct {
	Path string
}

// AuthConfig holds JWT settings. AdminSetupCode guards the one-time
// first-admin bootstrap endpoint; when empty the endpoint is disabled.
type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	AdminSetupCode string
}

// ProvidersConfig holds API keys for the upstream services. TomTom,
// OpenWeather and Groq are optional: when any of them is missing the
// optimizer is disabled and every route is served through ORS.
type ProvidersConfig struct {
	ORSKey         string
	ORSUseBearer   bool
	TomTomKey      string
	TomTomBearer   bool
	OpenWeatherKey string
	GroqKey        string
	GroqModel      string
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// Set config file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.smartroute")

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.ginmode", "release")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("database.path", "smartroute.db")
	viper.SetDefault("auth.tokenttl", time.Hour)
	viper.SetDefault("providers.groqmodel", "llama-3.3-70b-versatile")

	// Read from environment variables
	viper.SetEnvPrefix("SMARTROUTE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwtsecret is required (set SMARTROUTE_AUTH_JWTSECRET)")
	}

	return &cfg, nil
}

// OptimizationAvailable reports whether all three premium provider keys are
// configured.
func (c *Config) OptimizationAvailable() bool {
	return c.Providers.TomTomKey != "" &&
		c.Providers.OpenWeatherKey != "" &&
		c.Providers.GroqKey != ""
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
