package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Uploads   UploadsConfig
	Admin     AdminConfig
	Generator GeneratorConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds the Badger store location
type DatabaseConfig struct {
	Path string
}

// UploadsConfig holds thumbnail upload settings
type UploadsConfig struct {
	Dir string
}

// AdminConfig holds the admin credential and session settings
type AdminConfig struct {
	Email      string
	Password   string
	SessionTTL time.Duration
}

// GeneratorConfig holds the text-generation collaborator settings
type GeneratorConfig struct {
	APIURL string
	APIKey string
	Model  string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from an optional inkwell.yaml and the
// environment (INKWELL_ prefixed, e.g. INKWELL_ADMIN_PASSWORD).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.readtimeout", 15*time.Second)
	v.SetDefault("server.writetimeout", 2*time.Minute)
	v.SetDefault("server.shutdowntimeout", 10*time.Second)
	v.SetDefault("database.path", "data/badger")
	v.SetDefault("uploads.dir", "data/uploads")
	v.SetDefault("admin.email", "admin@example.com")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.sessionttl", 24*time.Hour)
	v.SetDefault("generator.apiurl", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("generator.apikey", "")
	v.SetDefault("generator.model", "gpt-4o-mini")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetConfigName("inkwell")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INKWELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Admin.Password == "" {
		return errors.New("admin.password (INKWELL_ADMIN_PASSWORD) is required")
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	return nil
}
