package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from file and environment.
type Config struct {
	APIPort int

	// DatabaseURL selects PostgreSQL when set; empty falls back to the
	// SQLite file at DatabasePath.
	DatabaseURL  string
	DatabaseName string
	DatabasePath string

	SessionTTLHours int
}

// Load reads configuration from an optional YAML file and environment
// variables. Every key has a documented fallback so the server starts with
// no configuration at all.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_port", 8080)
	v.SetDefault("database_name", "100days")
	v.SetDefault("database_path", "data/100days.db")
	v.SetDefault("session_ttl_hours", 7*24)

	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("database_name", "DATABASE_NAME")
	_ = v.BindEnv("database_path", "DATABASE_PATH")
	_ = v.BindEnv("api_port", "PORT")
	_ = v.BindEnv("session_ttl_hours", "SESSION_TTL_HOURS")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: could not read config file %s: %v. Using defaults and environment variables.", path, err)
		}
	}

	return &Config{
		APIPort:         v.GetInt("api_port"),
		DatabaseURL:     v.GetString("database_url"),
		DatabaseName:    v.GetString("database_name"),
		DatabasePath:    v.GetString("database_path"),
		SessionTTLHours: v.GetInt("session_ttl_hours"),
	}, nil
}
