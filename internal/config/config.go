// Package config binds the service configuration from the environment.
// A .env file is honored when present; real environment variables win.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr     string   `mapstructure:"listen_addr"`
	BackendURL     string   `mapstructure:"backend_url"`
	BackendAnonKey string   `mapstructure:"backend_anon_key"`
	BackendSvcKey  string   `mapstructure:"backend_service_key"`
	JWTSecret      string   `mapstructure:"jwt_secret"`
	DatabaseURL    string   `mapstructure:"database_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	PollsPerPage   int      `mapstructure:"polls_per_page"`
}

// Load reads the server configuration from the environment, prefixed with
// ALXPOLL_ (ALXPOLL_BACKEND_URL and so on).
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadJob reads configuration for the database-facing jobs (migrations, vote
// summarizing), which talk to the database directly and never reach the
// backend API, so the backend keys are not required.
func LoadJob() (*Config, error) {
	return load()
}

func load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("alxpoll")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("listen_addr", "0.0.0.0:8080")
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("polls_per_page", 10)

	for _, key := range []string{"backend_url", "backend_anon_key", "backend_service_key", "jwt_secret", "database_url"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	return &Config{
		ListenAddr:     v.GetString("listen_addr"),
		BackendURL:     v.GetString("backend_url"),
		BackendAnonKey: v.GetString("backend_anon_key"),
		BackendSvcKey:  v.GetString("backend_service_key"),
		JWTSecret:      v.GetString("jwt_secret"),
		DatabaseURL:    v.GetString("database_url"),
		AllowedOrigins: splitOrigins(v.GetString("allowed_origins")),
		PollsPerPage:   v.GetInt("polls_per_page"),
	}, nil
}

func (c *Config) validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("ALXPOLL_BACKEND_URL is required")
	}
	if c.BackendAnonKey == "" {
		return fmt.Errorf("ALXPOLL_BACKEND_ANON_KEY is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("ALXPOLL_JWT_SECRET is required")
	}
	return nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
