// Package config loads process configuration and opens the database.
package config

import (
	"strings"
	"time"
)

type Config struct {
	Env      string `koanf:"env"`
	Port     string `koanf:"port"`
	LogLevel string `koanf:"log_level"`

	DatabaseURL    string `koanf:"database_url"`
	DBMaxOpenConns int    `koanf:"db_max_open_conns"`
	DBMaxIdleConns int    `koanf:"db_max_idle_conns"`

	// RedisURL is optional; without it the cache stays in process memory.
	RedisURL        string `koanf:"redis_url"`
	CacheTTLSeconds int    `koanf:"cache_ttl_seconds"`

	// JWTSecret verifies HS256 access tokens issued by the hosted auth provider.
	JWTSecret   string `koanf:"jwt_secret"`
	CORSOrigins string `koanf:"cors_origins"`

	MailDSN    string `koanf:"mail_dsn"`
	MailSender string `koanf:"mail_sender"`

	LiveSessionTTLMinutes int    `koanf:"live_session_ttl_minutes"`
	LiveSweepSchedule     string `koanf:"live_sweep_schedule"`

	TopPlayersMinMatches int `koanf:"top_players_min_matches"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Env:                   "development",
		Port:                  "8080",
		LogLevel:              "info",
		DBMaxOpenConns:        25,
		DBMaxIdleConns:        5,
		CacheTTLSeconds:       60,
		CORSOrigins:           "http://localhost:5173",
		MailSender:            "noreply@example.com",
		LiveSessionTTLMinutes: 120,
		LiveSweepSchedule:     "0 */5 * * * *",
		TopPlayersMinMatches:  3,
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) LiveSessionTTL() time.Duration {
	return time.Duration(c.LiveSessionTTLMinutes) * time.Minute
}

// AllowedOrigins splits the comma separated CORS origin list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
