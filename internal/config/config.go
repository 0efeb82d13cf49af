// Package config loads service configuration from a YAML file with
// environment variable overrides for deployment-specific secrets.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Redis    Redis    `yaml:"redis"`
	Database Database `yaml:"database"`
	Twilio   Twilio   `yaml:"twilio"`
	Session  Session  `yaml:"session"`
	Spool    Spool    `yaml:"spool"`
}

// HTTP configures the inbound webhook and admin listener.
type HTTP struct {
	Port string `yaml:"port"`
}

// Redis configures the session store backend.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Database configures the complaint record store.
type Database struct {
	Path string `yaml:"path"`
}

// Twilio configures outbound WhatsApp delivery. PublicURL is the externally
// reachable base address documents are downloaded from.
type Twilio struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	From       string `yaml:"from"`
	PublicURL  string `yaml:"public_url"`
}

// Session configures conversation expiry.
type Session struct {
	TimeoutMinutes int `yaml:"timeout_minutes"`
}

// Spool configures local document storage.
type Spool struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file or overrides are given.
func Default() *Config {
	return &Config{
		HTTP:     HTTP{Port: "8080"},
		Redis:    Redis{Addr: "localhost:6379"},
		Database: Database{Path: "complaints.db"},
		Twilio:   Twilio{From: "whatsapp:+14155238886", PublicURL: "http://localhost:8080"},
		Session:  Session{TimeoutMinutes: 30},
		Spool:    Spool{Dir: "documents"},
	}
}

// Load reads the YAML file at path and applies environment overrides. A
// missing file is not an error; defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Config file is optional.
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides file values with HELPLINE_* environment variables.
// Secrets are expected to arrive this way rather than through the file.
func (c *Config) applyEnv() {
	setString(&c.HTTP.Port, "HELPLINE_HTTP_PORT")
	setString(&c.Redis.Addr, "HELPLINE_REDIS_ADDR")
	setString(&c.Redis.Password, "HELPLINE_REDIS_PASSWORD")
	setInt(&c.Redis.DB, "HELPLINE_REDIS_DB")
	setString(&c.Database.Path, "HELPLINE_DATABASE_PATH")
	setString(&c.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	setString(&c.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	setString(&c.Twilio.From, "TWILIO_WHATSAPP_FROM")
	setString(&c.Twilio.PublicURL, "HELPLINE_PUBLIC_URL")
	setInt(&c.Session.TimeoutMinutes, "HELPLINE_SESSION_TIMEOUT_MINUTES")
	setString(&c.Spool.Dir, "HELPLINE_SPOOL_DIR")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
