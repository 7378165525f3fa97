// Package config assembles the startup configuration: code defaults,
// overlaid by an optional YAML file, overlaid by environment variables.
// The result is immutable once the process is wired.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/bobcode/ussd/internal/runtime"
)

// Duration parses human-friendly values like "90s" or "5m" from both
// YAML and environment variables.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Config is the full service configuration for cmd/ussd.
type Config struct {
	ListenAddr string `env:"USSD_LISTEN_ADDR" yaml:"listen_addr"`
	MenuPath   string `env:"USSD_MENU_PATH" yaml:"menu_path"`
	LogLevel   string `env:"USSD_LOG_LEVEL" yaml:"log_level"`

	// Store selects the session store backend: "memory" or "redis".
	Store string `env:"USSD_STORE" yaml:"store"`

	Redis  Redis  `yaml:"redis"`
	Engine Engine `yaml:"engine"`
}

// Redis holds connection settings for the redis-backed store.
type Redis struct {
	Addr     string `env:"USSD_REDIS_ADDR" yaml:"addr"`
	Password string `env:"USSD_REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"USSD_REDIS_DB" yaml:"db"`
	Prefix   string `env:"USSD_REDIS_PREFIX" yaml:"prefix"`
}

// Engine mirrors the navigation engine configuration surface.
type Engine struct {
	SessionTTL          Duration `env:"USSD_SESSION_TTL" yaml:"session_ttl"`
	InvalidInputMessage string   `env:"USSD_INVALID_INPUT_MESSAGE" yaml:"invalid_input_message"`
	DefaultEndMessage   string   `env:"USSD_DEFAULT_END_MESSAGE" yaml:"default_end_message"`
	BackCommand         string   `env:"USSD_BACK_COMMAND" yaml:"back_command"`
	HomeCommand         string   `env:"USSD_HOME_COMMAND" yaml:"home_command"`
	AutoBackNavigation  bool     `env:"USSD_AUTO_BACK" yaml:"auto_back_navigation"`
	Pagination          bool     `env:"USSD_PAGINATION" yaml:"pagination"`
	ItemsPerPage        int      `env:"USSD_ITEMS_PER_PAGE" yaml:"items_per_page"`
	NextPageCommand     string   `env:"USSD_NEXT_PAGE_COMMAND" yaml:"next_page_command"`
	PreviousPageCommand string   `env:"USSD_PREV_PAGE_COMMAND" yaml:"previous_page_command"`
	Resumption          bool     `env:"USSD_RESUMPTION" yaml:"resumption"`
	ResumePrompt        string   `env:"USSD_RESUME_PROMPT" yaml:"resume_prompt"`
	ResumeLabel         string   `env:"USSD_RESUME_LABEL" yaml:"resume_label"`
	StartFreshLabel     string   `env:"USSD_START_FRESH_LABEL" yaml:"start_fresh_label"`
}

// Default returns the code defaults, aligned with runtime.DefaultConfig.
func Default() Config {
	rc := runtime.DefaultConfig()
	return Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
		Store:      "memory",
		Redis: Redis{
			Addr:   "localhost:6379",
			Prefix: "ussd:sess:",
		},
		Engine: Engine{
			SessionTTL:          Duration(rc.SessionTTL),
			InvalidInputMessage: rc.InvalidInputMessage,
			DefaultEndMessage:   rc.DefaultEndMessage,
			BackCommand:         rc.BackCommand,
			HomeCommand:         rc.HomeCommand,
			AutoBackNavigation:  rc.EnableAutoBackNavigation,
			Pagination:          rc.EnablePagination,
			ItemsPerPage:        rc.ItemsPerPage,
			NextPageCommand:     rc.NextPageCommand,
			PreviousPageCommand: rc.PreviousPageCommand,
			Resumption:          rc.EnableSessionResumption,
			ResumePrompt:        rc.ResumePrompt,
			ResumeLabel:         rc.ResumeOptionLabel,
			StartFreshLabel:     rc.StartFreshOptionLabel,
		},
	}
}

// Load builds the configuration. filePath may be empty; environment
// variables win over the file, the file wins over defaults.
func Load(filePath string) (Config, error) {
	cfg := Default()

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", filePath, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// Runtime converts the engine section into the engine's own config type.
func (c Config) Runtime() runtime.Config {
	return runtime.Config{
		SessionTTL:               time.Duration(c.Engine.SessionTTL),
		InvalidInputMessage:      c.Engine.InvalidInputMessage,
		DefaultEndMessage:        c.Engine.DefaultEndMessage,
		BackCommand:              c.Engine.BackCommand,
		HomeCommand:              c.Engine.HomeCommand,
		EnableAutoBackNavigation: c.Engine.AutoBackNavigation,
		EnablePagination:         c.Engine.Pagination,
		ItemsPerPage:             c.Engine.ItemsPerPage,
		NextPageCommand:          c.Engine.NextPageCommand,
		PreviousPageCommand:      c.Engine.PreviousPageCommand,
		EnableSessionResumption:  c.Engine.Resumption,
		ResumePrompt:             c.Engine.ResumePrompt,
		ResumeOptionLabel:        c.Engine.ResumeLabel,
		StartFreshOptionLabel:    c.Engine.StartFreshLabel,
	}
}
