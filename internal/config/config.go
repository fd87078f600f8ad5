// Package config loads process configuration with viper: environment
// variables prefixed COINBOT_, optionally layered over a config.yaml in
// the working directory.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL   string        `mapstructure:"database_url"`
	DiscordToken  string        `mapstructure:"discord_token"`
	AdminFile     string        `mapstructure:"admin_file"`
	APIAddr       string        `mapstructure:"api_addr"`
	TickEvery     time.Duration `mapstructure:"tick_every"`
	ChartPoints   int           `mapstructure:"chart_points"`
	TopLimit      int           `mapstructure:"top_limit"`
	SeedOnStartup bool          `mapstructure:"seed_on_startup"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("COINBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("admin_file", "admins.txt")
	v.SetDefault("api_addr", ":8080")
	v.SetDefault("tick_every", 5*time.Minute)
	v.SetDefault("chart_points", 20)
	v.SetDefault("top_limit", 10)
	v.SetDefault("seed_on_startup", true)

	// The bare DATABASE_URL form most platforms inject also works.
	_ = v.BindEnv("database_url", "COINBOT_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("discord_token", "COINBOT_DISCORD_TOKEN", "DISCORD_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.DiscordToken = strings.TrimSpace(cfg.DiscordToken)
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.TickEvery <= 0 {
		cfg.TickEvery = 5 * time.Minute
	}
	if cfg.ChartPoints <= 0 {
		cfg.ChartPoints = 20
	}
	if cfg.TopLimit <= 0 {
		cfg.TopLimit = 10
	}
	return cfg, nil
}

// RequireGateway validates the fields only the chat gateway needs.
func (c Config) RequireGateway() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if strings.TrimSpace(c.AdminFile) == "" {
		return fmt.Errorf("admin_file is required")
	}
	return nil
}
