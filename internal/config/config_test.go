package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/coinbot_test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIAddr != ":8080" {
		t.Fatalf("api_addr got %q", cfg.APIAddr)
	}
	if cfg.TickEvery != 5*time.Minute {
		t.Fatalf("tick_every got %v", cfg.TickEvery)
	}
	if cfg.ChartPoints != 20 || cfg.TopLimit != 10 {
		t.Fatalf("got chart_points=%d top_limit=%d", cfg.ChartPoints, cfg.TopLimit)
	}
	if !cfg.SeedOnStartup {
		t.Fatal("seed_on_startup should default to true")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("COINBOT_DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COINBOT_DATABASE_URL", "postgres://localhost/coinbot_test")
	t.Setenv("COINBOT_TICK_EVERY", "30s")
	t.Setenv("COINBOT_TOP_LIMIT", "25")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TickEvery != 30*time.Second {
		t.Fatalf("tick_every got %v", cfg.TickEvery)
	}
	if cfg.TopLimit != 25 {
		t.Fatalf("top_limit got %d", cfg.TopLimit)
	}
}

func TestRequireGateway(t *testing.T) {
	cfg := Config{AdminFile: "admins.txt"}
	if err := cfg.RequireGateway(); err == nil {
		t.Fatal("expected error without discord token")
	}
	cfg.DiscordToken = "token"
	if err := cfg.RequireGateway(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
