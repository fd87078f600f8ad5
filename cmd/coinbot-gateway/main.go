package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"coinbot/internal/adminlist"
	"coinbot/internal/config"
	"coinbot/internal/db"
	"coinbot/internal/economy"
	"coinbot/internal/gateway"

	"github.com/bwmarrin/discordgo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if err := cfg.RequireGateway(); err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := economy.NewService(pool, logger)
	if err := svc.EnsureSchema(ctx); err != nil {
		logger.Error("schema init failed", "err", err)
		os.Exit(1)
	}
	if cfg.SeedOnStartup {
		if err := svc.SeedCatalog(ctx); err != nil {
			logger.Error("seed catalog failed", "err", err)
			os.Exit(1)
		}
	}

	admins, err := adminlist.Load(cfg.AdminFile)
	if err != nil {
		logger.Error("admin list load failed", "file", cfg.AdminFile, "err", err)
		os.Exit(1)
	}
	logger.Info("admin list loaded", "file", cfg.AdminFile, "count", admins.Len())

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		logger.Error("discord session failed", "err", err)
		os.Exit(1)
	}

	gw := gateway.New(svc, admins, logger, cfg.ChartPoints, cfg.TopLimit)
	gw.Attach(session)

	if err := session.Open(); err != nil {
		logger.Error("discord connect failed", "err", err)
		os.Exit(1)
	}
	defer session.Close()

	logger.Info("gateway connected")
	<-ctx.Done()
	logger.Info("gateway shutdown")
}
