package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ptvplanner/internal/cli"
	"github.com/ptvplanner/internal/common/config"
	"github.com/ptvplanner/internal/common/logger"
	"github.com/ptvplanner/internal/gtfs-realtime/feed"
	"github.com/ptvplanner/internal/gtfs-static/loader"
	"github.com/ptvplanner/internal/planner"
)

func main() {
	// .env is optional; real environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(
		logger.ParseLogLevel(cfg.Logging.Level),
		logger.ConsoleWriter(),
		logger.FileWriter(cfg.Logging.FilePath),
	)

	log.Info("PTV Planner starting",
		"version", "1.0.0",
		"log_level", cfg.Logging.Level,
		"static_source", cfg.GTFSStatic.Source,
		"lookahead", cfg.Query.LookaheadWindow,
	)

	loc, err := time.LoadLocation(cfg.Query.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone", "timezone", cfg.Query.Timezone, "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tables, err := loader.New(log).Load(ctx, cfg.GTFSStatic.Source, cfg.GTFSStatic.CacheDir)
	if err != nil {
		log.Fatal("Failed to load schedule", "error", err)
	}

	feedsCfg, err := config.LoadFeeds(cfg.GTFSRealtime.FeedsPath)
	if err != nil {
		log.Fatal("Failed to load realtime feeds config", "error", err)
	}
	feedClient := feed.NewClient(cfg.GTFSRealtime, feedsCfg, cfg.GTFSStatic.CacheDir, log)

	session := planner.NewSession(tables, planner.Options{
		Lookahead: cfg.Query.LookaheadWindow,
		Location:  loc,
	}, log)

	shell := cli.NewShell(session, feedClient, loc, log)
	if err := shell.Run(ctx); err != nil {
		log.Fatal("Interactive session failed", "error", err)
	}

	log.Info("PTV Planner stopped")
}
