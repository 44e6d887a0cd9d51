package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/stellnox/toydb/internal"
	"github.com/stellnox/toydb/server/toydbwire"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config file (optional)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	cfg, err := internal.LoadConfig(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	level := slog.LevelInfo
	if cfg.Server.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	srv := toydbwire.NewServer(cfg.Database.Name)
	if err := srv.Run(toydbwire.ServerConfig{
		Addr:   cfg.Server.Addr,
		DBName: cfg.Database.Name,
	}); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}
