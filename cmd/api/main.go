package main

import (
	"log"
	"log/slog"
	"os"

	"ticketpix/config"
	"ticketpix/internal/api"
	"ticketpix/pkg/logger"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}

	logger.Setup(logger.Options{
		Level:   cfg.LogLevel,
		Console: cfg.ConsoleLogs(),
		Service: "ticketpix-api",
	})

	if err := api.Run(cfg); err != nil {
		slog.Error("API service stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
