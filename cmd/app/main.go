package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ordering/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load(".env")

	config, err := cmd.LoadConfig()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(config.LogLevel)
	slog.SetDefault(logger)

	app := cmd.NewCompositionRoot(config, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	logger.Info("Ordering application started", "staleOrderMaxAge", config.StaleOrderMaxAge.String())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Ordering application stopping")
}

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
}
