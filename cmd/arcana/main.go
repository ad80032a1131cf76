package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/pixil98/go-arcana/cmd/arcana/command"
	"github.com/pixil98/go-service"
)

func main() {
	// Secrets such as the owner id and database url may live in a .env file.
	envErr := godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	})))
	if envErr != nil {
		slog.Debug("no .env file loaded", "error", envErr)
	}

	app, err := service.NewApp(&command.Config{}, command.BuildWorkers)
	if err != nil {
		slog.Error("creating application", "error", err)
		os.Exit(1)
	}

	err = app.Run(context.Background())
	if err != nil {
		slog.Error("running application", "error", err)
		os.Exit(1)
	}

	slog.Info("exiting")
}

func logLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(os.Getenv("ARCANA_LOG_LEVEL"))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
