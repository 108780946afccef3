package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgball2608/wallify-bot/internal/app"
	"github.com/orgball2608/wallify-bot/pkg/logger"
	"go.uber.org/fx"
)

func main() {
	log := logger.New(logger.Opts{Env: os.Getenv("APP_ENV"), Level: os.Getenv("LOG_LEVEL")})

	application := fx.New(
		fx.Logger(log),
		app.Module,
	)

	if err := application.Start(context.Background()); err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	if err := application.Stop(context.Background()); err != nil {
		log.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}
}
