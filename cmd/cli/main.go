package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/authshell/internal/buildinfo"
	"github.com/dmitrijs2005/authshell/internal/client/cli"
	"github.com/dmitrijs2005/authshell/internal/client/config"
	"github.com/dmitrijs2005/authshell/internal/logging"

	_ "github.com/joho/godotenv/autoload"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, logging.Format(cfg.LogFormat))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to start", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
