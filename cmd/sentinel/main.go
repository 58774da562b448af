package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/sentinelai/sentinel-cli/internal/buildinfo"
	"github.com/sentinelai/sentinel-cli/internal/client/cli"
	"github.com/sentinelai/sentinel-cli/internal/client/config"
	"github.com/sentinelai/sentinel-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
