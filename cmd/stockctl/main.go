// Command stockctl is the operator tool for the stock ledger database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-stock-ledger/internal/logging"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "stockctl",
		Usage: "inspect and adjust the stock ledger from the command line",
		Before: func(c *cli.Context) error {
			logging.Setup(os.Getenv("LOG_LEVEL"), "text", os.Stderr)
			return nil
		},
		Commands: []*cli.Command{
			sellCommand(),
			alertsCommand(),
			deleteSaleCommand(),
			seedCommand(),
			devTokenCommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.WithError(err).Fatal("stockctl failed")
	}
}
