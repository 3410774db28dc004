package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/casegen/casegen/server/app"
	"github.com/casegen/casegen/server/conf"
	"github.com/casegen/casegen/server/logger"
)

func main() {
	path := flag.String("config", "", "path to the TOML config file")
	flag.Parse()

	if err := conf.LoadConfig(*path); err != nil {
		logger.AppLog.Fatalf("%+v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logger.AppLog.Fatalf("%+v", err)
	}
}
