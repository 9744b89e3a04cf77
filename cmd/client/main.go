package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/MKhiriev/go-agro-keeper/internal/adapter"
	"github.com/MKhiriev/go-agro-keeper/internal/client"
	"github.com/MKhiriev/go-agro-keeper/internal/config"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
)

func main() {
	log, _ := logger.NewConsoleLogger("agro-client").WithLevel("warn")

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, client.Usage)
		os.Exit(2)
	}

	api, err := adapter.NewHTTPAPIAdapter(cfg.Adapter, cfg.Token, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create api adapter")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = client.NewApp(api, os.Stdout, log).Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, client.ErrUsage) || errors.Is(err, client.ErrUnknownCommand) {
			fmt.Fprintln(os.Stderr, client.Usage)
			os.Exit(2)
		}
		os.Exit(1)
	}
}
