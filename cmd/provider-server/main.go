package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/keystored/attestation-appid/cmd/flags"
	"github.com/keystored/attestation-appid/httpserver"
	"github.com/keystored/attestation-appid/provider"
)

var serverFlags = append([]cli.Flag{
	&cli.StringFlag{
		Name:  "listen-addr",
		Value: "127.0.0.1:8080",
		Usage: "address to listen on for the provider API",
	},
	&cli.StringFlag{
		Name:     "registry-file",
		Required: true,
		Usage:    "YAML snapshot with the uid to package metadata mapping",
	},
}, flags.CommonFlags...)

func main() {
	app := &cli.App{
		Name:  "provider-server",
		Usage: "Serve package metadata lookups for key attestation application IDs",
		Flags: serverFlags,
		Action: func(cCtx *cli.Context) error {
			listenAddr := cCtx.String("listen-addr")
			registryFile := cCtx.String("registry-file")

			logger := flags.SetupLogger(cCtx)

			logger.Info("Loading package registry", "file", registryFile)
			registryData, err := os.Open(registryFile)
			if err != nil {
				logger.Error("Failed to open registry file", "err", err)
				return err
			}
			defer registryData.Close()

			registry, err := provider.LoadRegistry(registryData)
			if err != nil {
				logger.Error("Failed to load registry", "err", err)
				return err
			}

			handler := provider.NewHandler(registry, logger)

			server, err := httpserver.New(flags.ConfigureServer(cCtx, logger, listenAddr), handler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
