package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/keystored/attestation-appid/cmd/flags"
	"github.com/keystored/attestation-appid/gatherer"
	"github.com/keystored/attestation-appid/provider"
)

var appidFlags = append([]cli.Flag{
	&cli.UintFlag{
		Name:     "uid",
		Required: true,
		Usage:    "UID to gather the attestation application ID for",
	},
	&cli.StringFlag{
		Name:  "provider-addr",
		Usage: "fixed provider base URL; skips DNS discovery",
	},
	&cli.StringFlag{
		Name:  "dns-resolver",
		Value: "127.0.0.53:53",
		Usage: "DNS resolver to query for provider SRV discovery",
	},
	&cli.StringFlag{
		Name:  "format",
		Value: "hex",
		Usage: "output format: 'hex' or 'base64'",
	},
}, flags.CommonFlags...)

func main() {
	app := &cli.App{
		Name:  "appid",
		Usage: "Gather and print the encoded attestation application ID for a UID",
		Flags: appidFlags,
		Action: func(cCtx *cli.Context) error {
			uid := uint32(cCtx.Uint("uid"))
			format := cCtx.String("format")

			logger := flags.SetupLogger(cCtx)

			var resolver provider.Resolver
			if addr := cCtx.String("provider-addr"); addr != "" {
				resolver = &provider.StaticResolver{Addr: addr}
			} else {
				resolver = &provider.SRVResolver{
					ResolverAddr: cCtx.String("dns-resolver"),
					Log:          logger,
				}
			}

			client := provider.NewClient(resolver, logger)
			encoded, err := gatherer.New(client, logger).Gather(uid)
			if err != nil {
				logger.Error("Failed to gather attestation application id", "err", err, "uid", uid)
				return err
			}

			switch format {
			case "hex":
				fmt.Println(hex.EncodeToString(encoded))
			case "base64":
				fmt.Println(base64.StdEncoding.EncodeToString(encoded))
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
