// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/blockcrypt/cmd/app/commands"
	"github.com/allisson/blockcrypt/internal/app"
	"github.com/allisson/blockcrypt/internal/config"
	cryptoService "github.com/allisson/blockcrypt/internal/crypto/service"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "blockcrypt",
		Usage:   "Authenticated encryption and chunked envelope transport service",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				},
			},
			{
				Name:  "keygen",
				Usage: "Generate a new envelope encryption key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "id",
						Aliases: []string{"i"},
						Value:   "",
						Usage:   "Key ID (e.g., prod-envelope-key-2026)",
					},
					&cli.StringFlag{
						Name:  "kms-key-uri",
						Value: "",
						Usage: "KMS key URI used to wrap the generated key (e.g., gcpkms://..., base64key://...)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
					return commands.RunKeygen(
						ctx,
						cryptoService.NewKMSService(),
						logger,
						os.Stdout,
						cmd.String("id"),
						cmd.String("kms-key-uri"),
					)
				},
			},
			{
				Name:  "encrypt",
				Usage: "Encrypt a JSON payload into a chunked envelope",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"f"},
						Value:   "",
						Usage:   "Path to the JSON payload (omit to read from stdin)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunEncrypt(commands.DefaultIO(), cmd.String("input"))
				},
			},
			{
				Name:  "decrypt",
				Usage: "Decrypt a chunked envelope back into its JSON payload",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"f"},
						Value:   "",
						Usage:   "Path to the envelope JSON (omit to read from stdin)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunDecrypt(commands.DefaultIO(), cmd.String("input"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
