// ================== cmd/api/main.go ==================
//
// @title DueTodo API
// @version 1.0
// @description Todo items with due dates that move to PAST_DUE once their due date-time passes
// @host localhost:8080
// @BasePath /
// @schemes http
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/xyz-asif/duetodo/internal/config"
	"github.com/xyz-asif/duetodo/internal/pkg/logger"
)

var version = "dev"

func main() {
	var cfg *config.Config

	app := &cli.Command{
		Name:    "duetodo",
		Usage:   "Todo API with due dates and automatic past-due tracking",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error); overrides LOG_LEVEL",
				Sources: cli.EnvVars("DUETODO_LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if lvl := c.String("log-level"); lvl != "" {
				cfg.LogLevel = lvl
			}

			l, err := logger.New(cfg.LogLevel, cfg.LogPretty)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			if !cfg.EnvFileLoaded {
				l.Debug().Msg("No .env file found")
			}
			return l.WithContext(ctx), nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and the background past-due sweep",
				Action: func(ctx context.Context, _ *cli.Command) error { return serve(ctx, cfg) },
			},
			{
				Name:   "sweep",
				Usage:  "run a single past-due sweep and exit",
				Action: func(ctx context.Context, _ *cli.Command) error { return sweepOnce(ctx, cfg) },
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return fmt.Errorf("unknown command %q. Run 'duetodo --help' for usage", c.Args().First())
			}
			return serve(ctx, cfg)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("duetodo exited with error")
		os.Exit(1)
	}
}
