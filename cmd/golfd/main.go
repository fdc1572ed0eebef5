// Command golfd inspects LaFluxxy frame files and renders their frames,
// alone or next to their Fourier transforms.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"github.com/rmera/golfd/internal/logger"
)

var (
	configFile string
	logLevel   string
	logFormat  string

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to the config file (default: user config dir/golfd/config.yaml)",
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "golfd",
		Usage: "Inspect and render LaFluxxy frame files",
		Flags: globalFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			infoCmd(),
			fourierCmd(),
			framesCmd(),
			schemeCmd(),
		},
	}
}

// setup loads the config file and installs the logger. Every command calls it
// first, once all flags are parsed.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, Config, error) {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return ctx, cfg, err
	}
	if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
	l, err := logger.New(stderr, logger.ParseLevel(logLevel), logFormat)
	if err != nil {
		return ctx, cfg, err
	}
	//the heads-ups of the reader go through the same handler.
	slog.SetDefault(l)
	return logger.WithContext(ctx, l), cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp().Run(ctx, os.Args)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
