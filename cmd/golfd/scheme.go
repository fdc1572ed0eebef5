package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rmera/golfd/colorscheme"
	"github.com/rmera/golfd/internal/logger"
)

func schemeCmd() *cli.Command {
	var (
		name    string
		samples int
		format  string
		out     string
		list    bool
	)
	return &cli.Command{
		Name:  "scheme",
		Usage: "Write a colour scheme as a table of RGB values",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "colour scheme, add _r to reverse it", Value: "PiYG", Destination: &name},
			&cli.IntFlag{Name: "samples", Usage: "number of colours in the table", Value: 256, Destination: &samples},
			&cli.StringFlag{Name: "format", Usage: "table format (c, hex, json)", Value: "c", Destination: &format},
			&cli.StringFlag{Name: "out", Usage: "output file (default: standard output)", Destination: &out},
			&cli.BoolFlag{Name: "list", Usage: "list the available schemes", Destination: &list},
		},
		Action: func(ctx context.Context, cmd *cli.Command) (err error) {
			ctx, _, err = setup(ctx, cmd)
			if err != nil {
				return err
			}
			if list {
				_, err := fmt.Fprintln(stdout, strings.Join(colorscheme.Names(), "\n"))
				return err
			}
			f, err := colorscheme.ParseFormat(format)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			if out == "" {
				return colorscheme.Export(stdout, name, samples, f)
			}
			file, err := os.Create(out)
			if err != nil {
				return err
			}
			defer func() {
				if err2 := file.Close(); err == nil {
					err = err2
				}
			}()
			logger.FromContext(ctx).Info("writing scheme", "file", out, "scheme", name, "samples", samples)
			return colorscheme.Export(file, name, samples, f)
		},
	}
}
