package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	lfd "github.com/rmera/golfd"
	"github.com/rmera/golfd/internal/logger"
	"github.com/rmera/golfd/render"
)

// defaultFFTMax is the top of the colour range of the transform panels.
const defaultFFTMax = 256

func fourierCmd() *cli.Command {
	var o renderOptions
	flags := append(renderFlags(&o),
		&cli.StringFlag{
			Name:        "scheme-fft",
			Usage:       "colour scheme for the Fourier transforms",
			Value:       render.DefaultSchemes.FFT,
			Destination: &o.schemes.FFT,
		},
		&cli.Float64Flag{
			Name:        "fft-max",
			Usage:       "magnitude shown with the last colour of the transform panels",
			Value:       defaultFFTMax,
			Destination: &o.fftMax,
		},
	)
	return &cli.Command{
		Name:      "fourier",
		Usage:     "Draw the last frame of a file next to the Fourier transforms of its grids",
		ArgsUsage: "FILE OUT.png",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cfg, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			if cmd.Args().Len() != 2 {
				return cli.Exit("usage: golfd fourier FILE OUT.png", 2)
			}
			o.fallback = lfd.FourierDefaults
			o.apply(cmd, cfg)
			return fourierImage(ctx, cmd.Args().Get(0), cmd.Args().Get(1), &o)
		},
	}
}

func fourierImage(ctx context.Context, in, out string, o *renderOptions) error {
	log := logger.FromContext(ctx)
	R, err := lfd.Open(in, o.readerOptions()...)
	if err != nil {
		return err
	}
	defer R.Close()
	h := R.Header()
	fmt.Fprintf(stdout, "%s\n%s\n", h, h.Bounds())
	err = lfd.Walk(R, lfd.Policy{Last: true}, func(F *lfd.Frame, b lfd.Bounds) error {
		fig := render.FourierQuad(F, b, o.schemes, o.fftMax)
		fig.DPI = o.dpi
		log.Info("writing image", "file", out, "frame", F.Index)
		return fig.Save(out)
	})
	if lfd.IsLastFrame(err) {
		return fmt.Errorf("%s has no frames to draw (nframes = %d)", in, h.NFrames)
	}
	return err
}
