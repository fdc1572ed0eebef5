package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	lfd "github.com/rmera/golfd"
	"github.com/rmera/golfd/framestat"
	"github.com/rmera/golfd/internal/logger"
	"github.com/rmera/golfd/render"
)

const (
	defaultPattern = "%04d.png"
	defaultFPS     = 10
)

func framesCmd() *cli.Command {
	var (
		o          renderOptions
		avi        string
		stride     int
		autoBounds bool
	)
	flags := append(renderFlags(&o),
		&cli.StringFlag{
			Name:        "pattern",
			Usage:       "image file names, formatted with the frame index; .png or .jpg",
			Value:       defaultPattern,
			Destination: &o.pattern,
		},
		&cli.StringFlag{
			Name:        "avi",
			Usage:       "write the frames to this MJPEG movie; images are only written if --pattern is also given",
			Destination: &avi,
		},
		&cli.IntFlag{Name: "fps", Usage: "frames per second of the movie", Value: defaultFPS, Destination: &o.fps},
		&cli.IntFlag{Name: "jpeg-quality", Usage: "JPEG quality (1-100) for .jpg images and the movie", Value: render.DefaultQuality, Destination: &o.quality},
		&cli.IntFlag{Name: "stride", Usage: "only draw every n-th frame", Value: 1, Destination: &stride},
		&cli.BoolFlag{Name: "auto-bounds", Usage: "use the range of each frame for compounds without display bounds", Destination: &autoBounds},
	)
	return &cli.Command{
		Name:      "frames",
		Usage:     "Draw every frame of a file as an image or a movie",
		ArgsUsage: "FILE [vmin1 vmax1 vmin2 vmax2]",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cfg, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			args := cmd.Args().Slice()
			if len(args) != 1 && len(args) != 5 {
				return cli.Exit("usage: golfd frames FILE [vmin1 vmax1 vmin2 vmax2]", 2)
			}
			o.fallback = lfd.ZeroDefaults
			o.apply(cmd, cfg)
			p := lfd.Policy{Stride: stride}
			if len(args) == 5 {
				b, err := parseBounds(args[1:])
				if err != nil {
					return cli.Exit(err.Error(), 2)
				}
				p.Bounds = &b
			}
			images := avi == "" || cmd.IsSet("pattern")
			if images {
				if err := checkPattern(o.pattern); err != nil {
					return cli.Exit(err.Error(), 2)
				}
			}
			j := frameJob{
				in:         args[0],
				avi:        avi,
				images:     images,
				autoBounds: autoBounds,
				policy:     p,
				o:          &o,
			}
			return j.run(ctx)
		},
	}
}

// checkPattern makes sure pattern gives a different, well-formed file name for each frame index.
func checkPattern(pattern string) error {
	first, second := fmt.Sprintf(pattern, 0), fmt.Sprintf(pattern, 1)
	if first == second || strings.Contains(first, "%!") {
		return fmt.Errorf("image pattern %q needs exactly one integer verb, like %%04d", pattern)
	}
	return nil
}

// parseBounds reads vmin1, vmax1, vmin2 and vmax2, in that order.
func parseBounds(args []string) (lfd.Bounds, error) {
	var v [4]float64
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return lfd.Bounds{}, fmt.Errorf("bad display bound %q: %w", a, err)
		}
		v[i] = f
	}
	return lfd.Bounds{VMin1: v[0], VMax1: v[1], VMin2: v[2], VMax2: v[3]}, nil
}

type frameJob struct {
	in         string
	avi        string
	images     bool
	autoBounds bool
	policy     lfd.Policy
	o          *renderOptions
}

func (j *frameJob) run(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)
	R, err := lfd.Open(j.in, j.o.readerOptions()...)
	if err != nil {
		return err
	}
	defer R.Close()
	h := R.Header()
	fmt.Fprintf(stdout, "%s\n%s\n", h, h.Bounds())
	var movie *render.Movie
	if j.avi != "" {
		movie = render.NewMovie(j.avi, j.o.fps, j.o.quality)
		defer func() {
			err = errors.Join(err, movie.Close())
		}()
	}
	return lfd.Walk(R, j.policy, func(F *lfd.Frame, b lfd.Bounds) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if j.autoBounds && j.policy.Bounds == nil {
			b = fillBounds(b, F)
		}
		fig := render.FramePair(F, b, j.o.schemes)
		fig.DPI = j.o.dpi
		img, err := fig.Image()
		if err != nil {
			return err
		}
		if j.images {
			name := fmt.Sprintf(j.o.pattern, F.Index)
			log.Info("writing image", "file", name, "frame", F.Index)
			if err := render.SaveImage(img, name, j.o.quality); err != nil {
				return err
			}
		}
		if movie != nil {
			log.Debug("adding movie frame", "file", j.avi, "frame", F.Index)
			return movie.AddImage(img)
		}
		return nil
	})
}

// fillBounds replaces the empty ranges in b by the range of the values in F.
func fillBounds(b lfd.Bounds, F *lfd.Frame) lfd.Bounds {
	auto := framestat.AutoBounds(F)
	if b.VMin1 >= b.VMax1 {
		b.VMin1, b.VMax1 = auto.VMin1, auto.VMax1
	}
	if b.VMin2 >= b.VMax2 {
		b.VMin2, b.VMax2 = auto.VMin2, auto.VMax2
	}
	return b
}
