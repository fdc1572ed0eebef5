package main

import (
	"context"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	lfd "github.com/rmera/golfd"
	"github.com/rmera/golfd/framestat"
	"github.com/rmera/golfd/internal/logger"
)

type infoReport struct {
	File       string                   `json:"file"`
	NFrames    int                      `json:"nframes"`
	Rows       int                      `json:"rows"`
	Columns    int                      `json:"columns"`
	Bounds     lfd.Bounds               `json:"bounds"`
	Lines      []string                 `json:"header"`
	Frames     []framestat.FrameSummary `json:"frames"`
	HistogramA *framestat.Histogram     `json:"histogram_a,omitempty"`
	HistogramB *framestat.Histogram     `json:"histogram_b,omitempty"`
}

func infoCmd() *cli.Command {
	var (
		o       renderOptions
		asJSON  bool
		all     bool
		bins    int
		stride  int
		fourier bool
	)
	flags := append(readerFlags(&o),
		&cli.BoolFlag{Name: "json", Usage: "print the report as JSON", Destination: &asJSON},
		&cli.BoolFlag{Name: "all", Usage: "summarize every frame, not only the last one", Destination: &all},
		&cli.IntFlag{Name: "stride", Usage: "with --all, summarize every n-th frame", Value: 1, Destination: &stride},
		&cli.IntFlag{Name: "bins", Usage: "histogram the concentrations in n bins (0 = no histogram)", Destination: &bins},
		&cli.BoolFlag{Name: "fourier-defaults", Usage: "assume the bounds of the Fourier figure when the header has none", Destination: &fourier},
	)
	return &cli.Command{
		Name:      "info",
		Usage:     "Print the header of a frame file and statistics of its frames",
		ArgsUsage: "FILE",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cfg, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			if cmd.Args().Len() != 1 {
				return cli.Exit("usage: golfd info FILE", 2)
			}
			o.fallback = lfd.ZeroDefaults
			if fourier {
				o.fallback = lfd.FourierDefaults
			}
			o.apply(cmd, cfg)
			R, err := lfd.Open(cmd.Args().First(), o.readerOptions()...)
			if err != nil {
				return err
			}
			defer R.Close()
			report, err := inspect(ctx, R, lfd.Policy{Last: !all, Stride: stride}, bins)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return report.print(stdout)
		},
	}
}

// inspect summarizes the frames of R selected by p, histogramming them in bins bins
// if bins is positive.
func inspect(ctx context.Context, R *lfd.Reader, p lfd.Policy, bins int) (*infoReport, error) {
	log := logger.FromContext(ctx)
	h := R.Header()
	report := &infoReport{
		File:    R.FileName(),
		NFrames: h.NFrames,
		Rows:    h.Rows,
		Columns: h.Columns,
		Bounds:  h.Bounds(),
		Lines:   h.Lines,
		Frames:  []framestat.FrameSummary{},
	}
	err := lfd.Walk(R, p, func(F *lfd.Frame, b lfd.Bounds) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Debug("summarizing frame", "frame", F.Index)
		report.Frames = append(report.Frames, framestat.SummarizeFrame(F))
		if bins <= 0 {
			return nil
		}
		if report.HistogramA == nil {
			var err error
			if report.HistogramA, report.HistogramB, err = histograms(F, b, bins); err != nil {
				return err
			}
		}
		report.HistogramA.Add(F.A)
		report.HistogramB.Add(F.B)
		return nil
	})
	if err != nil && !lfd.IsLastFrame(err) {
		return nil, err
	}
	return report, nil
}

// histograms returns empty histograms spanning the display bounds, or the range
// of the values in F for a compound without usable bounds.
func histograms(F *lfd.Frame, b lfd.Bounds, bins int) (*framestat.Histogram, *framestat.Histogram, error) {
	auto := framestat.AutoBounds(F)
	var hs [2]*framestat.Histogram
	for i := range hs {
		compound := i + 1
		vmin, vmax := b.Of(compound)
		if vmin >= vmax {
			vmin, vmax = auto.Of(compound)
		}
		var err error
		hs[i], err = framestat.NewHistogram(framestat.Dividers(vmin, vmax, bins))
		if err != nil {
			return nil, nil, err
		}
	}
	return hs[0], hs[1], nil
}

func (r *infoReport) print(w io.Writer) error {
	header := lfd.Header{NFrames: r.NFrames, Rows: r.Rows, Columns: r.Columns}
	if _, err := fmt.Fprintf(w, "%s\n%s\n%s\n", r.File, header, r.Bounds); err != nil {
		return err
	}
	for _, s := range r.Frames {
		_, err := fmt.Fprintf(w, "frame %d\n  A: %s\n  B: %s\n", s.Index, summary(s.A), summary(s.B))
		if err != nil {
			return err
		}
	}
	if r.HistogramA != nil {
		if _, err := fmt.Fprintf(w, "histogram A\n%s\nhistogram B\n%s\n", r.HistogramA, r.HistogramB); err != nil {
			return err
		}
	}
	return nil
}

func summary(s framestat.Summary) string {
	return fmt.Sprintf("min %g  max %g  mean %g  stddev %g", s.Min, s.Max, s.Mean, s.StdDev)
}
