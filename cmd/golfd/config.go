package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	lfd "github.com/rmera/golfd"
	"github.com/rmera/golfd/render"
)

// Config represents the golfd configuration file (~/.config/golfd/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	DPI       *int     `yaml:"dpi"`
	SchemeA   string   `yaml:"scheme_a"`
	SchemeB   string   `yaml:"scheme_b"`
	SchemeFFT string   `yaml:"scheme_fft"`
	FFTMax    *float64 `yaml:"fft_max"`

	// Display bounds for files whose header doesn't set them.
	FallbackBounds *BoundsConfig `yaml:"fallback_bounds"`

	JPEGQuality *int   `yaml:"jpeg_quality"`
	FPS         *int   `yaml:"fps"`
	Pattern     string `yaml:"pattern"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// BoundsConfig holds display bounds. Missing keys keep the built-in defaults.
type BoundsConfig struct {
	VMin1 *float64 `yaml:"vmin1"`
	VMax1 *float64 `yaml:"vmax1"`
	VMin2 *float64 `yaml:"vmin2"`
	VMax2 *float64 `yaml:"vmax2"`
}

// over returns h with the bounds set in b replacing its own.
func (b *BoundsConfig) over(h lfd.Header) lfd.Header {
	if b == nil {
		return h
	}
	for _, p := range []struct {
		src *float64
		dst *float64
	}{{b.VMin1, &h.VMin1}, {b.VMax1, &h.VMax1}, {b.VMin2, &h.VMin2}, {b.VMax2, &h.VMax2}} {
		if p.src != nil {
			*p.dst = *p.src
		}
	}
	return h
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "golfd", "config.yaml")
}

// LoadConfig reads the config file at path, or at the default location if path is empty.
// A missing default file gives a zero Config, a missing explicit one is an error.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
		if path == "" {
			return Config{}, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return parseConfig(data, path)
}

func parseConfig(data []byte, path string) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.DPI != nil && *cfg.DPI <= 0 {
		return Config{}, fmt.Errorf("config %s: dpi must be positive, got %d", path, *cfg.DPI)
	}
	if cfg.JPEGQuality != nil && (*cfg.JPEGQuality < 1 || *cfg.JPEGQuality > 100) {
		return Config{}, fmt.Errorf("config %s: jpeg_quality must be between 1 and 100, got %d", path, *cfg.JPEGQuality)
	}
	return cfg, nil
}

// renderOptions are the settings shared by the commands that draw figures.
type renderOptions struct {
	dpi       int
	schemes   render.Schemes
	fftMax    float64
	quality   int
	fps       int
	pattern   string
	bigEndian bool
	fallback  lfd.Header
}

func readerFlags(o *renderOptions) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "big-endian",
			Usage:       "the floats in the file are big endian",
			Destination: &o.bigEndian,
		},
	}
}

func renderFlags(o *renderOptions) []cli.Flag {
	return append(readerFlags(o),
		&cli.IntFlag{
			Name:        "dpi",
			Usage:       "resolution of the images",
			Value:       render.DPI,
			Destination: &o.dpi,
		},
		&cli.StringFlag{
			Name:        "scheme-a",
			Usage:       "colour scheme for compound A",
			Value:       render.DefaultSchemes.A,
			Destination: &o.schemes.A,
		},
		&cli.StringFlag{
			Name:        "scheme-b",
			Usage:       "colour scheme for compound B",
			Value:       render.DefaultSchemes.B,
			Destination: &o.schemes.B,
		},
	)
}

// apply applies config file defaults to the options whose flags were not
// explicitly set.
func (o *renderOptions) apply(c *cli.Command, cfg Config) {
	if cfg.DPI != nil && !c.IsSet("dpi") {
		o.dpi = *cfg.DPI
	}
	if cfg.SchemeA != "" && !c.IsSet("scheme-a") {
		o.schemes.A = cfg.SchemeA
	}
	if cfg.SchemeB != "" && !c.IsSet("scheme-b") {
		o.schemes.B = cfg.SchemeB
	}
	if cfg.SchemeFFT != "" && !c.IsSet("scheme-fft") {
		o.schemes.FFT = cfg.SchemeFFT
	}
	if cfg.FFTMax != nil && !c.IsSet("fft-max") {
		o.fftMax = *cfg.FFTMax
	}
	if cfg.JPEGQuality != nil && !c.IsSet("jpeg-quality") {
		o.quality = *cfg.JPEGQuality
	}
	if cfg.FPS != nil && !c.IsSet("fps") {
		o.fps = *cfg.FPS
	}
	if cfg.Pattern != "" && !c.IsSet("pattern") {
		o.pattern = cfg.Pattern
	}
	o.fallback = cfg.FallbackBounds.over(o.fallback)
}

func (o *renderOptions) readerOptions() []lfd.Option {
	opts := []lfd.Option{lfd.WithDefaults(o.fallback)}
	if o.bigEndian {
		opts = append(opts, lfd.WithByteOrder(binary.BigEndian))
	}
	return opts
}
