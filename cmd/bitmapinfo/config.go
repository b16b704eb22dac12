package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/codec"
	"github.com/gogpu/bitmap/colorspace"
)

// settings are the tool's options. They can come from a TOML file and are
// then overridden by any flag given on the command line.
type settings struct {
	Pixel         string `toml:"pixel_config"`
	ColorSpace    string `toml:"color_space"`
	SampleSize    int    `toml:"sample_size"`
	Density       int    `toml:"density"`
	TargetDensity int    `toml:"target_density"`
	Unpremul      bool   `toml:"unpremultiplied"`
	Output        string `toml:"output"`
	Quality       int    `toml:"quality"`
	Verbose       bool   `toml:"verbose"`
}

func defaultSettings() settings {
	return settings{
		Pixel:   bitmap.ARGB8888.String(),
		Quality: 90,
	}
}

// loadSettings reads a TOML file over s. Unknown keys are an error.
func loadSettings(path string, s *settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// parseArgs parses the command line. Flags that were set explicitly win
// over the file named by -config.
func parseArgs(args []string) (settings, []string, error) {
	fs := flag.NewFlagSet("bitmapinfo", flag.ContinueOnError)
	var (
		file    = fs.String("config", "", "TOML file with default settings")
		flags   = defaultSettings()
		visited = map[string]bool{}
	)
	fs.StringVar(&flags.Pixel, "pixel", flags.Pixel, "pixel config to decode to (ALPHA_8, RGB_565, ARGB_8888, RGBA_F16)")
	fs.StringVar(&flags.ColorSpace, "space", "", "named color space to convert to, e.g. DISPLAY_P3")
	fs.IntVar(&flags.SampleSize, "sample", 0, "subsampling factor")
	fs.IntVar(&flags.Density, "density", 0, "density of the source image")
	fs.IntVar(&flags.TargetDensity, "target-density", 0, "density to scale to")
	fs.BoolVar(&flags.Unpremul, "unpremultiplied", false, "keep color channels unpremultiplied")
	fs.StringVar(&flags.Output, "o", "", "re-encode to this file; the extension picks the format")
	fs.IntVar(&flags.Quality, "quality", flags.Quality, "JPEG quality (0-100)")
	fs.BoolVar(&flags.Verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return settings{}, nil, err
	}
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })

	s := defaultSettings()
	if *file != "" {
		if err := loadSettings(*file, &s); err != nil {
			return settings{}, nil, err
		}
	}
	for name, apply := range map[string]func(){
		"pixel":           func() { s.Pixel = flags.Pixel },
		"space":           func() { s.ColorSpace = flags.ColorSpace },
		"sample":          func() { s.SampleSize = flags.SampleSize },
		"density":         func() { s.Density = flags.Density },
		"target-density":  func() { s.TargetDensity = flags.TargetDensity },
		"unpremultiplied": func() { s.Unpremul = flags.Unpremul },
		"o":               func() { s.Output = flags.Output },
		"quality":         func() { s.Quality = flags.Quality },
		"v":               func() { s.Verbose = flags.Verbose },
	} {
		if visited[name] {
			apply()
		}
	}
	return s, fs.Args(), nil
}

// decodeOptions turns the settings into codec options.
func (s settings) decodeOptions() (*codec.Options, error) {
	opts := codec.DefaultOptions()
	cfg, err := bitmap.ParseConfig(s.Pixel)
	if err != nil {
		return nil, err
	}
	opts.Config = cfg
	if s.ColorSpace != "" {
		cs, ok := colorspace.Lookup(s.ColorSpace)
		if !ok {
			return nil, fmt.Errorf("unknown color space %q: %w", s.ColorSpace, bitmap.ErrInvalidArgument)
		}
		opts.ColorSpace = cs
	}
	opts.SampleSize = s.SampleSize
	opts.Density = s.Density
	opts.TargetDensity = s.TargetDensity
	opts.Premultiplied = !s.Unpremul
	return opts, nil
}
