// Command bitmapinfo decodes an image and prints its pixel format and color
// space. It can also convert the image to another color space and write it
// out again.
//
// Usage:
//
//	bitmapinfo [flags] image
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/codec"
	"github.com/gogpu/bitmap/colorspace"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("bitmapinfo: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	s, rest, err := parseArgs(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("expected one image file, got %d arguments", len(rest))
	}
	if s.Verbose {
		bitmap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	opts, err := s.decodeOptions()
	if err != nil {
		return err
	}
	f, err := os.Open(rest[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	b, info, err := codec.Decode(f, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", rest[0], err)
	}
	describe(stdout, rest[0], b, info)

	if s.Output == "" {
		return nil
	}
	format, err := codec.ParseFormat(filepath.Ext(s.Output))
	if err != nil {
		return err
	}
	out, err := os.Create(s.Output)
	if err != nil {
		return err
	}
	if err := codec.Encode(out, b, format, s.Quality); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "wrote %s (%v)\n", s.Output, format)
	return err
}

func describe(w io.Writer, name string, b *bitmap.Bitmap, info codec.Info) {
	fmt.Fprintf(w, "file:          %s\n", name)
	fmt.Fprintf(w, "mime type:     %s\n", info.MimeType)
	fmt.Fprintf(w, "size:          %dx%d\n", b.Width(), b.Height())
	fmt.Fprintf(w, "config:        %v\n", b.Config())
	fmt.Fprintf(w, "has alpha:     %v\n", b.HasAlpha())
	fmt.Fprintf(w, "premultiplied: %v\n", b.IsPremultiplied())
	fmt.Fprintf(w, "density:       %d\n", b.Density())
	fmt.Fprintf(w, "byte count:    %d\n", b.ByteCount())
	fmt.Fprintf(w, "icc profile:   %v\n", info.HasICC)

	cs := b.ColorSpace()
	if cs == nil {
		fmt.Fprintln(w, "color space:   none")
		return
	}
	describeSpace(w, cs)
}

func describeSpace(w io.Writer, cs *colorspace.ColorSpace) {
	fmt.Fprintf(w, "color space:   %s\n", cs.Name())
	fmt.Fprintf(w, "  id:          %d\n", cs.ID())
	fmt.Fprintf(w, "  model:       %v\n", cs.Model())
	fmt.Fprintf(w, "  srgb:        %v\n", cs.IsSrgb())
	fmt.Fprintf(w, "  wide gamut:  %v\n", cs.IsWideGamut())
	if cs.Model() != colorspace.ModelRGB {
		return
	}
	fmt.Fprintf(w, "  primaries:   %s\n", floats(cs.Primaries()))
	fmt.Fprintf(w, "  white point: %s\n", floats(cs.WhitePoint()))
	if p, ok := cs.TransferParameters(); ok {
		fmt.Fprintf(w, "  transfer:    a=%.6g b=%.6g c=%.6g d=%.6g e=%.6g f=%.6g g=%.6g\n",
			p.A, p.B, p.C, p.D, p.E, p.F, p.G)
	} else {
		fmt.Fprintln(w, "  transfer:    non-parametric")
	}
	m := cs.Transform()
	fmt.Fprintln(w, "  rgb to xyz:")
	for row := 0; row < 3; row++ {
		fmt.Fprintf(w, "    %s\n", floats(m[3*row:3*row+3]))
	}
}

func floats(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.6f", x)
	}
	return strings.Join(parts, " ")
}
