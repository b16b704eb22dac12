package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/colorspace"
)

// Format is an encoded image format.
type Format uint8

// Supported formats.
const (
	PNG Format = iota
	JPEG
	BMP
	TIFF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

// ParseFormat returns the format for a name or file extension such as
// "png", ".jpg" or "TIFF".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return 0, fmt.Errorf("codec: unknown format %q: %w", s, bitmap.ErrInvalidArgument)
}

// embedsICC reports whether the format can carry a color profile.
func (f Format) embedsICC() bool {
	return f == PNG || f == JPEG
}

// Encode writes b to w. quality (0-100) is used by JPEG.
//
// PNG and JPEG keep the pixels in the bitmap's color space and embed an ICC
// profile unless that space is sRGB. Other formats are written in sRGB.
// RGBA_F16 bitmaps are written with 16 bits per channel to PNG and TIFF.
func Encode(w io.Writer, b *bitmap.Bitmap, format Format, quality int) error {
	if b == nil {
		return fmt.Errorf("codec: nil bitmap: %w", bitmap.ErrInvalidArgument)
	}
	if b.IsRecycled() {
		return fmt.Errorf("codec: cannot encode a recycled bitmap: %w", bitmap.ErrIllegalState)
	}
	if quality < 0 || quality > 100 {
		return fmt.Errorf("codec: quality must be in [0, 100], got %d: %w", quality, bitmap.ErrInvalidArgument)
	}
	if format > TIFF {
		return fmt.Errorf("codec: %v: %w", format, bitmap.ErrInvalidArgument)
	}

	target := colorspace.Get(colorspace.SRGB)
	var profile []byte
	if cs := storedSpace(bitmap.ARGB8888, b.ColorSpace()); cs != nil && cs != target && format.embedsICC() {
		p, err := ICCProfile(cs)
		if err != nil {
			return err
		}
		target, profile = cs, p
	}
	deep := b.Config() == bitmap.RGBAF16 && (format == PNG || format == TIFF)
	img, err := toImage(b, target, deep)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch format {
	case PNG:
		err = png.Encode(&buf, img)
	case JPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case BMP:
		err = bmp.Encode(&buf, img)
	case TIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	if err != nil {
		return fmt.Errorf("codec: encode %v: %w", format, err)
	}

	data := buf.Bytes()
	if profile != nil {
		if format == PNG {
			data, err = insertICCP(data, profile)
		} else {
			data, err = insertAPP2(data, profile)
		}
		if err != nil {
			return err
		}
	}
	bitmap.Logger().Debug("codec: encoded", "format", format, "bytes", len(data), "icc", profile != nil)
	_, err = w.Write(data)
	return err
}

// toImage copies b into an NRGBA or NRGBA64 image with components encoded
// in target.
func toImage(b *bitmap.Bitmap, target *colorspace.ColorSpace, deep bool) (image.Image, error) {
	r := b.Bounds()
	var set func(x, y int, c colorspace.Color)
	var img image.Image
	if deep {
		m := image.NewNRGBA64(r)
		set = func(x, y int, c colorspace.Color) {
			m.SetNRGBA64(x, y, color.NRGBA64{R: unit(c.R, 0xffff), G: unit(c.G, 0xffff), B: unit(c.B, 0xffff), A: unit(c.A, 0xffff)})
		}
		img = m
	} else {
		m := image.NewNRGBA(r)
		set = func(x, y int, c colorspace.Color) {
			m.SetNRGBA(x, y, color.NRGBA{
				R: uint8(unit(c.R, 0xff)), G: uint8(unit(c.G, 0xff)), B: uint8(unit(c.B, 0xff)), A: uint8(unit(c.A, 0xff)),
			})
		}
		img = m
	}

	var conn *colorspace.Connector
	if cs := b.ColorSpace(); cs != nil && cs != target {
		conn = colorspace.Connect(cs, target)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c, err := b.Color(x, y)
			if err != nil {
				return nil, err
			}
			if conn != nil {
				rr, gg, bb := conn.TransformRGB(float64(c.R), float64(c.G), float64(c.B))
				c.R, c.G, c.B = float32(rr), float32(gg), float32(bb)
			}
			set(x, y, c)
		}
	}
	return img, nil
}

func unit(v float32, scale float32) uint16 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return uint16(scale)
	}
	return uint16(v*scale + 0.5)
}

// insertICCP adds an iCCP chunk right after IHDR.
func insertICCP(data, profile []byte) ([]byte, error) {
	const ihdrEnd = 8 + 8 + 13 + 4 // signature, header, body, crc
	if len(data) < ihdrEnd || string(data[12:16]) != "IHDR" {
		return nil, fmt.Errorf("codec: malformed PNG output: %w", bitmap.ErrIllegalState)
	}
	var z bytes.Buffer
	zw := zlib.NewWriter(&z)
	if _, err := zw.Write(profile); err != nil {
		return nil, fmt.Errorf("codec: compress profile: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("codec: compress profile: %w", err)
	}

	body := append([]byte("ICC profile\x00\x00"), z.Bytes()...)
	chunk := make([]byte, 8, 12+len(body))
	binary.BigEndian.PutUint32(chunk, uint32(len(body)))
	copy(chunk[4:], "iCCP")
	chunk = append(chunk, body...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:ihdrEnd]...)
	out = append(out, chunk...)
	return append(out, data[ihdrEnd:]...), nil
}

// maxAPP2Payload is the profile bytes that fit in one APP2 segment after
// the marker string and the sequence bytes.
const maxAPP2Payload = 0xffff - 2 - 14

// insertAPP2 adds ICC_PROFILE APP2 segments right after SOI.
func insertAPP2(data, profile []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0xff || data[1] != 0xd8 {
		return nil, fmt.Errorf("codec: malformed JPEG output: %w", bitmap.ErrIllegalState)
	}
	n := (len(profile) + maxAPP2Payload - 1) / maxAPP2Payload
	if n > 255 {
		return nil, fmt.Errorf("codec: ICC profile of %d bytes is too large: %w", len(profile), bitmap.ErrInvalidArgument)
	}
	out := append([]byte{}, data[:2]...)
	for i := 0; i < n; i++ {
		part := profile[i*maxAPP2Payload : min((i+1)*maxAPP2Payload, len(profile))]
		out = append(out, 0xff, 0xe2)
		out = binary.BigEndian.AppendUint16(out, uint16(2+len(iccMarker)+2+len(part)))
		out = append(out, iccMarker...)
		out = append(out, byte(i+1), byte(n))
		out = append(out, part...)
	}
	return append(out, data[2:]...), nil
}
