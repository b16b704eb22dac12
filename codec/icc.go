package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"maps"
	"math"
	"sort"

	"golang.org/x/image/math/f64"
	"seehuhn.de/go/icc"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/colorspace"
	"github.com/gogpu/bitmap/internal/matrix"
)

// curveTolerance is the largest difference between a profile curve and a
// known transfer function for the two to be treated as the same.
const curveTolerance = 0.005

// curveSamples is the number of points at which curves are compared.
const curveSamples = 32

// ColorSpaceFromICC returns the color space described by an ICC profile.
//
// Only RGB display profiles with matrix columns and tone curves can be
// represented. The named color space is returned when the profile matches
// one; otherwise a custom space with a D50 white point is built. LUT tags
// are ignored when matrix and curve tags are present.
func ColorSpaceFromICC(data []byte) (*colorspace.ColorSpace, error) {
	p, err := icc.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("codec: icc: %v: %w", err, bitmap.ErrInvalidArgument)
	}
	if p.ColorSpace != icc.RGBSpace {
		return nil, fmt.Errorf("codec: icc: %v profiles are not supported: %w", p.ColorSpace, bitmap.ErrUnsupported)
	}
	for _, tag := range []icc.TagType{
		icc.RedMatrixColumn, icc.GreenMatrixColumn, icc.BlueMatrixColumn,
		icc.RedTRC, icc.GreenTRC, icc.BlueTRC,
	} {
		if _, ok := p.TagData[tag]; !ok {
			return nil, fmt.Errorf("codec: icc: profile has no matrix and curve tags: %w", bitmap.ErrUnsupported)
		}
	}

	toXYZ, err := profileMatrix(p)
	if err != nil {
		return nil, err
	}
	decode, err := profileCurve(p)
	if err != nil {
		return nil, err
	}

	curves := matchTransfer(decode)
	if len(curves) == 0 {
		return nil, fmt.Errorf("codec: icc: tone curve matches no known transfer function: %w", bitmap.ErrUnsupported)
	}
	for _, tf := range curves {
		params, _ := tf.Parameters()
		if named, ok := colorspace.Match(toXYZ, params); ok {
			return named, nil
		}
	}
	cs, err := colorspace.NewRGBFromMatrix("Unknown ICC profile", toXYZ, curves[0])
	if err != nil {
		return nil, fmt.Errorf("codec: icc: %w", err)
	}
	return colorspace.Canonical(cs), nil
}

// profileMatrix returns the D50 RGB to XYZ matrix of a matrix/TRC profile.
func profileMatrix(p *icc.Profile) (f64.Mat3, error) {
	// the transform prefers LUT tags, so hand it a copy without them
	mp := *p
	mp.TagData = maps.Clone(p.TagData)
	for _, tag := range []icc.TagType{icc.AToB0, icc.AToB1, icc.AToB2, icc.BToA0, icc.BToA1, icc.BToA2} {
		delete(mp.TagData, tag)
	}
	tr, err := icc.NewTransform(&mp, icc.DeviceToPCS, icc.RelativeColorimetric)
	if err != nil {
		return f64.Mat3{}, fmt.Errorf("codec: icc: %v: %w", err, bitmap.ErrInvalidArgument)
	}
	// one row per primary, transposed into columns below
	var rows f64.Mat3
	for i := 0; i < 3; i++ {
		rgb := []float64{0, 0, 0}
		rgb[i] = 1
		rows[3*i], rows[3*i+1], rows[3*i+2] = tr.ToXYZ(rgb)
	}
	return matrix.Transpose(rows), nil
}

// profileCurve returns the common tone curve of the three channels.
func profileCurve(p *icc.Profile) (func(float64) float64, error) {
	var curves [3]*icc.Curve
	for i, tag := range []icc.TagType{icc.RedTRC, icc.GreenTRC, icc.BlueTRC} {
		c, err := icc.DecodeCurve(p.TagData[tag])
		if err != nil {
			return nil, fmt.Errorf("codec: icc: %v: %w", err, bitmap.ErrInvalidArgument)
		}
		curves[i] = c
	}
	for i := 1; i <= curveSamples; i++ {
		x := float64(i) / curveSamples
		r := curves[0].Evaluate(x)
		if math.Abs(curves[1].Evaluate(x)-r) > curveTolerance || math.Abs(curves[2].Evaluate(x)-r) > curveTolerance {
			return nil, fmt.Errorf("codec: icc: per-channel tone curves are not supported: %w", bitmap.ErrUnsupported)
		}
	}
	return curves[0].Evaluate, nil
}

// matchTransfer returns the known transfer functions within tolerance of
// decode, closest first. Without one it fits a pure power curve.
func matchTransfer(decode func(float64) float64) []*colorspace.TransferFunction {
	type candidate struct {
		tf  *colorspace.TransferFunction
		err float64
	}
	var found []candidate
	for id := colorspace.SRGB; id <= colorspace.BT2020PQ; id++ {
		cs := colorspace.Get(id)
		if cs.Model() != colorspace.ModelRGB {
			continue
		}
		tf := cs.Transfer()
		if _, ok := tf.Parameters(); !ok {
			continue
		}
		if e := curveError(decode, tf.Decode); e <= curveTolerance {
			found = append(found, candidate{tf, e})
		}
	}
	if len(found) > 0 {
		sort.SliceStable(found, func(i, j int) bool { return found[i].err < found[j].err })
		tfs := make([]*colorspace.TransferFunction, len(found))
		for i, c := range found {
			tfs[i] = c.tf
		}
		return tfs
	}

	mid := decode(0.5)
	if !(mid > 0 && mid < 1) {
		return nil
	}
	gamma := math.Round(math.Log(mid)/math.Log(0.5)*256) / 256
	tf, err := colorspace.NewGammaTransfer(gamma)
	if err != nil || curveError(decode, tf.Decode) > curveTolerance {
		return nil
	}
	return []*colorspace.TransferFunction{tf}
}

func curveError(a, b func(float64) float64) float64 {
	var worst float64
	for i := 0; i <= curveSamples; i++ {
		x := float64(i) / curveSamples
		worst = max(worst, math.Abs(a(x)-b(x)))
	}
	return worst
}

// embeddedICC returns the ICC profile stored in PNG or JPEG data, or nil.
func embeddedICC(mime string, data []byte) ([]byte, error) {
	switch mime {
	case "image/png":
		return pngICC(data)
	case "image/jpeg":
		return jpegICC(data), nil
	}
	return nil, nil
}

// opaqueEncoding reports whether data declares pixels without alpha even
// though the decoded color model could hold it: PNG truecolor or gray
// without a tRNS chunk, and BMP below 32 bits per pixel.
func opaqueEncoding(mime string, data []byte) bool {
	switch mime {
	case "image/png":
		if len(data) < 26 || !bytes.HasPrefix(data, pngSignature) || string(data[12:16]) != "IHDR" {
			return false
		}
		if ct := data[25]; ct != 0 && ct != 2 {
			return false
		}
		return !pngHasChunk(data, "tRNS")
	case "image/bmp":
		if len(data) < 30 {
			return false
		}
		return binary.LittleEndian.Uint16(data[28:]) < 32
	}
	return false
}

// pngHasChunk reports whether a typ chunk precedes the image data.
func pngHasChunk(data []byte, typ string) bool {
	pos := len(pngSignature)
	for pos+8 <= len(data) {
		n := int(binary.BigEndian.Uint32(data[pos:]))
		t := string(data[pos+4 : pos+8])
		if t == typ {
			return true
		}
		if t == "IDAT" || t == "IEND" || n < 0 || pos+8+n > len(data) {
			return false
		}
		pos += 8 + n + 4
	}
	return false
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// pngICC reads the iCCP chunk. It must precede the image data.
func pngICC(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, nil
	}
	pos := len(pngSignature)
	for pos+8 <= len(data) {
		n := int(binary.BigEndian.Uint32(data[pos:]))
		typ := string(data[pos+4 : pos+8])
		body := pos + 8
		if n < 0 || body+n > len(data) {
			return nil, nil
		}
		switch typ {
		case "iCCP":
			return inflateICCP(data[body : body+n])
		case "IDAT", "IEND":
			return nil, nil
		}
		pos = body + n + 4 // crc
	}
	return nil, nil
}

// maxICCSize bounds an embedded profile. It is a little above the most a
// JPEG can carry in 255 APP2 segments.
const maxICCSize = 16 << 20

// inflateICCP decodes the chunk body: name, NUL, method, zlib stream.
func inflateICCP(chunk []byte) ([]byte, error) {
	nul := bytes.IndexByte(chunk, 0)
	if nul < 0 || nul+2 > len(chunk) || chunk[nul+1] != 0 {
		return nil, fmt.Errorf("codec: malformed iCCP chunk: %w", bitmap.ErrInvalidArgument)
	}
	zr, err := zlib.NewReader(bytes.NewReader(chunk[nul+2:]))
	if err != nil {
		return nil, fmt.Errorf("codec: iCCP: %v: %w", err, bitmap.ErrInvalidArgument)
	}
	defer func() { _ = zr.Close() }()
	profile, err := io.ReadAll(io.LimitReader(zr, maxICCSize+1))
	if err != nil {
		return nil, fmt.Errorf("codec: iCCP: %v: %w", err, bitmap.ErrInvalidArgument)
	}
	if len(profile) > maxICCSize {
		return nil, fmt.Errorf("codec: iCCP: profile larger than %d bytes: %w", maxICCSize, bitmap.ErrInvalidArgument)
	}
	return profile, nil
}

var iccMarker = []byte("ICC_PROFILE\x00")

// jpegICC collects the APP2 ICC_PROFILE segments in sequence order.
func jpegICC(data []byte) []byte {
	if len(data) < 4 || data[0] != 0xff || data[1] != 0xd8 {
		return nil
	}
	type part struct {
		seq  int
		data []byte
	}
	var parts []part
	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xff {
			return nil
		}
		marker := data[pos+1]
		if marker == 0xff {
			pos++
			continue
		}
		if marker == 0xda || marker == 0xd9 { // SOS, EOI
			break
		}
		n := int(binary.BigEndian.Uint16(data[pos+2:]))
		if n < 2 || pos+2+n > len(data) {
			return nil
		}
		seg := data[pos+4 : pos+2+n]
		if marker == 0xe2 && bytes.HasPrefix(seg, iccMarker) && len(seg) >= len(iccMarker)+2 {
			parts = append(parts, part{seq: int(seg[len(iccMarker)]), data: seg[len(iccMarker)+2:]})
		}
		pos += 2 + n
	}
	if len(parts) == 0 {
		return nil
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].seq < parts[j].seq })
	var profile []byte
	for _, p := range parts {
		profile = append(profile, p.data...)
	}
	return profile
}
