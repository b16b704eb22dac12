// Package colorspace implements named and custom color spaces, chromatic
// adaptation and connectors that convert colors between two spaces.
//
// A ColorSpace is an immutable value. The named spaces returned by Get are
// process-wide singletons: repeated lookups return the same pointer.
//
// Three color models are supported. RGB spaces are defined by primaries, a
// white point and a transfer function; CIE XYZ and CIE L*a*b* have fixed
// conversions to the D50 profile connection space.
package colorspace

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/bitmap/internal/matrix"
)

// Model is the color model of a ColorSpace.
type Model uint8

const (
	// ModelRGB is an additive model with three primaries.
	ModelRGB Model = iota
	// ModelXYZ is the CIE 1931 XYZ tristimulus model.
	ModelXYZ
	// ModelLab is the CIE 1976 L*a*b* model.
	ModelLab
)

func (m Model) String() string {
	switch m {
	case ModelRGB:
		return "RGB"
	case ModelXYZ:
		return "XYZ"
	case ModelLab:
		return "LAB"
	default:
		return "Unknown"
	}
}

// ComponentCount returns the number of components of the model.
func (m Model) ComponentCount() int { return 3 }

// Id bounds. Custom spaces use MinID; packed colors reserve 6 bits for ids.
const (
	MinID = -1
	MaxID = 63
)

// ColorSpace is a color model with its parameters. Only RGB spaces carry
// primaries, a white point and a transfer function.
type ColorSpace struct {
	name  string
	id    int
	model Model
	rgb   *rgbSpace
}

type rgbSpace struct {
	primaries  [6]float64
	whitePoint [2]float64
	transform  f64.Mat3
	inverse    f64.Mat3
	transfer   *TransferFunction
	min, max   float64
	wideGamut  bool
	srgb       bool
}

// RGBOption configures a custom RGB space.
type RGBOption func(*rgbOptions)

type rgbOptions struct {
	min, max    float64
	legacySrgb  bool
	hasTransfer bool
}

// WithRange sets the representable range of every component. The default
// range is [0, 1].
func WithRange(lo, hi float64) RGBOption {
	return func(o *rgbOptions) {
		o.min, o.max = lo, hi
	}
}

// WithLegacySrgbCheck selects the relaxed sRGB test used by older platforms:
// a space with sRGB primaries, a D65 white point and the [0, 1] range is
// reported as sRGB whatever its transfer curve.
func WithLegacySrgbCheck() RGBOption {
	return func(o *rgbOptions) {
		o.legacySrgb = true
	}
}

// NewRGB creates a custom RGB color space.
//
// primaries holds either 6 values (x, y for red, green and blue) or 9 values
// (X, Y, Z for each primary). whitePoint holds xy (2 values) or XYZ (3
// values). The RGB to XYZ matrix is derived from the primaries and white
// point. The returned space has id MinID.
func NewRGB(name string, primaries, whitePoint []float64, tf *TransferFunction, opts ...RGBOption) (*ColorSpace, error) {
	p, err := xyPrimaries(primaries)
	if err != nil {
		return nil, err
	}
	wp, err := whitePointXY(whitePoint)
	if err != nil {
		return nil, err
	}
	return customRGB(name, p, wp, computeXYZMatrix(p, wp), tf, opts)
}

// NewRGBFromMatrix creates a custom RGB color space from its row-major
// RGB to XYZ matrix. The matrix is kept as given; primaries and white
// point are derived from it.
func NewRGBFromMatrix(name string, toXYZ f64.Mat3, tf *TransferFunction, opts ...RGBOption) (*ColorSpace, error) {
	p := [6]float64{}
	for i := 0; i < 3; i++ {
		xy := xyzToXY([3]float64{toXYZ[i], toXYZ[3+i], toXYZ[6+i]})
		p[2*i], p[2*i+1] = xy[0], xy[1]
	}
	wp := xyzToXY(matrix.Apply(toXYZ, [3]float64{1, 1, 1}))
	return customRGB(name, p, wp, toXYZ, tf, opts)
}

// customRGB validates the arguments shared by the public constructors.
func customRGB(name string, p [6]float64, wp [2]float64, transform f64.Mat3,
	tf *TransferFunction, opts []RGBOption,
) (*ColorSpace, error) {
	o := rgbOptions{min: 0, max: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if name == "" {
		return nil, fmt.Errorf("colorspace: the name of a color space cannot be empty: %w", ErrInvalidArgument)
	}
	if tf == nil {
		return nil, fmt.Errorf("colorspace: transfer function cannot be nil: %w", ErrInvalidArgument)
	}
	if !(o.min < o.max) {
		return nil, fmt.Errorf("colorspace: invalid range: min=%g, max=%g; min must be strictly < max: %w",
			o.min, o.max, ErrInvalidArgument)
	}
	return newRGB(name, p, wp, transform, tf, o.min, o.max, MinID, o.legacySrgb), nil
}

func newRGB(name string, primaries [6]float64, wp [2]float64, transform f64.Mat3,
	tf *TransferFunction, lo, hi float64, id int, legacySrgb bool,
) *ColorSpace {
	inv, _ := matrix.Invert(transform)
	cs := &ColorSpace{
		name:  name,
		id:    id,
		model: ModelRGB,
		rgb: &rgbSpace{
			primaries:  primaries,
			whitePoint: wp,
			transform:  transform,
			inverse:    inv,
			transfer:   tf,
			min:        lo,
			max:        hi,
		},
	}
	cs.rgb.wideGamut = isWideGamut(primaries, lo, hi)
	cs.rgb.srgb = isSrgb(cs.rgb, id, legacySrgb)
	return cs
}

// withTransform returns a copy of cs with a new matrix and white point.
func (cs *ColorSpace) withTransform(transform f64.Mat3, wp [2]float64) *ColorSpace {
	r := cs.rgb
	return newRGB(cs.name, r.primaries, wp, transform, r.transfer, r.min, r.max, MinID, false)
}

// xyPrimaries accepts primaries as xy (6 values) or XYZ (9 values).
func xyPrimaries(p []float64) ([6]float64, error) {
	var out [6]float64
	switch len(p) {
	case 6:
		copy(out[:], p)
	case 9:
		for i := 0; i < 3; i++ {
			xy := xyzToXY([3]float64{p[3*i], p[3*i+1], p[3*i+2]})
			out[2*i], out[2*i+1] = xy[0], xy[1]
		}
	default:
		return out, fmt.Errorf("colorspace: primaries must have 6 (xy) or 9 (XYZ) values, got %d: %w",
			len(p), ErrInvalidArgument)
	}
	return out, nil
}

// computeXYZMatrix derives the RGB to XYZ matrix from xy primaries and a
// white point, scaled so that the white point has unit luminance.
func computeXYZMatrix(p [6]float64, wp [2]float64) f64.Mat3 {
	rx, ry := p[0], p[1]
	gx, gy := p[2], p[3]
	bx, by := p[4], p[5]
	wx, wy := wp[0], wp[1]

	oneRxRy := (1 - rx) / ry
	oneGxGy := (1 - gx) / gy
	oneBxBy := (1 - bx) / by
	oneWxWy := (1 - wx) / wy

	rxRy := rx / ry
	gxGy := gx / gy
	bxBy := bx / by
	wxWy := wx / wy

	bY := ((oneWxWy-oneRxRy)*(gxGy-rxRy) - (wxWy-rxRy)*(oneGxGy-oneRxRy)) /
		((oneBxBy-oneRxRy)*(gxGy-rxRy) - (bxBy-rxRy)*(oneGxGy-oneRxRy))
	gY := (wxWy - rxRy - bY*(bxBy-rxRy)) / (gxGy - rxRy)
	rY := 1 - gY - bY

	rYRy := rY / ry
	gYGy := gY / gy
	bYBy := bY / by

	return f64.Mat3{
		rYRy * rx, gYGy * gx, bYBy * bx,
		rY, gY, bY,
		rYRy * (1 - rx - ry), gYGy * (1 - gx - gy), bYBy * (1 - bx - by),
	}
}

var (
	srgbPrimaries     = [6]float64{0.640, 0.330, 0.300, 0.600, 0.150, 0.060}
	ntsc1953Primaries = [6]float64{0.67, 0.33, 0.21, 0.71, 0.14, 0.08}
)

// isWideGamut is true when the gamut covers more than 90% of NTSC 1953 and
// contains sRGB, or when the range extends below 0 and above 1.
func isWideGamut(p [6]float64, lo, hi float64) bool {
	return (area(p)/area(ntsc1953Primaries) > 0.9 && contains(p, srgbPrimaries)) || (lo < 0 && hi > 1)
}

func area(p [6]float64) float64 {
	rx, ry, gx, gy, bx, by := p[0], p[1], p[2], p[3], p[4], p[5]
	det := rx*gy + ry*bx + gx*by - gy*bx - ry*gx - rx*by
	return math.Abs(0.5 * det)
}

func cross(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}

// contains reports whether triangle p1 contains triangle p2.
func contains(p1, p2 [6]float64) bool {
	var p0 [6]float64
	for i := range p0 {
		p0[i] = p1[i] - p2[i]
	}
	if cross(p0[0], p0[1], p2[0]-p2[4], p2[1]-p2[5]) < 0 ||
		cross(p2[0]-p2[2], p2[1]-p2[3], p0[0], p0[1]) < 0 {
		return false
	}
	if cross(p0[2], p0[3], p2[2]-p2[0], p2[3]-p2[1]) < 0 ||
		cross(p2[2]-p2[4], p2[3]-p2[5], p0[2], p0[3]) < 0 {
		return false
	}
	if cross(p0[4], p0[5], p2[4]-p2[2], p2[5]-p2[3]) < 0 ||
		cross(p2[4]-p2[0], p2[5]-p2[1], p0[4], p0[5]) < 0 {
		return false
	}
	return true
}

func isSrgb(r *rgbSpace, id int, legacy bool) bool {
	if id == int(SRGB) {
		return true
	}
	if !approxSlice(r.primaries[:], srgbPrimaries[:]) || !approxSlice(r.whitePoint[:], IlluminantD65[:]) {
		return false
	}
	if r.min != 0 || r.max != 1 {
		return false
	}
	if legacy {
		return true
	}
	ref := parametric(srgbParams)
	for x := 0.0; x <= 1.0; x += 1 / 255.0 {
		if math.Abs(r.transfer.Encode(x)-ref.Encode(x)) > 1e-3 ||
			math.Abs(r.transfer.Decode(x)-ref.Decode(x)) > 1e-3 {
			return false
		}
	}
	return true
}

// approxSlice compares element-wise within 1e-3.
func approxSlice(a, b []float64) bool {
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if !(math.Abs(a[i]-b[i]) <= 1e-3) {
			return false
		}
	}
	return true
}

// Name returns the display name of the space.
func (cs *ColorSpace) Name() string { return cs.name }

// ID returns the registry id, or MinID for custom spaces.
func (cs *ColorSpace) ID() int { return cs.id }

// Model returns the color model.
func (cs *ColorSpace) Model() Model { return cs.model }

// ComponentCount returns the number of color components.
func (cs *ColorSpace) ComponentCount() int { return cs.model.ComponentCount() }

// MinValue returns the smallest representable value of a component.
func (cs *ColorSpace) MinValue(component int) float64 {
	switch cs.model {
	case ModelRGB:
		return cs.rgb.min
	case ModelLab:
		if component == 0 {
			return 0
		}
		return -128
	default:
		return -2
	}
}

// MaxValue returns the largest representable value of a component.
func (cs *ColorSpace) MaxValue(component int) float64 {
	switch cs.model {
	case ModelRGB:
		return cs.rgb.max
	case ModelLab:
		if component == 0 {
			return 100
		}
		return 128
	default:
		return 2
	}
}

// IsSrgb reports whether the space is equivalent to standard sRGB.
func (cs *ColorSpace) IsSrgb() bool {
	return cs.model == ModelRGB && cs.rgb.srgb
}

// IsWideGamut reports whether the space can represent colors outside sRGB.
// XYZ and Lab are always wide gamut.
func (cs *ColorSpace) IsWideGamut() bool {
	if cs.model != ModelRGB {
		return true
	}
	return cs.rgb.wideGamut
}

// Primaries returns a copy of the xy primaries, or nil for non-RGB spaces.
func (cs *ColorSpace) Primaries() []float64 {
	if cs.model != ModelRGB {
		return nil
	}
	p := cs.rgb.primaries
	return p[:]
}

// WhitePoint returns a copy of the xy white point, or nil for non-RGB spaces.
func (cs *ColorSpace) WhitePoint() []float64 {
	if cs.model != ModelRGB {
		return nil
	}
	wp := cs.rgb.whitePoint
	return wp[:]
}

// Transform returns the row-major RGB to XYZ matrix. Non-RGB spaces return
// the identity.
func (cs *ColorSpace) Transform() f64.Mat3 {
	if cs.model != ModelRGB {
		return matrix.Identity()
	}
	return cs.rgb.transform
}

// InverseTransform returns the row-major XYZ to RGB matrix.
func (cs *ColorSpace) InverseTransform() f64.Mat3 {
	if cs.model != ModelRGB {
		return matrix.Identity()
	}
	return cs.rgb.inverse
}

// Transfer returns the transfer function, or nil for non-RGB spaces.
func (cs *ColorSpace) Transfer() *TransferFunction {
	if cs.model != ModelRGB {
		return nil
	}
	return cs.rgb.transfer
}

// TransferParameters returns the parametric curve of an RGB space. ok is
// false for non-RGB spaces and for spaces with arbitrary curves.
func (cs *ColorSpace) TransferParameters() (TransferParameters, bool) {
	if cs.model != ModelRGB {
		return TransferParameters{}, false
	}
	return cs.rgb.transfer.Parameters()
}

func (cs *ColorSpace) clamp(x float64) float64 {
	return math.Min(math.Max(x, cs.rgb.min), cs.rgb.max)
}

// ToLinear decodes RGB values with the space's transfer function. Values
// of other models are returned unchanged.
func (cs *ColorSpace) ToLinear(v [3]float64) [3]float64 {
	if cs.model != ModelRGB {
		return v
	}
	t := cs.rgb.transfer
	return [3]float64{t.Decode(v[0]), t.Decode(v[1]), t.Decode(v[2])}
}

// FromLinear encodes linear RGB values with the space's transfer function.
func (cs *ColorSpace) FromLinear(v [3]float64) [3]float64 {
	if cs.model != ModelRGB {
		return v
	}
	t := cs.rgb.transfer
	return [3]float64{t.Encode(v[0]), t.Encode(v[1]), t.Encode(v[2])}
}

// clampedDecode clamps to the range, then decodes.
func (cs *ColorSpace) clampedDecode(x float64) float64 {
	return cs.rgb.transfer.Decode(cs.clamp(x))
}

// clampedEncode encodes, then clamps to the range.
func (cs *ColorSpace) clampedEncode(x float64) float64 {
	return cs.clamp(cs.rgb.transfer.Encode(x))
}

// Lab constants.
const (
	labA = 216.0 / 24389.0
	labB = 841.0 / 108.0
	labC = 4.0 / 29.0
	labD = 6.0 / 29.0
)

// ToXYZ converts a value of this space to CIE XYZ. RGB spaces produce XYZ
// relative to their own white point; Lab produces D50 XYZ.
func (cs *ColorSpace) ToXYZ(v [3]float64) [3]float64 {
	switch cs.model {
	case ModelRGB:
		lin := [3]float64{cs.clampedDecode(v[0]), cs.clampedDecode(v[1]), cs.clampedDecode(v[2])}
		return matrix.Apply(cs.rgb.transform, lin)
	case ModelLab:
		l := clampRange(v[0], 0, 100)
		a := clampRange(v[1], -128, 128)
		b := clampRange(v[2], -128, 128)
		fy := (l + 16) / 116
		fx := fy + a*0.002
		fz := fy - b*0.005
		return [3]float64{
			labInverse(fx) * IlluminantD50XYZ[0],
			labInverse(fy) * IlluminantD50XYZ[1],
			labInverse(fz) * IlluminantD50XYZ[2],
		}
	default:
		return [3]float64{clampRange(v[0], -2, 2), clampRange(v[1], -2, 2), clampRange(v[2], -2, 2)}
	}
}

// FromXYZ converts CIE XYZ to a value of this space.
func (cs *ColorSpace) FromXYZ(v [3]float64) [3]float64 {
	switch cs.model {
	case ModelRGB:
		lin := matrix.Apply(cs.rgb.inverse, v)
		return [3]float64{cs.clampedEncode(lin[0]), cs.clampedEncode(lin[1]), cs.clampedEncode(lin[2])}
	case ModelLab:
		fx := labForward(v[0] / IlluminantD50XYZ[0])
		fy := labForward(v[1] / IlluminantD50XYZ[1])
		fz := labForward(v[2] / IlluminantD50XYZ[2])
		return [3]float64{
			clampRange(116*fy-16, 0, 100),
			clampRange(500*(fx-fy), -128, 128),
			clampRange(200*(fy-fz), -128, 128),
		}
	default:
		return [3]float64{clampRange(v[0], -2, 2), clampRange(v[1], -2, 2), clampRange(v[2], -2, 2)}
	}
}

func labForward(t float64) float64 {
	if t > labA {
		return math.Cbrt(t)
	}
	return labB*t + labC
}

func labInverse(t float64) float64 {
	if t > labD {
		return t * t * t
	}
	return (t - labC) / labB
}

func clampRange(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// Equal reports whether two spaces are the same. RGB spaces compare their
// id, name, range, white point, primaries and transfer function.
func (cs *ColorSpace) Equal(o *ColorSpace) bool {
	if cs == o {
		return true
	}
	if cs == nil || o == nil {
		return false
	}
	if cs.id != o.id || cs.name != o.name || cs.model != o.model {
		return false
	}
	if cs.model != ModelRGB {
		return true
	}
	a, b := cs.rgb, o.rgb
	return a.min == b.min && a.max == b.max &&
		a.whitePoint == b.whitePoint &&
		a.primaries == b.primaries &&
		a.transfer.Equal(b.transfer)
}

func (cs *ColorSpace) String() string {
	return fmt.Sprintf("%s (id=%d, model=%s)", cs.name, cs.id, cs.model)
}
