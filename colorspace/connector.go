package colorspace

import (
	"golang.org/x/image/math/f64"

	"github.com/gogpu/bitmap/internal/cache"
	"github.com/gogpu/bitmap/internal/matrix"
)

// RenderIntent selects how out-of-gamut colors and white points are handled
// by a Connector.
type RenderIntent uint8

const (
	// Perceptual compresses the source gamut into the destination gamut.
	// It is currently mapped like Relative.
	Perceptual RenderIntent = iota
	// Relative maps white to white and clips colors outside the destination.
	Relative
	// Saturation preserves saturation. It is currently mapped like Relative.
	Saturation
	// Absolute keeps colorimetric values, so white points are not adapted.
	Absolute
)

func (i RenderIntent) String() string {
	switch i {
	case Perceptual:
		return "PERCEPTUAL"
	case Relative:
		return "RELATIVE"
	case Saturation:
		return "SATURATION"
	case Absolute:
		return "ABSOLUTE"
	default:
		return "UNKNOWN"
	}
}

// Connector converts colors from a source space to a destination space.
//
// RGB to RGB connectors precompute a single matrix. Other pairs go through
// the D50 profile connection space.
type Connector struct {
	source      *ColorSpace
	destination *ColorSpace
	intent      RenderIntent

	kind connectorKind

	// generic path
	pcsSource      *ColorSpace
	pcsDestination *ColorSpace
	scale          *[3]float64

	// rgb path
	transform f64.Mat3
}

type connectorKind uint8

const (
	connectIdentity connectorKind = iota
	connectRGB
	connectPCS
)

// connectorKey identifies a cached RGB to RGB connector.
type connectorKey struct {
	src, dst *ColorSpace
	intent   RenderIntent
}

// rgbConnectors holds recently used RGB to RGB connectors. Connectors are
// immutable, so one instance can be shared.
var rgbConnectors = cache.New[connectorKey, *Connector](64)

// Connect returns a perceptual connector from src to dst. A nil space
// stands for sRGB.
func Connect(src, dst *ColorSpace) *Connector {
	return ConnectIntent(src, dst, Perceptual)
}

// ConnectIntent returns a connector from src to dst with the given intent.
// When both spaces are equal the connector is the identity and its intent is
// Relative.
func ConnectIntent(src, dst *ColorSpace, intent RenderIntent) *Connector {
	if src == nil {
		src = Get(SRGB)
	}
	if dst == nil {
		dst = Get(SRGB)
	}
	if src.Equal(dst) {
		return &Connector{source: src, destination: src, intent: Relative, kind: connectIdentity}
	}
	if src.model == ModelRGB && dst.model == ModelRGB {
		return rgbConnectors.GetOrCreate(connectorKey{src, dst, intent}, func() *Connector {
			return &Connector{
				source: src, destination: dst, intent: intent,
				kind:      connectRGB,
				transform: rgbTransform(src.rgb, dst.rgb, intent),
			}
		})
	}
	c := &Connector{source: src, destination: dst, intent: intent}
	c.kind = connectPCS
	c.pcsSource = adaptToD50(src)
	c.pcsDestination = adaptToD50(dst)
	c.scale = absoluteScale(src, dst, intent)
	return c
}

// rgbTransform returns the linear RGB to linear RGB matrix of a connector.
func rgbTransform(src, dst *rgbSpace, intent RenderIntent) f64.Mat3 {
	if approxSlice(src.whitePoint[:], dst.whitePoint[:]) {
		return matrix.Mul(dst.inverse, src.transform)
	}
	transform := src.transform
	inverse := dst.inverse
	// The absolute white ratio compares the XYZ white of a D50 side with
	// the Bradford cone response of an adapted side.
	srcWhite := xyYToXYZ(src.whitePoint)
	dstWhite := xyYToXYZ(dst.whitePoint)
	bradford := Bradford.matrix()
	if !approxSlice(src.whitePoint[:], IlluminantD50[:]) {
		transform = matrix.Mul(chromaticAdaptation(bradford, srcWhite, IlluminantD50XYZ), src.transform)
		srcWhite = matrix.Apply(bradford, srcWhite)
	}
	if !approxSlice(dst.whitePoint[:], IlluminantD50[:]) {
		inverse, _ = matrix.Invert(matrix.Mul(chromaticAdaptation(bradford, dstWhite, IlluminantD50XYZ), dst.transform))
		dstWhite = matrix.Apply(bradford, dstWhite)
	}
	if intent == Absolute {
		transform = matrix.MulDiag([3]float64{
			srcWhite[0] / dstWhite[0],
			srcWhite[1] / dstWhite[1],
			srcWhite[2] / dstWhite[2],
		}, transform)
	}
	return matrix.Mul(inverse, transform)
}

// absoluteScale returns the white ratio applied in the connection space
// when exactly one side is RGB and the intent is Absolute.
func absoluteScale(src, dst *ColorSpace, intent RenderIntent) *[3]float64 {
	if intent != Absolute {
		return nil
	}
	srcRGB := src.model == ModelRGB
	dstRGB := dst.model == ModelRGB
	if srcRGB == dstRGB {
		return nil
	}
	rgb := src
	if dstRGB {
		rgb = dst
	}
	wp := xyYToXYZ(rgb.rgb.whitePoint)
	srcXYZ, dstXYZ := IlluminantD50XYZ, IlluminantD50XYZ
	if srcRGB {
		srcXYZ = wp
	} else {
		dstXYZ = wp
	}
	return &[3]float64{srcXYZ[0] / dstXYZ[0], srcXYZ[1] / dstXYZ[1], srcXYZ[2] / dstXYZ[2]}
}

// Source returns the space colors are converted from.
func (c *Connector) Source() *ColorSpace { return c.source }

// Destination returns the space colors are converted to.
func (c *Connector) Destination() *ColorSpace { return c.destination }

// Intent returns the render intent.
func (c *Connector) Intent() RenderIntent { return c.intent }

// Transform converts a color of the source space to the destination space.
func (c *Connector) Transform(v [3]float64) [3]float64 {
	switch c.kind {
	case connectIdentity:
		return v
	case connectRGB:
		s, d := c.source, c.destination
		lin := [3]float64{s.clampedDecode(v[0]), s.clampedDecode(v[1]), s.clampedDecode(v[2])}
		lin = matrix.Apply(c.transform, lin)
		return [3]float64{d.clampedEncode(lin[0]), d.clampedEncode(lin[1]), d.clampedEncode(lin[2])}
	default:
		xyz := c.pcsSource.ToXYZ(v)
		if c.scale != nil {
			xyz[0] *= c.scale[0]
			xyz[1] *= c.scale[1]
			xyz[2] *= c.scale[2]
		}
		return c.pcsDestination.FromXYZ(xyz)
	}
}

// TransformRGB is Transform on separate components.
func (c *Connector) TransformRGB(r, g, b float64) (float64, float64, float64) {
	v := c.Transform([3]float64{r, g, b})
	return v[0], v[1], v[2]
}
