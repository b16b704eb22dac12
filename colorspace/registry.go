package colorspace

import (
	"fmt"

	"golang.org/x/image/math/f64"
	"golang.org/x/text/cases"

	"github.com/gogpu/bitmap/internal/matrix"
)

// Named identifies a color space of the registry. Its value is the id of
// the space.
type Named int

// Named color spaces, in id order.
const (
	SRGB Named = iota
	LinearSRGB
	ExtendedSRGB
	LinearExtendedSRGB
	BT709
	BT2020
	DCIP3
	DisplayP3
	NTSC1953
	SMPTEC
	AdobeRGB
	ProPhotoRGB
	ACES
	ACEScg
	CIEXYZ
	CIELab
	BT2020HLG
	BT2020PQ
)

var namedStrings = [...]string{
	SRGB:               "SRGB",
	LinearSRGB:         "LINEAR_SRGB",
	ExtendedSRGB:       "EXTENDED_SRGB",
	LinearExtendedSRGB: "LINEAR_EXTENDED_SRGB",
	BT709:              "BT709",
	BT2020:             "BT2020",
	DCIP3:              "DCI_P3",
	DisplayP3:          "DISPLAY_P3",
	NTSC1953:           "NTSC_1953",
	SMPTEC:             "SMPTE_C",
	AdobeRGB:           "ADOBE_RGB",
	ProPhotoRGB:        "PRO_PHOTO_RGB",
	ACES:               "ACES",
	ACEScg:             "ACESCG",
	CIEXYZ:             "CIE_XYZ",
	CIELab:             "CIE_LAB",
	BT2020HLG:          "BT2020_HLG",
	BT2020PQ:           "BT2020_PQ",
}

func (n Named) String() string {
	if n < 0 || int(n) >= len(namedStrings) {
		return fmt.Sprintf("Named(%d)", int(n))
	}
	return namedStrings[n]
}

var (
	bt2020Primaries = [6]float64{0.708, 0.292, 0.170, 0.797, 0.131, 0.046}
	dciP3Primaries  = [6]float64{0.680, 0.320, 0.265, 0.690, 0.150, 0.060}
	acesPrimaries   = [6]float64{0.73470, 0.26530, 0.0, 1.0, 0.00010, -0.0770}
)

// registry holds the named spaces indexed by id.
var registry = buildRegistry()

func rgbSpaceFor(id Named, name string, p [6]float64, wp [2]float64, tf *TransferFunction, lo, hi float64) *ColorSpace {
	return newRGB(name, p, wp, computeXYZMatrix(p, wp), tf, lo, hi, int(id), false)
}

func buildRegistry() []*ColorSpace {
	linear := gammaCurve(1)
	r := make([]*ColorSpace, len(namedStrings))

	r[SRGB] = rgbSpaceFor(SRGB, "sRGB IEC61966-2.1",
		srgbPrimaries, IlluminantD65, parametric(srgbParams), 0, 1)
	r[LinearSRGB] = rgbSpaceFor(LinearSRGB, "sRGB IEC61966-2.1 (Linear)",
		srgbPrimaries, IlluminantD65, linear, 0, 1)
	r[ExtendedSRGB] = rgbSpaceFor(ExtendedSRGB, "scRGB-nl IEC 61966-2-2:2003",
		srgbPrimaries, IlluminantD65, mirroredParametric(srgbParams), -0.799, 2.399)
	r[LinearExtendedSRGB] = rgbSpaceFor(LinearExtendedSRGB, "scRGB IEC 61966-2-2:2003",
		srgbPrimaries, IlluminantD65, linear, -0.5, 7.499)
	r[BT709] = rgbSpaceFor(BT709, "Rec. ITU-R BT.709-5",
		srgbPrimaries, IlluminantD65, parametric(bt709Params), 0, 1)
	r[BT2020] = rgbSpaceFor(BT2020, "Rec. ITU-R BT.2020-1",
		bt2020Primaries, IlluminantD65, parametric(bt2020Params), 0, 1)
	r[DCIP3] = rgbSpaceFor(DCIP3, "SMPTE RP 431-2-2007 DCI (P3)",
		dciP3Primaries, [2]float64{0.314, 0.351}, gammaCurve(2.6), 0, 1)
	r[DisplayP3] = rgbSpaceFor(DisplayP3, "Display P3",
		dciP3Primaries, IlluminantD65, parametric(srgbParams), 0, 1)
	r[NTSC1953] = rgbSpaceFor(NTSC1953, "NTSC (1953)",
		ntsc1953Primaries, IlluminantC, parametric(bt709Params), 0, 1)
	r[SMPTEC] = rgbSpaceFor(SMPTEC, "SMPTE-C RGB",
		[6]float64{0.630, 0.340, 0.310, 0.595, 0.155, 0.070}, IlluminantD65, parametric(bt709Params), 0, 1)
	r[AdobeRGB] = rgbSpaceFor(AdobeRGB, "Adobe RGB (1998)",
		[6]float64{0.64, 0.33, 0.21, 0.71, 0.15, 0.06}, IlluminantD65, gammaCurve(2.2), 0, 1)
	r[ProPhotoRGB] = rgbSpaceFor(ProPhotoRGB, "ROMM RGB ISO 22028-2:2013",
		[6]float64{0.7347, 0.2653, 0.1596, 0.8404, 0.0366, 0.0001}, IlluminantD50, parametric(romm), 0, 1)
	r[ACES] = rgbSpaceFor(ACES, "SMPTE ST 2065-1:2012 ACES",
		acesPrimaries, IlluminantD60, linear, -65504, 65504)
	r[ACEScg] = rgbSpaceFor(ACEScg, "Academy S-2014-004 ACEScg",
		[6]float64{0.713, 0.293, 0.165, 0.830, 0.128, 0.044}, IlluminantD60, linear, -65504, 65504)
	r[CIEXYZ] = &ColorSpace{name: "Generic XYZ", id: int(CIEXYZ), model: ModelXYZ}
	r[CIELab] = &ColorSpace{name: "Generic L*a*b*", id: int(CIELab), model: ModelLab}
	r[BT2020HLG] = rgbSpaceFor(BT2020HLG, "Hybrid Log Gamma encoding",
		bt2020Primaries, IlluminantD65, &TransferFunction{encode: hlgEncode, decode: hlgDecode}, 0, 1)
	r[BT2020PQ] = rgbSpaceFor(BT2020PQ, "Perceptual Quantizer encoding",
		bt2020Primaries, IlluminantD65, &TransferFunction{encode: pqEncode, decode: pqDecode}, 0, 1)
	return r
}

func isExtendedVariant(id int) bool {
	return id == int(ExtendedSRGB) || id == int(LinearExtendedSRGB)
}

// Get returns the shared instance of a named space. It panics on a value
// outside the Named constants.
func Get(n Named) *ColorSpace {
	return registry[n]
}

// GetByID returns the named space with the given id.
func GetByID(id int) (*ColorSpace, error) {
	if id < 0 || id >= len(registry) {
		return nil, fmt.Errorf("colorspace: invalid id %d: %w", id, ErrInvalidArgument)
	}
	return registry[id], nil
}

var folder = cases.Fold()

// Lookup finds a named space by its enum name, ignoring case.
func Lookup(name string) (*ColorSpace, bool) {
	key := folder.String(name)
	for i, s := range namedStrings {
		if folder.String(s) == key {
			return registry[i], true
		}
	}
	return nil, false
}

// Match returns the named RGB space whose D50-adapted RGB to XYZ matrix and
// transfer parameters equal the arguments within 1e-3. Extended-range
// variants are never returned.
func Match(toXYZD50 f64.Mat3, params TransferParameters) (*ColorSpace, bool) {
	for _, cs := range registry {
		if cs.model != ModelRGB || isExtendedVariant(cs.id) {
			continue
		}
		p := cs.rgb.transfer.params
		if p == nil || !p.approxEqual(params, 1e-3) {
			continue
		}
		adapted := adaptToD50(cs)
		if matrix.Approx(adapted.rgb.transform, toXYZD50, 1e-3) {
			return cs, true
		}
	}
	return nil, false
}

// Canonical returns the registry instance equivalent to a custom RGB space,
// or cs itself when none matches.
func Canonical(cs *ColorSpace) *ColorSpace {
	if cs == nil || cs.model != ModelRGB || cs.id != MinID {
		return cs
	}
	p, ok := cs.rgb.transfer.Parameters()
	if !ok {
		return cs
	}
	if named, ok := Match(adaptToD50(cs).rgb.transform, p); ok {
		return named
	}
	return cs
}
