package colorspace

import (
	"golang.org/x/image/math/f64"

	"github.com/gogpu/bitmap/internal/matrix"
)

// Adaptation selects the cone response model used for chromatic adaptation.
type Adaptation uint8

const (
	// Bradford is the default adaptation, also used by ICC profiles.
	Bradford Adaptation = iota
	// VonKries uses the Hunt-Pointer-Estevez cone response.
	VonKries
	// CIECAT02 uses the CIECAM02 cone response.
	CIECAT02
)

var adaptationMatrices = [...]f64.Mat3{
	Bradford: {
		0.8951, 0.2664, -0.1614,
		-0.7502, 1.7135, 0.0367,
		0.0389, -0.0685, 1.0296,
	},
	VonKries: {
		0.40024, 0.70760, -0.08081,
		-0.22630, 1.16532, 0.04570,
		0.00000, 0.00000, 0.91822,
	},
	CIECAT02: {
		0.7328, 0.4296, -0.1624,
		-0.7036, 1.6975, 0.0061,
		0.0030, 0.0136, 0.9834,
	},
}

func (a Adaptation) String() string {
	switch a {
	case Bradford:
		return "Bradford"
	case VonKries:
		return "VonKries"
	case CIECAT02:
		return "CIECAT02"
	default:
		return "Unknown"
	}
}

func (a Adaptation) matrix() f64.Mat3 {
	if int(a) >= len(adaptationMatrices) {
		return adaptationMatrices[Bradford]
	}
	return adaptationMatrices[a]
}

// ChromaticAdaptation returns the matrix that moves XYZ values seen under
// src to the appearance they have under dst. White points are xy (2 values)
// or XYZ (3 values). Equal white points yield the identity.
func ChromaticAdaptation(method Adaptation, src, dst []float64) (f64.Mat3, error) {
	srcXYZ, err := whitePointXYZ(src)
	if err != nil {
		return f64.Mat3{}, err
	}
	dstXYZ, err := whitePointXYZ(dst)
	if err != nil {
		return f64.Mat3{}, err
	}
	if srcXYZ == dstXYZ {
		return matrix.Identity(), nil
	}
	return chromaticAdaptation(method.matrix(), srcXYZ, dstXYZ), nil
}

// chromaticAdaptation computes inv(M)·diag(dstLMS/srcLMS)·M.
func chromaticAdaptation(m f64.Mat3, srcXYZ, dstXYZ [3]float64) f64.Mat3 {
	srcLMS := matrix.Apply(m, srcXYZ)
	dstLMS := matrix.Apply(m, dstXYZ)
	lms := matrix.Diag(dstLMS[0]/srcLMS[0], dstLMS[1]/srcLMS[1], dstLMS[2]/srcLMS[2])
	inv, _ := matrix.Invert(m)
	return matrix.Mul(inv, matrix.Mul(lms, m))
}

// Adapt returns cs re-targeted to the white point wp (xy or XYZ) using
// Bradford adaptation. Non-RGB spaces, and RGB spaces whose white point is
// already within 1e-3 of wp, are returned unchanged.
func Adapt(cs *ColorSpace, wp []float64) (*ColorSpace, error) {
	return AdaptWith(cs, wp, Bradford)
}

// AdaptWith is like Adapt with an explicit adaptation method.
func AdaptWith(cs *ColorSpace, wp []float64, method Adaptation) (*ColorSpace, error) {
	if cs == nil || cs.model != ModelRGB {
		return cs, nil
	}
	xy, err := whitePointXY(wp)
	if err != nil {
		return nil, err
	}
	if approxSlice(cs.rgb.whitePoint[:], xy[:]) {
		return cs, nil
	}
	dstXYZ, err := whitePointXYZ(wp)
	if err != nil {
		return nil, err
	}
	adaptation := chromaticAdaptation(method.matrix(), xyYToXYZ(cs.rgb.whitePoint), dstXYZ)
	return cs.withTransform(matrix.Mul(adaptation, cs.rgb.transform), xy), nil
}

// adaptToD50 is Adapt against the profile connection space white.
func adaptToD50(cs *ColorSpace) *ColorSpace {
	adapted, _ := Adapt(cs, IlluminantD50XYZ[:])
	return adapted
}
