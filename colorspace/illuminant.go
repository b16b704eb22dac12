package colorspace

import "fmt"

// Standard illuminants as CIE xyY chromaticities (x, y).
var (
	IlluminantA   = [2]float64{0.44757, 0.40745}
	IlluminantB   = [2]float64{0.34842, 0.35161}
	IlluminantC   = [2]float64{0.31006, 0.31616}
	IlluminantD50 = [2]float64{0.34567, 0.35850}
	IlluminantD55 = [2]float64{0.33242, 0.34743}
	IlluminantD60 = [2]float64{0.32168, 0.33767}
	IlluminantD65 = [2]float64{0.31271, 0.32902}
	IlluminantD75 = [2]float64{0.29902, 0.31485}
	IlluminantE   = [2]float64{0.33333, 0.33333}
)

// IlluminantD50XYZ is D50 in CIE XYZ, the white of the profile connection space.
var IlluminantD50XYZ = [3]float64{0.964212, 1.0, 0.825188}

// xyYToXYZ converts an xy chromaticity with Y=1 to XYZ.
func xyYToXYZ(xy [2]float64) [3]float64 {
	return [3]float64{xy[0] / xy[1], 1, (1 - xy[0] - xy[1]) / xy[1]}
}

// xyzToXY projects XYZ onto the chromaticity plane.
func xyzToXY(v [3]float64) [2]float64 {
	sum := v[0] + v[1] + v[2]
	return [2]float64{v[0] / sum, v[1] / sum}
}

// whitePointXY accepts a white point as xy (2 values) or XYZ (3 values).
func whitePointXY(wp []float64) ([2]float64, error) {
	switch len(wp) {
	case 2:
		return [2]float64{wp[0], wp[1]}, nil
	case 3:
		return xyzToXY([3]float64{wp[0], wp[1], wp[2]}), nil
	}
	return [2]float64{}, fmt.Errorf("colorspace: a white point must have 2 or 3 values, got %d: %w", len(wp), ErrInvalidArgument)
}

// whitePointXYZ accepts a white point as xy or XYZ and returns XYZ.
// An XYZ input is returned unchanged so no precision is lost.
func whitePointXYZ(wp []float64) ([3]float64, error) {
	switch len(wp) {
	case 2:
		return xyYToXYZ([2]float64{wp[0], wp[1]}), nil
	case 3:
		return [3]float64{wp[0], wp[1], wp[2]}, nil
	}
	return [3]float64{}, fmt.Errorf("colorspace: a white point must have 2 or 3 values, got %d: %w", len(wp), ErrInvalidArgument)
}

// CCTToXYZ returns the XYZ white point of a correlated color temperature in
// Kelvin, using the cubic spline approximation of the Planckian locus.
// The approximation is meaningful between 1667K and 25000K.
func CCTToXYZ(cct int) ([3]float64, error) {
	if cct < 1 {
		return [3]float64{}, fmt.Errorf("colorspace: temperature must be greater than 0: %w", ErrInvalidArgument)
	}
	icct := 1e3 / float64(cct)
	icct2 := icct * icct

	var x float64
	if cct <= 4000 {
		x = 0.179910 + 0.8776956*icct - 0.2343589*icct2 - 0.2661239*icct2*icct
	} else {
		x = 0.240390 + 0.2226347*icct + 2.1070379*icct2 - 3.0258469*icct2*icct
	}

	x2 := x * x
	var y float64
	switch {
	case cct <= 2222:
		y = -0.20219683 + 2.18555832*x - 1.34811020*x2 - 1.1063814*x2*x
	case cct <= 4000:
		y = -0.16748867 + 2.09137015*x - 1.37418593*x2 - 0.9549476*x2*x
	default:
		y = -0.37001483 + 3.75112997*x - 5.8733867*x2 + 3.0817580*x2*x
	}
	return xyYToXYZ([2]float64{x, y}), nil
}
