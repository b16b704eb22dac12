package colorspace

import (
	"fmt"
	"math"
)

// TransferParameters are the coefficients of the parametric transfer
// curve used by ICC profiles and by most RGB color spaces.
//
// Decoding (EOTF, nonlinear to linear) is
//
//	x >= D ? pow(A*x + B, G) + E : C*x + F
//
// and encoding (OETF) is its inverse
//
//	x >= D*C ? (pow(x - E, 1/G) - B) / A : (x - F) / C
type TransferParameters struct {
	A, B, C, D, E, F, G float64
}

// next representable float32 after 1.0; parameters are often stored as float32
const maxD = 1 + 1.0/(1<<23)

// Validate reports whether p describes a usable, increasing curve.
func (p TransferParameters) Validate() error {
	for _, v := range [...]float64{p.A, p.B, p.C, p.D, p.E, p.F, p.G} {
		if math.IsNaN(v) {
			return fmt.Errorf("colorspace: transfer parameters cannot be NaN: %w", ErrInvalidArgument)
		}
	}
	switch {
	case !(p.D >= 0 && p.D <= maxD):
		return fmt.Errorf("colorspace: parameter d must be in the range [0..1], was %g: %w", p.D, ErrInvalidArgument)
	case p.D == 0 && (p.A == 0 || p.G == 0):
		return fmt.Errorf("colorspace: parameter a or g is zero, the transfer function is constant: %w", ErrInvalidArgument)
	case p.D >= 1 && p.C == 0:
		return fmt.Errorf("colorspace: parameter c is zero, the transfer function is constant: %w", ErrInvalidArgument)
	case (p.A == 0 || p.G == 0) && p.C == 0:
		return fmt.Errorf("colorspace: parameters a or g and c are zero, the transfer function is constant: %w", ErrInvalidArgument)
	case p.C < 0:
		return fmt.Errorf("colorspace: the transfer function must be increasing: %w", ErrInvalidArgument)
	case p.A < 0 || p.G < 0:
		return fmt.Errorf("colorspace: the transfer function must be positive or increasing: %w", ErrInvalidArgument)
	}
	return nil
}

// approxEqual compares every coefficient within tol.
func (p TransferParameters) approxEqual(o TransferParameters, tol float64) bool {
	return math.Abs(p.A-o.A) < tol &&
		math.Abs(p.B-o.B) < tol &&
		math.Abs(p.C-o.C) < tol &&
		math.Abs(p.D-o.D) < tol &&
		math.Abs(p.E-o.E) < tol &&
		math.Abs(p.F-o.F) < tol &&
		math.Abs(p.G-o.G) < tol
}

func (p TransferParameters) decode(x float64) float64 {
	if x >= p.D {
		return math.Pow(p.A*x+p.B, p.G) + p.E
	}
	return p.C*x + p.F
}

func (p TransferParameters) encode(x float64) float64 {
	if x >= p.D*p.C {
		return (math.Pow(x-p.E, 1/p.G) - p.B) / p.A
	}
	return (x - p.F) / p.C
}

// TransferFunction is the encode/decode curve pair of an RGB color space.
//
// Parametric curves carry their TransferParameters and compare equal by
// coefficients. Curves built from arbitrary functions have no parameters and
// are only equal to themselves.
type TransferFunction struct {
	params   *TransferParameters
	mirrored bool
	encode   func(float64) float64
	decode   func(float64) float64
}

// NewParametricTransfer returns the curve described by p.
func NewParametricTransfer(p TransferParameters) (*TransferFunction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return parametric(p), nil
}

func parametric(p TransferParameters) *TransferFunction {
	return &TransferFunction{params: &p, encode: p.encode, decode: p.decode}
}

// mirroredParametric extends p to negative values as sign(x)·f(|x|).
func mirroredParametric(p TransferParameters) *TransferFunction {
	return &TransferFunction{
		params:   &p,
		mirrored: true,
		encode:   func(x float64) float64 { return math.Copysign(p.encode(math.Abs(x)), x) },
		decode:   func(x float64) float64 { return math.Copysign(p.decode(math.Abs(x)), x) },
	}
}

// NewGammaTransfer returns a pure power curve. A gamma of 1 is the identity.
// Negative inputs are clamped to zero before the power is applied.
func NewGammaTransfer(gamma float64) (*TransferFunction, error) {
	p := TransferParameters{A: 1, G: gamma}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return gammaCurve(gamma), nil
}

func gammaCurve(gamma float64) *TransferFunction {
	t := &TransferFunction{params: &TransferParameters{A: 1, G: gamma}}
	if gamma == 1 {
		t.encode = identity
		t.decode = identity
		return t
	}
	t.encode = func(x float64) float64 { return math.Pow(math.Max(x, 0), 1/gamma) }
	t.decode = func(x float64) float64 { return math.Pow(math.Max(x, 0), gamma) }
	return t
}

// NewTransferFunc wraps an arbitrary encode (OETF) and decode (EOTF) pair.
func NewTransferFunc(encode, decode func(float64) float64) (*TransferFunction, error) {
	if encode == nil || decode == nil {
		return nil, fmt.Errorf("colorspace: transfer functions cannot be nil: %w", ErrInvalidArgument)
	}
	return &TransferFunction{encode: encode, decode: decode}, nil
}

func identity(x float64) float64 { return x }

// Encode converts a linear value to its nonlinear encoding (OETF).
func (t *TransferFunction) Encode(x float64) float64 { return t.encode(x) }

// Decode converts an encoded value back to linear (EOTF).
func (t *TransferFunction) Decode(x float64) float64 { return t.decode(x) }

// Parameters returns the curve coefficients. ok is false for arbitrary curves.
func (t *TransferFunction) Parameters() (p TransferParameters, ok bool) {
	if t.params == nil {
		return TransferParameters{}, false
	}
	return *t.params, true
}

// Equal reports whether t and o are the same curve. Parametric curves compare
// by coefficients; arbitrary curves only equal themselves.
func (t *TransferFunction) Equal(o *TransferFunction) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || t.params == nil || o.params == nil {
		return false
	}
	return *t.params == *o.params && t.mirrored == o.mirrored
}

// MatchCurve returns the first named RGB space whose curve has the same
// coefficients as t within 1e-3. Extended-range variants are never returned.
func (t *TransferFunction) MatchCurve() (Named, bool) {
	if t.params == nil {
		return 0, false
	}
	for _, cs := range registry {
		if cs.model != ModelRGB || isExtendedVariant(cs.id) {
			continue
		}
		if p := cs.rgb.transfer.params; p != nil && p.approxEqual(*t.params, 1e-3) {
			return Named(cs.id), true
		}
	}
	return 0, false
}

// Standard curves shared by several registry members.
var (
	srgbParams   = TransferParameters{A: 1 / 1.055, B: 0.055 / 1.055, C: 1 / 12.92, D: 0.04045, G: 2.4}
	bt709Params  = TransferParameters{A: 1 / 1.099, B: 0.099 / 1.099, C: 1 / 4.5, D: 0.081, G: 1 / 0.45}
	bt2020Params = TransferParameters{A: 1 / 1.0993, B: 0.0993 / 1.0993, C: 1 / 4.5, D: 0.08145, G: 1 / 0.45}
	romm         = TransferParameters{A: 1.0, B: 0.0, C: 1 / 16.0, D: 0.031248, G: 1.8}
)

// HLG constants from Rec. ITU-R BT.2100.
const (
	hlgA = 0.17883277
	hlgB = 0.28466892
	hlgC = 0.55991073
)

func hlgEncode(x float64) float64 {
	sign := math.Copysign(1, x)
	x = math.Abs(x)
	if x <= 1.0/12 {
		return sign * math.Sqrt(3*x)
	}
	return sign * (hlgA*math.Log(12*x-hlgB) + hlgC)
}

func hlgDecode(x float64) float64 {
	sign := math.Copysign(1, x)
	x = math.Abs(x)
	if x <= 0.5 {
		return sign * x * x / 3
	}
	return sign * (math.Exp((x-hlgC)/hlgA) + hlgB) / 12
}

// PQ constants from SMPTE ST 2084.
const (
	pqM1 = 2610.0 / 16384
	pqM2 = 2523.0 / 4096 * 128
	pqC1 = 3424.0 / 4096
	pqC2 = 2413.0 / 4096 * 32
	pqC3 = 2392.0 / 4096 * 32
)

func pqEncode(x float64) float64 {
	sign := math.Copysign(1, x)
	ym := math.Pow(math.Abs(x), pqM1)
	return sign * math.Pow((pqC1+pqC2*ym)/(1+pqC3*ym), pqM2)
}

func pqDecode(x float64) float64 {
	sign := math.Copysign(1, x)
	e := math.Pow(math.Abs(x), 1/pqM2)
	return sign * math.Pow(math.Max(e-pqC1, 0)/(pqC2-pqC3*e), 1/pqM1)
}
