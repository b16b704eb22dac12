package bitmap

import "sync/atomic"

// Density values in dots per inch.
const (
	// DensityNone marks a bitmap without density; it is never scaled.
	DensityNone = 0
	// DensityMedium is the baseline density.
	DensityMedium = 160
)

var defaultDensity atomic.Int32

func init() {
	defaultDensity.Store(DensityMedium)
}

// DefaultDensity returns the density given to new bitmaps.
func DefaultDensity() int {
	return int(defaultDensity.Load())
}

// SetDefaultDensity changes the density given to new bitmaps. It does not
// affect existing ones.
func SetDefaultDensity(density int) {
	defaultDensity.Store(int32(density))
}

// ScaleFromDensity scales size from sourceDensity to targetDensity,
// rounding to nearest. The size is unchanged when either density is
// DensityNone or both are equal.
func ScaleFromDensity(size, sourceDensity, targetDensity int) int {
	if sourceDensity == DensityNone || targetDensity == DensityNone || sourceDensity == targetDensity {
		return size
	}
	return (size*targetDensity + (sourceDensity >> 1)) / sourceDensity
}

// ScaledWidth returns the width of b when drawn at targetDensity.
func (b *Bitmap) ScaledWidth(targetDensity int) int {
	return ScaleFromDensity(b.Width(), b.density, targetDensity)
}

// ScaledHeight returns the height of b when drawn at targetDensity.
func (b *Bitmap) ScaledHeight(targetDensity int) int {
	return ScaleFromDensity(b.Height(), b.density, targetDensity)
}

// Density returns the density of b.
func (b *Bitmap) Density() int {
	return b.density
}

// SetDensity changes the density of b. The generation id is kept because
// pixels are unaffected.
func (b *Bitmap) SetDensity(density int) {
	b.density = density
}
