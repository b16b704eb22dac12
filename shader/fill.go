package shader

import (
	"fmt"
	"sync"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/colorspace"
	"github.com/gogpu/bitmap/internal/parallel"
)

// parallelRows is the height from which rows are evaluated concurrently
// when more than one worker is available.
const parallelRows = 32

var pool = sync.OnceValue(func() *parallel.WorkerPool {
	return parallel.NewWorkerPool(0)
})

// Fill evaluates s at the center of every pixel of b and stores the result
// with SetColor, converting it into b's color space. Alpha8 bitmaps keep
// only the alpha.
//
// Shaders must be safe to call from several goroutines.
func Fill(b *bitmap.Bitmap, s Shader) error {
	if b == nil || s == nil {
		return fmt.Errorf("shader: Fill needs a bitmap and a shader: %w", bitmap.ErrInvalidArgument)
	}
	if b.IsRecycled() {
		return fmt.Errorf("shader: cannot fill a recycled bitmap: %w", bitmap.ErrIllegalState)
	}
	if !b.IsMutable() {
		return fmt.Errorf("shader: cannot fill an immutable bitmap: %w", bitmap.ErrIllegalState)
	}

	w, h := b.Width(), b.Height()
	rows := make([][]colorspace.Color, h)
	eval := func(y int) {
		row := make([]colorspace.Color, w)
		for x := range row {
			row[x] = s.ColorAt(float64(x)+0.5, float64(y)+0.5)
		}
		rows[y] = row
	}
	if h < parallelRows || pool().Workers() < 2 {
		for y := range rows {
			eval(y)
		}
	} else {
		work := make([]func(), h)
		for y := range work {
			work[y] = func() { eval(y) }
		}
		pool().ExecuteAll(work)
	}

	for y, row := range rows {
		for x, c := range row {
			if err := b.SetColor(x, y, c); err != nil {
				return err
			}
		}
	}
	bitmap.Logger().Debug("shader: filled", "width", w, "height", h, "space", b.ColorSpace())
	return nil
}
