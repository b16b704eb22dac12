package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"seehuhn.de/go/icc"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/colorspace"
	"github.com/gogpu/bitmap/internal/matrix"
)

// curveTableSize is the number of entries in sampled tone curves.
const curveTableSize = 1024

// ICCProfile returns a matrix/TRC display profile for an RGB color space
// with transfer parameters. Pure power curves are stored as a gamma value,
// other curves as a sampled table.
func ICCProfile(cs *colorspace.ColorSpace) ([]byte, error) {
	if cs == nil || cs.Model() != colorspace.ModelRGB {
		return nil, fmt.Errorf("codec: icc: need an RGB color space, got %v: %w", cs, bitmap.ErrInvalidArgument)
	}
	params, ok := cs.TransferParameters()
	if !ok {
		return nil, fmt.Errorf("codec: icc: %s has no transfer parameters: %w", cs.Name(), bitmap.ErrUnsupported)
	}
	d50, err := colorspace.Adapt(cs, colorspace.IlluminantD50XYZ[:])
	if err != nil {
		return nil, fmt.Errorf("codec: icc: %w", err)
	}
	// rows of the transpose are the primaries' XYZ columns
	cols := matrix.Transpose(d50.Transform())

	var curve *icc.Curve
	if params == (colorspace.TransferParameters{A: 1, G: params.G}) {
		curve = &icc.Curve{Gamma: params.G}
	} else {
		table := make([]uint16, curveTableSize)
		tf := cs.Transfer()
		for i := range table {
			v := tf.Decode(float64(i) / (curveTableSize - 1))
			table[i] = uint16(math.Round(min(max(v, 0), 1) * 0xffff))
		}
		curve = &icc.Curve{Table: table}
	}
	trc := curve.Encode()

	p := &icc.Profile{
		Version:         icc.Version4_3_0,
		Class:           icc.DisplayDeviceProfile,
		ColorSpace:      icc.RGBSpace,
		PCS:             icc.PCSXYZSpace,
		RenderingIntent: icc.Perceptual,
		TagData: map[icc.TagType][]byte{
			icc.MediaWhitePoint:   xyzTag(colorspace.IlluminantD50XYZ),
			icc.RedMatrixColumn:   xyzTag([3]float64(cols[0:3])),
			icc.GreenMatrixColumn: xyzTag([3]float64(cols[3:6])),
			icc.BlueMatrixColumn:  xyzTag([3]float64(cols[6:9])),
			icc.RedTRC:            trc,
			icc.GreenTRC:          trc,
			icc.BlueTRC:           trc,
		},
	}
	data, err := p.Encode()
	if err != nil {
		return nil, fmt.Errorf("codec: icc: %w", err)
	}
	return data, nil
}

// xyzTag encodes an XYZType tag: signature, reserved word and three
// s15Fixed16 numbers.
func xyzTag(v [3]float64) []byte {
	buf := make([]byte, 20)
	copy(buf, "XYZ ")
	for i, c := range v {
		binary.BigEndian.PutUint32(buf[8+4*i:], uint32(int32(math.Round(c*65536))))
	}
	return buf
}
