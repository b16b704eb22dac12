package colorspace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestConnectIdentity(t *testing.T) {
	c := ConnectIntent(Get(SRGB), Get(SRGB), Absolute)
	if c.Source() != Get(SRGB) || c.Destination() != Get(SRGB) {
		t.Errorf("identity connector endpoints = %v, %v", c.Source(), c.Destination())
	}
	if c.Intent() != Relative {
		t.Errorf("identity Intent() = %v, want %v", c.Intent(), Relative)
	}
	in := [3]float64{0.1, 0.2, 0.3}
	if got := c.Transform(in); got != in {
		t.Errorf("identity Transform(%v) = %v", in, got)
	}
}

func TestConnectDefaults(t *testing.T) {
	c := Connect(Get(DisplayP3), nil)
	if c.Destination() != Get(SRGB) {
		t.Errorf("Connect(P3, nil).Destination() = %v, want SRGB", c.Destination())
	}
	if c.Intent() != Perceptual {
		t.Errorf("Connect().Intent() = %v, want %v", c.Intent(), Perceptual)
	}
}

func TestConnectorTransform(t *testing.T) {
	tests := []struct {
		name   string
		src    Named
		dst    Named
		intent RenderIntent
		in     [3]float64
		want   [3]float64
		tol    float64
	}{
		{"sRGB to Adobe RGB", SRGB, AdobeRGB, Perceptual, [3]float64{1, 0.5, 0}, [3]float64{0.89117, 0.49623, 0.11640}, 1e-4},
		{"sRGB to ProPhoto", SRGB, ProPhotoRGB, Perceptual, [3]float64{1, 0, 0}, [3]float64{0.70226, 0.27571, 0.10356}, 1e-4},
		{"DCI-P3 to sRGB", DCIP3, SRGB, Relative, [3]float64{0.9, 0.9, 0.9}, [3]float64{0.8862, 0.8862, 0.8862}, 1e-3},
		{"DCI-P3 to sRGB absolute", DCIP3, SRGB, Absolute, [3]float64{0.9, 0.9, 0.9}, [3]float64{0.8475, 0.9217, 0.8203}, 1e-4},
		{"sRGB to DCI-P3 absolute", SRGB, DCIP3, Absolute, [3]float64{0.9, 0.9, 0.9}, [3]float64{0.93491, 0.88203, 0.96606}, 1e-3},
		{"sRGB color to DCI-P3 absolute", SRGB, DCIP3, Absolute, [3]float64{0.5, 0.25, 0.75}, [3]float64{0.52778, 0.30963, 0.79823}, 1e-3},
		{"Lab white to sRGB", CIELab, SRGB, Relative, [3]float64{100, 0, 0}, [3]float64{1, 1, 1}, 1e-4},
		{"Lab yellow to sRGB", CIELab, SRGB, Relative, [3]float64{100, 0, 54}, [3]float64{1, 0.99255, 0.57622}, 1e-4},
		{"Lab white to sRGB absolute", CIELab, SRGB, Absolute, [3]float64{100, 0, 0}, [3]float64{1, 0.99099, 0.86513}, 1e-4},
		{"Lab yellow to sRGB absolute", CIELab, SRGB, Absolute, [3]float64{100, 0, 54}, [3]float64{1, 0.98528, 0.46522}, 1e-4},
		{"XYZ to sRGB", CIEXYZ, SRGB, Perceptual, [3]float64{0.32, 0.43, 0.54}, [3]float64{0.22825, 0.75401, 0.84526}, 1e-4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ConnectIntent(Get(tt.src), Get(tt.dst), tt.intent)
			got := c.Transform(tt.in)
			if diff := cmp.Diff(tt.want, got, approx(tt.tol)); diff != "" {
				t.Errorf("Transform(%v) mismatch (-want +got):\n%s", tt.in, diff)
			}
			r, g, b := c.TransformRGB(tt.in[0], tt.in[1], tt.in[2])
			if [3]float64{r, g, b} != got {
				t.Errorf("TransformRGB() = %v, want %v", [3]float64{r, g, b}, got)
			}
		})
	}
}

func TestConnectorClampsToDestination(t *testing.T) {
	got := Connect(Get(DisplayP3), Get(SRGB)).Transform([3]float64{1, 0, 0})
	for i, v := range got {
		if v < 0 || v > 1 {
			t.Errorf("component %d = %g outside [0, 1]", i, v)
		}
	}
	if got[0] != 1 {
		t.Errorf("red = %g, want 1", got[0])
	}
}

func TestConnectorRoundTrip(t *testing.T) {
	in := [3]float64{0.25, 0.5, 0.75}
	there := Connect(Get(SRGB), Get(BT2020)).Transform(in)
	back := Connect(Get(BT2020), Get(SRGB)).Transform(there)
	if diff := cmp.Diff(in, back, approx(1e-6)); diff != "" {
		t.Errorf("sRGB -> BT2020 -> sRGB mismatch (-want +got):\n%s", diff)
	}
}

func TestConnectToLabMatchesColorful(t *testing.T) {
	xyz := [3]float64{0.31754, 0.27278, 0.06440}
	got := Get(CIELab).FromXYZ(xyz)
	l, a, b := colorful.XyzToLabWhiteRef(xyz[0], xyz[1], xyz[2], IlluminantD50XYZ)
	want := [3]float64{l * 100, a * 100, b * 100}
	if diff := cmp.Diff(want, got, approx(1e-6)); diff != "" {
		t.Errorf("FromXYZ() mismatch with go-colorful (-want +got):\n%s", diff)
	}

	lab := Connect(Get(SRGB), Get(CIELab)).Transform([3]float64{0.75, 0.5, 0.25})
	if diff := cmp.Diff([3]float64{59.2307, 21.0151, 44.2415}, lab, approx(1e-4)); diff != "" {
		t.Errorf("sRGB -> Lab mismatch (-want +got):\n%s", diff)
	}
}

func TestConnectReusesRGBConnectors(t *testing.T) {
	a := ConnectIntent(Get(DisplayP3), Get(BT2020), Relative)
	b := ConnectIntent(Get(DisplayP3), Get(BT2020), Relative)
	if a != b {
		t.Error("ConnectIntent() built a new connector for a cached pair")
	}
	if c := ConnectIntent(Get(DisplayP3), Get(BT2020), Absolute); c == a {
		t.Error("ConnectIntent() shared a connector across intents")
	}
	if Connect(Get(SRGB), Get(CIELab)) == Connect(Get(SRGB), Get(CIELab)) {
		t.Error("Connect() cached a connector through the profile connection space")
	}
}
