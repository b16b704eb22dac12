package matrix

import (
	"math"
	"testing"

	"golang.org/x/image/math/f64"
)

func TestMul(t *testing.T) {
	a := f64.Mat3{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	tests := []struct {
		name string
		a, b f64.Mat3
		want f64.Mat3
	}{
		{"identity left", Identity(), a, a},
		{"identity right", a, Identity(), a},
		{"scale", Diag(2, 3, 4), a, f64.Mat3{2, 4, 6, 12, 15, 18, 28, 32, 36}},
		{"square", a, a, f64.Mat3{30, 36, 42, 66, 81, 96, 102, 126, 150}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mul(tt.a, tt.b); got != tt.want {
				t.Errorf("Mul() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	m := f64.Mat3{
		1, 0, 2,
		0, 3, 0,
		4, 0, 5,
	}
	got := Apply(m, [3]float64{1, 2, 3})
	want := [3]float64{7, 6, 19}
	if got != want {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

func TestMulDiag(t *testing.T) {
	m := f64.Mat3{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	if got, want := MulDiag([3]float64{2, 0.5, 1}, m), Mul(Diag(2, 0.5, 1), m); got != want {
		t.Errorf("MulDiag() = %v, want %v", got, want)
	}
}

func TestInvert(t *testing.T) {
	m := f64.Mat3{
		0.4124, 0.3576, 0.1805,
		0.2126, 0.7152, 0.0722,
		0.0193, 0.1192, 0.9505,
	}
	inv, ok := Invert(m)
	if !ok {
		t.Fatal("Invert() ok = false, want true")
	}
	if got := Mul(m, inv); !Approx(got, Identity(), 1e-12) {
		t.Errorf("m·Invert(m) = %v, want identity", got)
	}
	if got := Mul(inv, m); !Approx(got, Identity(), 1e-12) {
		t.Errorf("Invert(m)·m = %v, want identity", got)
	}
}

func TestInvertSingular(t *testing.T) {
	tests := []struct {
		name string
		m    f64.Mat3
	}{
		{"zero", f64.Mat3{}},
		{"zero scale", Diag(1, 0, 1)},
		{"dependent rows", f64.Mat3{1, 2, 3, 2, 4, 6, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := Invert(tt.m)
			if ok {
				t.Errorf("Invert() ok = true, want false")
			}
			finite := true
			for _, v := range inv {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					finite = false
				}
			}
			if finite {
				t.Errorf("Invert() = %v, want non-finite entries", inv)
			}
		})
	}
}

func TestInvertNearlySingular(t *testing.T) {
	tests := []struct {
		name string
		m    f64.Mat3
		ok   bool
	}{
		{"tiny scale", Diag(1, 1e-14, 1), false},
		{"nearly dependent rows", f64.Mat3{1, 2, 3, 2, 4 + 1e-13, 6, 0, 0, 1}, false},
		{"uniformly small", Diag(1e-5, 1e-5, 1e-5), true},
		{"large", Diag(1e6, 2e6, 3e6), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Invert(tt.m); ok != tt.ok {
				t.Errorf("Invert() ok = %v, want %v", ok, tt.ok)
			}
		})
	}
}

func TestDeterminant(t *testing.T) {
	if got := Determinant(Diag(2, 3, 4)); got != 24 {
		t.Errorf("Determinant() = %v, want 24", got)
	}
	if got := Determinant(Identity()); got != 1 {
		t.Errorf("Determinant(I) = %v, want 1", got)
	}
}

func TestTranspose(t *testing.T) {
	m := f64.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	want := f64.Mat3{1, 4, 7, 2, 5, 8, 3, 6, 9}
	if got := Transpose(m); got != want {
		t.Errorf("Transpose() = %v, want %v", got, want)
	}
	if got := Transpose(Transpose(m)); got != m {
		t.Errorf("Transpose(Transpose()) = %v, want %v", got, m)
	}
}
