package paint

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -5, 6)

	if got := a.Add(b); got != V3(5, -3, 9) {
		t.Errorf("Add() = %v", got)
	}
	if got := a.Sub(b); got != V3(-3, 7, -3) {
		t.Errorf("Sub() = %v", got)
	}
	if got := a.Mul(2); got != V3(2, 4, 6) {
		t.Errorf("Mul() = %v", got)
	}
	if got := a.Dot(b); got != 4-10+18 {
		t.Errorf("Dot() = %v", got)
	}
	if got := V3(-1, 2, -3).Abs(); got != V3(1, 2, 3) {
		t.Errorf("Abs() = %v", got)
	}
}

func TestVec3_Length(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{}, 0},
		{"unit x", V3(1, 0, 0), 1},
		{"3-4-0", V3(3, 4, 0), 5},
		{"2-3-6", V3(2, 3, 6), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Length(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Length() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := V3(0, 0, 0).Distance(V3(0, 3, 4)); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := V3(0, 3, 4).Normalize()
	if math.Abs(n.X) > 1e-12 || math.Abs(n.Y-0.6) > 1e-12 || math.Abs(n.Z-0.8) > 1e-12 {
		t.Errorf("Normalize() = %v", n)
	}
	if !(Vec3{}).Normalize().IsZero() {
		t.Error("Normalize() of zero vector should be zero")
	}
	if !V3(math.Inf(1), 0, 0).Normalize().IsZero() {
		t.Error("Normalize() of infinite vector should be zero")
	}
}

func TestVec3_Lerp(t *testing.T) {
	a, b := V3(0, 0, 0), V3(2, 4, -6)
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v", got)
	}
	if got := a.Lerp(b, 0.5); got != V3(1, 2, -3) {
		t.Errorf("Lerp(0.5) = %v", got)
	}
}

func TestVec3_Axis(t *testing.T) {
	v := V3(7, 8, 9)
	for i, want := range []float64{7, 8, 9} {
		if got := v.Axis(i); got != want {
			t.Errorf("Axis(%d) = %v, want %v", i, got, want)
		}
		if got := unitAxis(i).Axis(i); got != 1 {
			t.Errorf("unitAxis(%d) component = %v, want 1", i, got)
		}
	}
}
