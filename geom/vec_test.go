package geom

import (
	"math"
	"testing"
)

func TestVecBasics(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v", got)
	}
}

func TestDistSq(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{3, 0, 4}
	if got := a.DistSq(b); got != 25 {
		t.Errorf("DistSq = %v, want 25", got)
	}
	if got := a.Dist(b); got != 5 {
		t.Errorf("Dist = %v, want 5", got)
	}
}

func TestHorizDistSqIgnoresVertical(t *testing.T) {
	a := Vec3{0, 100, 0}
	b := Vec3{3, -50, 4}
	if got := a.HorizDistSq(b); got != 25 {
		t.Errorf("HorizDistSq = %v, want 25", got)
	}
}

func TestNormalized(t *testing.T) {
	v := Vec3{3, 0, 4}.Normalized()
	if math.Abs(v.Length()-1) > 1e-9 {
		t.Errorf("normalized length = %v", v.Length())
	}
	if got := (Vec3{}).Normalized(); got != (Vec3{}) {
		t.Errorf("zero vector normalized = %v", got)
	}
}

func TestRotateY(t *testing.T) {
	v := Vec3{X: 1}
	got := v.RotateY(math.Pi / 2)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Z-1) > 1e-9 {
		t.Errorf("RotateY(pi/2) = %v, want (0,0,1)", got)
	}
	// Full rotation returns to start.
	got = v.RotateY(2 * math.Pi)
	if math.Abs(got.X-1) > 1e-9 || math.Abs(got.Z) > 1e-9 {
		t.Errorf("RotateY(2pi) = %v, want (1,0,0)", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		x, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.x, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v,%v,%v) = %v, want %v", tt.x, tt.lo, tt.hi, got, tt.want)
		}
	}
}
