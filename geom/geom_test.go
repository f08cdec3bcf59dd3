package geom

import (
	"testing"

	"golang.org/x/image/math/f32"
)

func TestRectInset(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		in   Insets
		want Rect
	}{
		{"uniform", R(0, 0, 100, 50), Uniform(5), R(5, 5, 90, 40)},
		{"asymmetric", R(10, 10, 100, 50), Insets{Left: 1, Top: 2, Right: 3, Bottom: 4}, R(11, 12, 96, 44)},
		{"collapses", R(0, 0, 4, 4), Uniform(5), R(5, 5, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Inset(tt.in); got != tt.want {
				t.Errorf("Inset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	a := R(0, 0, 100, 100)
	if got := a.Intersect(R(50, 50, 100, 100)); got != R(50, 50, 50, 50) {
		t.Errorf("overlap = %v", got)
	}
	if got := a.Intersect(R(200, 200, 10, 10)); got.W != 0 || got.H != 0 {
		t.Errorf("disjoint intersection should be empty, got %v", got)
	}
	if got := a.Intersect(Infinite); got != a {
		t.Errorf("intersect with Infinite = %v, want %v", got, a)
	}
}

func TestRectIsEmpty(t *testing.T) {
	if !R(0, 0, 0.0001, 10).IsEmpty(0.001) {
		t.Error("near-zero width should be empty")
	}
	if R(0, 0, 1, 1).IsEmpty(0.001) {
		t.Error("unit rect should not be empty")
	}
}

func TestMulApply(t *testing.T) {
	m := Mul(Translation(10, 20), Translation(1, 2))
	got := Apply(m, f32.Vec2{0, 0})
	if got != (f32.Vec2{11, 22}) {
		t.Errorf("Apply = %v", got)
	}
	if !IsTranslation(m) {
		t.Error("product of translations should be a translation")
	}
}
